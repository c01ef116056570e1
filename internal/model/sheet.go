package model

// RequiredColumns columns a sheet must carry to qualify
var RequiredColumns = []string{ColumnSales, ColumnNIPTPackage, ColumnGain, ColumnTAT}

// SchemaCheck result of matching a sheet header against RequiredColumns
type SchemaCheck struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}
