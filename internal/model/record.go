package model

// Column names a qualifying sheet is read by.
const (
	ColumnSales       = "Sales"
	ColumnNIPTPackage = "NIPT Package"
	ColumnGain        = "Gain"
	ColumnTAT         = "TAT"
	ColumnCost        = "Cost"
	ColumnPrice       = "Price"
)

// UnknownSales placeholder for rows without a salesperson
const UnknownSales = "Unknown"

// Record normalized NIPT case row
type Record struct {
	Month       string `json:"month"` // month label (fallback: raw sheet name)
	Sales       string `json:"sales"`
	NIPTPackage string `json:"niptPackage"`

	Gain  Number `json:"gain"`
	TAT   Number `json:"tat"` // days
	Cost  Number `json:"cost"`
	Price Number `json:"price"`

	SourceSheet string `json:"sourceSheet"`
	RowNo       int    `json:"rowNo"` // 1-based spreadsheet row
}
