package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldFile      = "file"
	FieldSheet     = "sheet"
	FieldMonth     = "month"
	FieldRows      = "rows"
	FieldDropped   = "dropped_rows"
	FieldLoadID    = "load_id"
	FieldDuration  = "duration_ms"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldClientIP  = "client_ip"
	FieldAddr      = "addr"
)

// Component names
const (
	ComponentApp      = "app"
	ComponentImporter = "importer"
	ComponentCache    = "cache"
	ComponentWatcher  = "watcher"
	ComponentHTTP     = "http"
	ComponentChart    = "chart"
	ComponentCLI      = "cli"
)
