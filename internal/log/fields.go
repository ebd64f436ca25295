package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldBackend     = "backend"
	FieldKey         = "key"
	FieldAccountName = "name"
	FieldBalance     = "balance_cents"
	FieldID          = "id"
	FieldDate        = "date"
	FieldAmount      = "amount_cents"
	FieldBudget      = "budget_cents"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldCount       = "count"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentStore  = "store"
	ComponentKV     = "kv"
	ComponentReport = "report"
	ComponentCLI    = "cli"
)
