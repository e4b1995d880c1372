package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldLedgerPath = "ledger_path"
	FieldRecords    = "records"
	FieldSkipped    = "skipped_rows"
	FieldCategory   = "category"
	FieldAmount     = "amount_cents"
	FieldSource     = "source"
)

// Components defines standard component names.
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentChart   = "chart"
)
