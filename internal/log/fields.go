package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldDateKey   = "date_key"
	FieldEntryID   = "entry_id"
	FieldKind      = "kind"
	FieldAmount    = "amount"
	FieldStartKm   = "start_km"
	FieldEndKm     = "end_km"
	FieldBackend   = "backend"
	FieldCount     = "count"
	FieldError     = "error"
	FieldOperation = "operation"
)

// Standard component names.
const (
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
	ComponentKV      = "kvstore"
)

// Standard operation names.
const (
	OpGet     = "get"
	OpPut     = "put"
	OpDelete  = "delete"
	OpList    = "list"
	OpOpenDay = "open_day"
	OpHistory = "history"
)
