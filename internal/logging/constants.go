package logging

// Standardized field names for structured logging.
const (
	FieldComponent   = "component"
	FieldStore       = "store"
	FieldBackend     = "backend"
	FieldFile        = "file_path"
	FieldKey         = "key"
	FieldIndex       = "index"
	FieldCategory    = "category"
	FieldTrend       = "trend"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldFormat      = "format"
	FieldGoal        = "goal_id"
	FieldTransaction = "transaction_id"
)
