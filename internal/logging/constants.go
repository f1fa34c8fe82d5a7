package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the pipeline stages,
// making logs easier to parse, filter, and analyze.
const (
	FieldSender    = "sender"
	FieldSmsID     = "sms_id"
	FieldBank      = "bank"
	FieldMerchant  = "merchant"
	FieldAmount    = "amount"
	FieldType      = "type"
	FieldReason    = "reason"
	FieldStage     = "stage"
	FieldCount     = "count"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldFile      = "file_path"
	FieldInterval  = "interval_days"
	FieldFrequency = "frequency"
)
