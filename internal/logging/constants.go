package logging

// Standardized field names for structured logging.
const (
	FieldFileName   = "file_name"
	FieldFileSize   = "file_size"
	FieldFilePath   = "file_path"
	FieldCategory   = "category"
	FieldKeyword    = "keyword"
	FieldPartition  = "partition"
	FieldRecordID   = "record_id"
	FieldRemark     = "remark"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldState      = "state"
	FieldError      = "error"
	FieldCount      = "count"
	FieldOutputFile = "output_file"
	FieldInputFile  = "input_file"
	FieldPattern    = "pattern"
)
