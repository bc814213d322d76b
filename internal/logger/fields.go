package logger

// Standard field names for consistent logging.
const (
	FieldService   = "service"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldSessionID = "session_id"
	FieldMentorID  = "mentor_id"
	FieldMenteeID  = "mentee_id"
)
