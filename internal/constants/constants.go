package constants

// Session and context keys
const (
	SessionCookieName   = "task_session"
	ContextKeyUserID    = "user_id"
	ContextKeyTask      = "task"
	ContextKeyCategory  = "category"
	ContextKeyRequestID = "request_id"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxTitleLength    = 255
	MaxNameLength     = 255
)

// Defaults
const (
	DefaultCategoryColor = "#3b82f6"
)

// DateLayout is the wire format for due dates (calendar date, no time component).
const DateLayout = "2006-01-02"
