package domain

// Default meeting settings, applied when a manager has no settings row
const (
	DefaultMeetingDurationMinutes = 30
	DefaultBufferBeforeMinutes    = 0
	DefaultBufferAfterMinutes     = 0
	DefaultTimezone               = "Asia/Riyadh"
	DefaultMinBookingNoticeHours  = 24
	DefaultMaxBookingDays         = 30
)

// Business validation bounds for manager-editable settings
const (
	MinMeetingDurationMinutes = 5
	MaxMeetingDurationMinutes = 480
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 120
	MinNoticeHours            = 0
	MaxNoticeHours            = 24 * 14 // 2 weeks
	MinBookingDaysHorizon     = 1
	MaxBookingDaysHorizon     = 365
	MaxCancelReasonLength     = 500
)

// DateFormat формат календарной даты в URL и телах запросов
const DateFormat = "2006-01-02" // YYYY-MM-DD
