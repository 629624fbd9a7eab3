package domain

// Default configuration values
const (
	DefaultBookingIntervalMinutes    = 5
	DefaultRescheduleIntervalMinutes = 10
	DefaultMaxSlots                  = 50
	DefaultSessionTTLMinutes         = 720 // 12 hours
)

// Business validation constants
const (
	MinIntervalMinutes          = 5
	MaxIntervalMinutes          = 120
	MinMaxSlots                 = 1
	MaxMaxSlots                 = 200
	MaxExtraSlots               = 50
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
