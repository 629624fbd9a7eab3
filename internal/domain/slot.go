package domain

import "github.com/m04kA/HMS-AppointmentService/pkg/types"

// Slot represents one fixed-duration token window in a doctor's daily queue
type Slot struct {
	Token      int // 1-based, contiguous within (doctor, date)
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsBooked   bool
	IsExpired  bool
	IsSelected bool
}

// IsSelectable returns true if the slot can be chosen for a booking
func (s *Slot) IsSelectable() bool {
	return !s.IsBooked && !s.IsExpired
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}

// BookedAppointment is an existing appointment already holding a slot for (doctor, date).
// Time is the HH:MM prefix of the backend's "HH:MM:SS" value.
type BookedAppointment struct {
	AppointmentID int64
	Time          types.TimeString
	Token         int
}
