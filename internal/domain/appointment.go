package domain

import (
	"time"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment in the hospital backend
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "scheduled"
	AppointmentRescheduled AppointmentStatus = "rescheduled"
	AppointmentCompleted   AppointmentStatus = "completed"
	AppointmentCancelled   AppointmentStatus = "cancelled"
)

// Appointment represents a patient's appointment with a doctor
type Appointment struct {
	ID           int64
	PatientID    int64
	DoctorID     int64
	DepartmentID int64
	Date         time.Time
	Time         types.TimeString
	Token        int
	Status       AppointmentStatus
	CreatedAt    time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentRescheduled
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.IsActive()
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.IsActive()
}

// Doctor is the scheduling-relevant part of a doctor record
type Doctor struct {
	ID           int64
	Name         string
	DepartmentID int64
	// ConsultationStart is nil when the backend has no consultation time for the doctor
	ConsultationStart *types.TimeString
	ConsultationFee   float64
}

// HasSchedule returns true if slots can be generated for the doctor
func (d *Doctor) HasSchedule() bool {
	return d.ConsultationStart != nil && !d.ConsultationStart.IsZero()
}

// Holds returns true if the booked entry is this appointment's own slot.
// Entries without an id are matched by date, time and token.
func (a *Appointment) Holds(b BookedAppointment, date time.Time) bool {
	if b.AppointmentID != 0 {
		return b.AppointmentID == a.ID
	}
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := date.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}
	return b.Time.Equal(a.Time) && b.Token == a.Token
}
