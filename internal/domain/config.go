package domain

import "time"

// SchedulingContext selects which flow a slot list is generated for
type SchedulingContext string

const (
	ContextBooking    SchedulingContext = "booking"
	ContextReschedule SchedulingContext = "reschedule"
)

// IsValid returns true for known scheduling contexts
func (c SchedulingContext) IsValid() bool {
	return c == ContextBooking || c == ContextReschedule
}

// SchedulingConfig holds slot generation parameters for a scheduling context.
// Supports hierarchical configuration:
// 1. Doctor in department (department_id, doctor_id)
// 2. Department-wide (department_id, NULL)
// 3. Global (NULL, NULL)
type SchedulingConfig struct {
	ID              int64
	DepartmentID    *int64 // NULL = config for all departments
	DoctorID        *int64 // NULL = config for all doctors of the department
	Context         SchedulingContext
	IntervalMinutes int
	MaxSlots        int
	IsDefault       bool // true when no stored config matched and defaults were used
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsGlobalConfig returns true if this configuration applies to every department
func (c *SchedulingConfig) IsGlobalConfig() bool {
	return c.DepartmentID == nil && c.DoctorID == nil
}

// IsDepartmentWide returns true if this configuration applies to all doctors of one department
func (c *SchedulingConfig) IsDepartmentWide() bool {
	return c.DepartmentID != nil && c.DoctorID == nil
}

// IsDoctorSpecific returns true if this configuration applies to a single doctor
func (c *SchedulingConfig) IsDoctorSpecific() bool {
	return c.DoctorID != nil
}

// SchedulingDefaults are used when no stored configuration matches
type SchedulingDefaults struct {
	BookingIntervalMinutes    int
	RescheduleIntervalMinutes int
	MaxSlots                  int
}

// For returns the default configuration for a scheduling context
func (d SchedulingDefaults) For(ctx SchedulingContext) *SchedulingConfig {
	interval := d.BookingIntervalMinutes
	if ctx == ContextReschedule {
		interval = d.RescheduleIntervalMinutes
	}
	return &SchedulingConfig{
		Context:         ctx,
		IntervalMinutes: interval,
		MaxSlots:        d.MaxSlots,
		IsDefault:       true,
	}
}
