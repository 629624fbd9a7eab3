package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

func TestSlot_IsSelectable(t *testing.T) {
	assert.True(t, (&Slot{Token: 1}).IsSelectable())
	assert.False(t, (&Slot{Token: 1, IsBooked: true}).IsSelectable())
	assert.False(t, (&Slot{Token: 1, IsExpired: true}).IsSelectable())
}

func TestSlot_DurationMinutes(t *testing.T) {
	s := Slot{StartTime: "09:10", EndTime: "09:20"}
	assert.Equal(t, 10, s.DurationMinutes())
}

func TestSchedulingDefaults_For(t *testing.T) {
	d := SchedulingDefaults{BookingIntervalMinutes: 5, RescheduleIntervalMinutes: 10, MaxSlots: 50}

	booking := d.For(ContextBooking)
	assert.Equal(t, 5, booking.IntervalMinutes)
	assert.True(t, booking.IsDefault)

	reschedule := d.For(ContextReschedule)
	assert.Equal(t, 10, reschedule.IntervalMinutes)
	assert.Equal(t, 50, reschedule.MaxSlots)
}

func TestSchedulingConfig_Scope(t *testing.T) {
	dep, doc := int64(3), int64(7)

	assert.True(t, (&SchedulingConfig{}).IsGlobalConfig())
	assert.True(t, (&SchedulingConfig{DepartmentID: &dep}).IsDepartmentWide())
	assert.True(t, (&SchedulingConfig{DepartmentID: &dep, DoctorID: &doc}).IsDoctorSpecific())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleReceptionist.IsValid())
	assert.False(t, Role("janitor").IsValid())
}

func TestDoctor_HasSchedule(t *testing.T) {
	start := types.TimeString("09:00")
	assert.True(t, (&Doctor{ConsultationStart: &start}).HasSchedule())
	assert.False(t, (&Doctor{}).HasSchedule())
}

func TestAppointment_States(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentScheduled}).CanBeRescheduled())
	assert.False(t, (&Appointment{Status: AppointmentCancelled}).CanBeCancelled())
}

func TestAppointment_Holds(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	a := &Appointment{ID: 100, Date: date, Time: "09:20", Token: 3}

	assert.True(t, a.Holds(BookedAppointment{AppointmentID: 100, Time: "11:00", Token: 9}, date))
	assert.False(t, a.Holds(BookedAppointment{AppointmentID: 101, Time: "09:20", Token: 3}, date))
	assert.True(t, a.Holds(BookedAppointment{Time: "09:20", Token: 3}, date))
	assert.False(t, a.Holds(BookedAppointment{Time: "09:20", Token: 3}, date.AddDate(0, 0, 1)))
	assert.False(t, a.Holds(BookedAppointment{Time: "09:20", Token: 4}, date))
}
