package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

type MockHospitalClient struct {
	mock.Mock
}

func (m *MockHospitalClient) GetDoctor(ctx context.Context, doctorID int64) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	result, _ := args.Get(0).(*domain.Doctor)
	return result, args.Error(1)
}

func (m *MockHospitalClient) GetBookedAppointments(ctx context.Context, doctorID int64, date time.Time) ([]domain.BookedAppointment, error) {
	args := m.Called(ctx, doctorID, date)
	result, _ := args.Get(0).([]domain.BookedAppointment)
	return result, args.Error(1)
}

type fakeConfigProvider struct {
	interval int
	maxSlots int
	calls    []domain.SchedulingContext
}

func (f *fakeConfigProvider) Effective(_ context.Context, departmentID int64, _ *int64, schedulingContext domain.SchedulingContext) *domain.SchedulingConfig {
	f.calls = append(f.calls, schedulingContext)
	return &domain.SchedulingConfig{
		DepartmentID:    &departmentID,
		Context:         schedulingContext,
		IntervalMinutes: f.interval,
		MaxSlots:        f.maxSlots,
	}
}

type fakeMetrics struct {
	generated map[string]int
}

func (f *fakeMetrics) AddSlotsGenerated(schedulingContext string, count int) {
	if f.generated == nil {
		f.generated = map[string]int{}
	}
	f.generated[schedulingContext] += count
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	now        = time.Date(2026, 10, 14, 9, 15, 0, 0, time.UTC)
	futureDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
)

func doctor() *domain.Doctor {
	return &domain.Doctor{
		ID:                7,
		Name:              "Dr. House",
		DepartmentID:      3,
		ConsultationStart: ptr.Ptr(types.TimeString("09:00")),
		ConsultationFee:   500,
	}
}

func setup(interval, maxSlots int) (*UseCase, *MockHospitalClient, *fakeConfigProvider, *fakeMetrics) {
	client := &MockHospitalClient{}
	provider := &fakeConfigProvider{interval: interval, maxSlots: maxSlots}
	m := &fakeMetrics{}
	uc := NewUseCase(client, provider, m, logger.Nop())
	uc.timeProvider = fixedTime{t: now}
	return uc, client, provider, m
}

func TestExecute_GeneratesSlots(t *testing.T) {
	uc, client, provider, m := setup(10, 3)

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).
		Return([]domain.BookedAppointment{{AppointmentID: 11, Time: "09:10", Token: 2}}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking})
	require.NoError(t, err)

	assert.True(t, resp.HasSchedule)
	assert.Equal(t, 10, resp.IntervalMinutes)
	assert.Equal(t, 500.0, resp.ConsultationFee)
	assert.False(t, resp.NeedsAdditionalSlot)
	assert.Equal(t, []domain.Slot{
		{Token: 1, StartTime: "09:00", EndTime: "09:10"},
		{Token: 2, StartTime: "09:10", EndTime: "09:20", IsBooked: true},
		{Token: 3, StartTime: "09:20", EndTime: "09:30"},
	}, resp.Slots)
	assert.Equal(t, []domain.SchedulingContext{domain.ContextBooking}, provider.calls)
	assert.Equal(t, 3, m.generated["booking"])
}

func TestExecute_AllBookedWithExtraSlot(t *testing.T) {
	uc, client, _, _ := setup(10, 3)

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
		{Time: "09:00", Token: 1}, {Time: "09:10", Token: 2}, {Time: "09:20", Token: 3},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking})
	require.NoError(t, err)
	assert.True(t, resp.NeedsAdditionalSlot)

	resp, err = uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking, ExtraSlots: 1})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, domain.Slot{Token: 4, StartTime: "09:30", EndTime: "09:40"}, resp.Slots[3])
	assert.False(t, resp.NeedsAdditionalSlot)

	_, err = uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking, ExtraSlots: 2})
	assert.ErrorIs(t, err, ErrAppendNotAllowed)
}

func TestExecute_BookedExtraSlotAllowsNextOne(t *testing.T) {
	uc, client, _, _ := setup(10, 3)

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
		{Time: "09:00", Token: 1}, {Time: "09:10", Token: 2}, {Time: "09:20", Token: 3}, {Time: "09:30", Token: 4},
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking, ExtraSlots: 1})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.True(t, resp.Slots[3].IsBooked)
	assert.True(t, resp.NeedsAdditionalSlot)

	resp, err = uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking, ExtraSlots: 2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, domain.Slot{Token: 5, StartTime: "09:40", EndTime: "09:50"}, resp.Slots[4])
	assert.False(t, resp.NeedsAdditionalSlot)
}

func TestExecute_TruncatedAtMidnight(t *testing.T) {
	uc, client, _, _ := setup(10, 50)

	late := doctor()
	late.ConsultationStart = ptr.Ptr(types.TimeString("22:00"))
	client.On("GetDoctor", mock.Anything, int64(7)).Return(late, nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 11)
	assert.True(t, resp.Truncated)
}

func TestExecute_NoConsultationTime(t *testing.T) {
	uc, client, _, _ := setup(10, 3)

	noSchedule := doctor()
	noSchedule.ConsultationStart = nil
	client.On("GetDoctor", mock.Anything, int64(7)).Return(noSchedule, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking})
	require.NoError(t, err)
	assert.False(t, resp.HasSchedule)
	assert.Empty(t, resp.Slots)
	client.AssertNotCalled(t, "GetBookedAppointments", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_TodayMarksExpired(t *testing.T) {
	uc, client, _, _ := setup(10, 4)
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), today).Return([]domain.BookedAppointment{}, nil)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 7, Date: today, Context: domain.ContextReschedule})
	require.NoError(t, err)

	expired := make([]bool, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		expired = append(expired, slot.IsExpired)
	}
	// 09:00 и 09:10 раньше 09:15
	assert.Equal(t, []bool{true, true, false, false}, expired)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(client *MockHospitalClient)
		wantErr error
	}{
		{
			name:    "invalid doctor",
			req:     &Request{DoctorID: 0, Date: futureDate, Context: domain.ContextBooking},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown context",
			req:     &Request{DoctorID: 7, Date: futureDate, Context: "walk-in"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "too many extra slots",
			req:     &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking, ExtraSlots: 51},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "past date",
			req:     &Request{DoctorID: 7, Date: now.AddDate(0, 0, -1), Context: domain.ContextBooking},
			wantErr: ErrInvalidDate,
		},
		{
			name: "doctor not found",
			req:  &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking},
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(nil, hospitalapi.ErrDoctorNotFound)
			},
			wantErr: ErrDoctorNotFound,
		},
		{
			name: "bookings unavailable",
			req:  &Request{DoctorID: 7, Date: futureDate, Context: domain.ContextBooking},
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
				client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return(nil, hospitalapi.ErrInternal)
			},
			wantErr: ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, client, _, _ := setup(10, 3)
			if tt.setup != nil {
				tt.setup(client)
			}

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
