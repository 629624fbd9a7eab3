package reschedule_appointment

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
	"github.com/m04kA/HMS-AppointmentService/pkg/metrics"
	"github.com/m04kA/HMS-AppointmentService/pkg/ptr"
	"github.com/m04kA/HMS-AppointmentService/pkg/types"
)

type MockHospitalClient struct {
	mock.Mock
}

func (m *MockHospitalClient) GetAppointment(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	result, _ := args.Get(0).(*domain.Appointment)
	return result, args.Error(1)
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

func (m *MockHospitalClient) RescheduleAppointment(ctx context.Context, appointmentID int64, req hospitalapi.AppointmentRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID, req)
	result, _ := args.Get(0).(*domain.Appointment)
	return result, args.Error(1)
}

type fakeConfigProvider struct{}

func (fakeConfigProvider) Effective(_ context.Context, departmentID int64, _ *int64, schedulingContext domain.SchedulingContext) *domain.SchedulingConfig {
	return &domain.SchedulingConfig{DepartmentID: &departmentID, Context: schedulingContext, IntervalMinutes: 10, MaxSlots: 4}
}

type fakeMetrics struct {
	submissions []string
}

func (f *fakeMetrics) IncSubmission(operation, outcome string) {
	f.submissions = append(f.submissions, operation+":"+outcome)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	now         = time.Date(2026, 10, 14, 9, 15, 0, 0, time.UTC)
	currentDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	otherDate   = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
)

func appointment() *domain.Appointment {
	return &domain.Appointment{
		ID:           100,
		PatientID:    42,
		DoctorID:     7,
		DepartmentID: 3,
		Date:         currentDate,
		Time:         "09:20",
		Token:        3,
		Status:       domain.AppointmentScheduled,
	}
}

func doctor() *domain.Doctor {
	return &domain.Doctor{ID: 7, DepartmentID: 3, ConsultationStart: ptr.Ptr(types.TimeString("09:00"))}
}

func setup() (*UseCase, *MockHospitalClient, *fakeMetrics) {
	client := &MockHospitalClient{}
	m := &fakeMetrics{}
	uc := NewUseCase(client, fakeConfigProvider{}, m, logger.Nop())
	uc.timeProvider = fixedTime{t: now}
	return uc, client, m
}

func TestExecute_Success(t *testing.T) {
	uc, client, m := setup()

	client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), otherDate).
		Return([]domain.BookedAppointment{{AppointmentID: 201, Time: "09:00", Token: 1}}, nil)
	client.On("RescheduleAppointment", mock.Anything, int64(100), hospitalapi.AppointmentRequest{
		DoctorID:        7,
		DepartmentID:    3,
		AppointmentDate: "2026-10-21",
		AppointmentTime: "09:10:00",
	}).Return(&domain.Appointment{ID: 100, Token: 2}, nil)

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100, Date: otherDate, Token: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Token)
	assert.Equal(t, types.TimeString("09:10"), resp.StartTime)
	assert.Equal(t, string(domain.AppointmentRescheduled), resp.Status)
	assert.Equal(t, types.TimeString("09:20"), resp.PreviousTime)
	assert.Equal(t, []string{"reschedule:" + metrics.OutcomeOK}, m.submissions)
	client.AssertExpectations(t)
}

func TestExecute_SameDayOtherSlot(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), currentDate).
		Return([]domain.BookedAppointment{{AppointmentID: 100, Time: "09:20", Token: 3}}, nil)
	client.On("RescheduleAppointment", mock.Anything, int64(100), mock.MatchedBy(func(req hospitalapi.AppointmentRequest) bool {
		return req.AppointmentTime == "09:30:00" && req.AppointmentDate == "2026-10-20"
	})).Return(&domain.Appointment{ID: 100, Status: domain.AppointmentRescheduled}, nil)

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100, Date: currentDate, Token: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Token)
}

func TestExecute_ExtraSlotAfterBookedExtraSlot(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), otherDate).Return([]domain.BookedAppointment{
		{AppointmentID: 201, Time: "09:00", Token: 1},
		{AppointmentID: 202, Time: "09:10", Token: 2},
		{AppointmentID: 203, Time: "09:20", Token: 3},
		{AppointmentID: 204, Time: "09:30", Token: 4},
		{AppointmentID: 205, Time: "09:40", Token: 5},
	}, nil)
	client.On("RescheduleAppointment", mock.Anything, int64(100), mock.MatchedBy(func(req hospitalapi.AppointmentRequest) bool {
		return req.AppointmentTime == "09:50:00" && req.AppointmentDate == "2026-10-21"
	})).Return(&domain.Appointment{ID: 100, Token: 6, Status: domain.AppointmentRescheduled}, nil)

	resp, err := uc.Execute(context.Background(), &Request{AppointmentID: 100, Date: otherDate, Token: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Token)
	assert.Equal(t, types.TimeString("09:50"), resp.StartTime)
	client.AssertExpectations(t)
}

func TestExecute_SameSlot(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), currentDate).
		Return([]domain.BookedAppointment{{AppointmentID: 100, Time: "09:20", Token: 3}}, nil)

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 100, Date: currentDate, Token: 3})
	assert.ErrorIs(t, err, ErrSameSlot)
	client.AssertNotCalled(t, "RescheduleAppointment", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SubmitErrors(t *testing.T) {
	tests := []struct {
		name        string
		remoteErr   error
		wantErr     error
		wantOutcome string
	}{
		{name: "conflict", remoteErr: hospitalapi.ErrSlotTaken, wantErr: ErrSlotNotAvailable, wantOutcome: metrics.OutcomeConflict},
		{name: "gone", remoteErr: hospitalapi.ErrAppointmentNotFound, wantErr: ErrAppointmentNotFound, wantOutcome: metrics.OutcomeNotFound},
		{name: "rejected", remoteErr: hospitalapi.ErrRejected, wantErr: ErrRejected, wantOutcome: metrics.OutcomeRejected},
		{name: "backend down", remoteErr: hospitalapi.ErrInternal, wantErr: ErrBackendUnavailable, wantOutcome: metrics.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, client, m := setup()

			client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
			client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
			client.On("GetBookedAppointments", mock.Anything, int64(7), otherDate).Return([]domain.BookedAppointment{}, nil)
			client.On("RescheduleAppointment", mock.Anything, int64(100), mock.Anything).Return(nil, tt.remoteErr)

			_, err := uc.Execute(context.Background(), &Request{AppointmentID: 100, Date: otherDate, Token: 1})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"reschedule:" + tt.wantOutcome}, m.submissions)
		})
	}
}

func TestExecute_PreconditionErrors(t *testing.T) {
	completed := appointment()
	completed.Status = domain.AppointmentCompleted

	tests := []struct {
		name    string
		req     *Request
		setup   func(client *MockHospitalClient)
		wantErr error
	}{
		{name: "no token", req: &Request{AppointmentID: 100, Date: otherDate}, wantErr: ErrInvalidInput},
		{name: "past date", req: &Request{AppointmentID: 100, Date: now.AddDate(0, 0, -1), Token: 1}, wantErr: ErrInvalidDate},
		{
			name: "completed",
			req:  &Request{AppointmentID: 100, Date: otherDate, Token: 1},
			setup: func(client *MockHospitalClient) {
				client.On("GetAppointment", mock.Anything, int64(100)).Return(completed, nil)
			},
			wantErr: ErrCannotReschedule,
		},
		{
			name: "booked slot",
			req:  &Request{AppointmentID: 100, Date: otherDate, Token: 1},
			setup: func(client *MockHospitalClient) {
				client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
				client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
				client.On("GetBookedAppointments", mock.Anything, int64(7), otherDate).
					Return([]domain.BookedAppointment{{AppointmentID: 201, Time: "09:00", Token: 1}}, nil)
			},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name: "doctor not found",
			req:  &Request{AppointmentID: 100, Date: otherDate, Token: 1},
			setup: func(client *MockHospitalClient) {
				client.On("GetAppointment", mock.Anything, int64(100)).Return(appointment(), nil)
				client.On("GetDoctor", mock.Anything, int64(7)).Return(nil, hospitalapi.ErrDoctorNotFound)
			},
			wantErr: ErrDoctorNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, client, _ := setup()
			if tt.setup != nil {
				tt.setup(client)
			}

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
