package create_appointment

import (
	"context"
	"fmt"
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

func (m *MockHospitalClient) CreateAppointment(ctx context.Context, req hospitalapi.AppointmentRequest) (*domain.Appointment, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*domain.Appointment)
	return result, args.Error(1)
}

type fakeConfigProvider struct{}

func (fakeConfigProvider) Effective(_ context.Context, departmentID int64, _ *int64, schedulingContext domain.SchedulingContext) *domain.SchedulingConfig {
	return &domain.SchedulingConfig{DepartmentID: &departmentID, Context: schedulingContext, IntervalMinutes: 10, MaxSlots: 3}
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
	now        = time.Date(2026, 10, 14, 9, 15, 0, 0, time.UTC)
	futureDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
)

func doctor() *domain.Doctor {
	return &domain.Doctor{
		ID:                7,
		DepartmentID:      3,
		ConsultationStart: ptr.Ptr(types.TimeString("09:00")),
		ConsultationFee:   500,
	}
}

func validRequest(token int) *Request {
	return &Request{PatientID: 42, DoctorID: 7, DepartmentID: 3, Date: futureDate, Token: token}
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

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).
		Return([]domain.BookedAppointment{{Time: "09:10", Token: 2}}, nil)
	client.On("CreateAppointment", mock.Anything, hospitalapi.AppointmentRequest{
		PatientID:       42,
		DoctorID:        7,
		DepartmentID:    3,
		AppointmentDate: "2026-10-20",
		AppointmentTime: "09:20:00",
	}).Return(&domain.Appointment{ID: 100, Status: domain.AppointmentScheduled}, nil)

	resp, err := uc.Execute(context.Background(), validRequest(3))
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, 3, resp.Token)
	assert.Equal(t, types.TimeString("09:20"), resp.StartTime)
	assert.Equal(t, types.TimeString("09:30"), resp.EndTime)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, []string{"create:" + metrics.OutcomeOK}, m.submissions)
	client.AssertExpectations(t)
}

func TestExecute_ExtraSlotToken(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
		{Time: "09:00", Token: 1}, {Time: "09:10", Token: 2}, {Time: "09:20", Token: 3},
	}, nil)
	client.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(req hospitalapi.AppointmentRequest) bool {
		return req.AppointmentTime == "09:30:00"
	})).Return(&domain.Appointment{ID: 101, Token: 4, Status: domain.AppointmentScheduled}, nil)

	resp, err := uc.Execute(context.Background(), validRequest(4))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Token)
	assert.Equal(t, types.TimeString("09:30"), resp.StartTime)
}

func TestExecute_ExtraSlotAfterBookedExtraSlot(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
		{Time: "09:00", Token: 1}, {Time: "09:10", Token: 2}, {Time: "09:20", Token: 3}, {Time: "09:30", Token: 4},
	}, nil)
	client.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(req hospitalapi.AppointmentRequest) bool {
		return req.AppointmentTime == "09:40:00"
	})).Return(&domain.Appointment{ID: 102, Token: 5, Status: domain.AppointmentScheduled}, nil)

	resp, err := uc.Execute(context.Background(), validRequest(5))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Token)
	assert.Equal(t, types.TimeString("09:40"), resp.StartTime)
	assert.Equal(t, types.TimeString("09:50"), resp.EndTime)
	client.AssertExpectations(t)
}

func TestExecute_BookedExtraSlotRejected(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
		{Time: "09:00", Token: 1}, {Time: "09:10", Token: 2}, {Time: "09:20", Token: 3}, {Time: "09:30", Token: 4},
	}, nil)

	_, err := uc.Execute(context.Background(), validRequest(4))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	client.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

func TestExecute_ExtraSlotNotAllowedWhileFree(t *testing.T) {
	uc, client, _ := setup()

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{}, nil)

	_, err := uc.Execute(context.Background(), validRequest(4))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	client.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
}

func TestExecute_BookedSlot(t *testing.T) {
	uc, client, m := setup()

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).
		Return([]domain.BookedAppointment{{Time: "09:10", Token: 2}}, nil)

	_, err := uc.Execute(context.Background(), validRequest(2))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, m.submissions)
}

func TestExecute_ExpiredSlotToday(t *testing.T) {
	uc, client, _ := setup()
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
	client.On("GetBookedAppointments", mock.Anything, int64(7), today).Return([]domain.BookedAppointment{}, nil)

	req := validRequest(1)
	req.Date = today
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_SubmitErrors(t *testing.T) {
	tests := []struct {
		name        string
		remoteErr   error
		wantErr     error
		wantOutcome string
	}{
		{name: "taken concurrently", remoteErr: hospitalapi.ErrSlotTaken, wantErr: ErrSlotNotAvailable, wantOutcome: metrics.OutcomeConflict},
		{name: "rejected", remoteErr: fmt.Errorf("%w: patient not found", hospitalapi.ErrRejected), wantErr: ErrRejected, wantOutcome: metrics.OutcomeRejected},
		{name: "backend down", remoteErr: hospitalapi.ErrInternal, wantErr: ErrBackendUnavailable, wantOutcome: metrics.OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, client, m := setup()

			client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
			client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{}, nil)
			client.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil, tt.remoteErr)

			_, err := uc.Execute(context.Background(), validRequest(1))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"create:" + tt.wantOutcome}, m.submissions)
			// Повторной попытки нет
			client.AssertNumberOfCalls(t, "CreateAppointment", 1)
		})
	}
}

func TestExecute_PreconditionErrors(t *testing.T) {
	noSchedule := doctor()
	noSchedule.ConsultationStart = nil

	tests := []struct {
		name    string
		req     *Request
		setup   func(client *MockHospitalClient)
		wantErr error
	}{
		{name: "no patient", req: &Request{DoctorID: 7, DepartmentID: 3, Date: futureDate, Token: 1}, wantErr: ErrInvalidInput},
		{name: "no token", req: &Request{PatientID: 42, DoctorID: 7, DepartmentID: 3, Date: futureDate}, wantErr: ErrInvalidInput},
		{name: "past date", req: &Request{PatientID: 42, DoctorID: 7, DepartmentID: 3, Date: now.AddDate(0, 0, -2), Token: 1}, wantErr: ErrInvalidDate},
		{
			name: "doctor not found",
			req:  validRequest(1),
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(nil, hospitalapi.ErrDoctorNotFound)
			},
			wantErr: ErrDoctorNotFound,
		},
		{
			name: "other department",
			req:  &Request{PatientID: 42, DoctorID: 7, DepartmentID: 9, Date: futureDate, Token: 1},
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
			},
			wantErr: ErrDepartmentMismatch,
		},
		{
			name: "no schedule",
			req:  validRequest(1),
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(noSchedule, nil)
			},
			wantErr: ErrNoSchedule,
		},
		{
			name: "token out of range",
			req:  validRequest(9),
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
				client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return([]domain.BookedAppointment{
					{Token: 1}, {Token: 2}, {Token: 3},
				}, nil)
			},
			wantErr: ErrSlotNotAvailable,
		},
		{
			name: "bookings unavailable",
			req:  validRequest(1),
			setup: func(client *MockHospitalClient) {
				client.On("GetDoctor", mock.Anything, int64(7)).Return(doctor(), nil)
				client.On("GetBookedAppointments", mock.Anything, int64(7), futureDate).Return(nil, hospitalapi.ErrInternal)
			},
			wantErr: ErrBackendUnavailable,
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
