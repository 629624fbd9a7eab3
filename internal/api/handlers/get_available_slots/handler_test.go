package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-AppointmentService/internal/domain"
	"github.com/m04kA/HMS-AppointmentService/internal/integrations/hospitalapi"
	getAvailableSlots "github.com/m04kA/HMS-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/doctors/{doctorId}/available-slots", NewHandler(uc, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		DoctorID:        7,
		DepartmentID:    3,
		Date:            date,
		Context:         domain.ContextReschedule,
		IntervalMinutes: 10,
		HasSchedule:     true,
		Slots: []domain.Slot{
			{Token: 1, StartTime: "09:00", EndTime: "09:10", IsBooked: true},
		},
		NeedsAdditionalSlot: true,
	}}

	rec := serve(uc, "/api/v1/doctors/7/available-slots?date=2026-10-20&context=reschedule&extraSlots=1")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, &getAvailableSlots.Request{
		DoctorID: 7, Date: date, Context: domain.ContextReschedule, ExtraSlots: 1,
	}, uc.got)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-20", body.Date)
	assert.True(t, body.NeedsAdditionalSlot)
	assert.Equal(t, []Slot{{Token: 1, StartTime: "09:00", EndTime: "09:10", IsBooked: true}}, body.Slots)
}

func TestHandle_DefaultContext(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Slots: []domain.Slot{}}}

	rec := serve(uc, "/api/v1/doctors/7/available-slots?date=2026-10-20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.ContextBooking, uc.got.Context)
	assert.Equal(t, 0, uc.got.ExtraSlots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{name: "bad doctor id", target: "/api/v1/doctors/abc/available-slots?date=2026-10-20", wantCode: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/doctors/7/available-slots", wantCode: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/doctors/7/available-slots?date=20-10-2026", wantCode: http.StatusBadRequest},
		{name: "bad extra", target: "/api/v1/doctors/7/available-slots?date=2026-10-20&extraSlots=x", wantCode: http.StatusBadRequest},
		{name: "not found", target: "/api/v1/doctors/7/available-slots?date=2026-10-20", err: getAvailableSlots.ErrDoctorNotFound, wantCode: http.StatusNotFound},
		{name: "append refused", target: "/api/v1/doctors/7/available-slots?date=2026-10-20&extraSlots=1", err: getAvailableSlots.ErrAppendNotAllowed, wantCode: http.StatusConflict},
		{
			name:     "backend down",
			target:   "/api/v1/doctors/7/available-slots?date=2026-10-20",
			err:      fmt.Errorf("%w: %w", getAvailableSlots.ErrBackendUnavailable, hospitalapi.ErrInternal),
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "backend token expired",
			target:   "/api/v1/doctors/7/available-slots?date=2026-10-20",
			err:      fmt.Errorf("%w: %w", getAvailableSlots.ErrBackendUnavailable, hospitalapi.ErrUnauthorized),
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
