package reschedule_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rescheduleAppointment "github.com/m04kA/HMS-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/HMS-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got  *rescheduleAppointment.Request
	resp *rescheduleAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func put(uc *fakeUseCase, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}/reschedule", NewHandler(uc, logger.Nop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, target, strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	date := time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &rescheduleAppointment.Response{
		ID: 100, Date: date, StartTime: "09:10", EndTime: "09:20", Token: 2, Status: "rescheduled",
		PreviousDate: date.AddDate(0, 0, -1), PreviousTime: "09:20",
	}}

	rec := put(uc, "/api/v1/appointments/100/reschedule", `{"appointmentDate":"2026-10-21","token":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &rescheduleAppointment.Request{AppointmentID: 100, Date: date, Token: 2}, uc.got)

	var body AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-10-20", body.PreviousDate)
	assert.Equal(t, "rescheduled", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	const body = `{"appointmentDate":"2026-10-21","token":2}`

	tests := []struct {
		name     string
		target   string
		body     string
		err      error
		wantCode int
	}{
		{name: "bad id", target: "/api/v1/appointments/x/reschedule", body: body, wantCode: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/appointments/1/reschedule", body: `{"appointmentDate":"tomorrow","token":2}`, wantCode: http.StatusBadRequest},
		{name: "conflict", target: "/api/v1/appointments/1/reschedule", body: body, err: rescheduleAppointment.ErrSlotNotAvailable, wantCode: http.StatusConflict},
		{name: "same slot", target: "/api/v1/appointments/1/reschedule", body: body, err: rescheduleAppointment.ErrSameSlot, wantCode: http.StatusBadRequest},
		{name: "cancelled", target: "/api/v1/appointments/1/reschedule", body: body, err: rescheduleAppointment.ErrCannotReschedule, wantCode: http.StatusConflict},
		{name: "not found", target: "/api/v1/appointments/1/reschedule", body: body, err: rescheduleAppointment.ErrAppointmentNotFound, wantCode: http.StatusNotFound},
		{name: "backend", target: "/api/v1/appointments/1/reschedule", body: body, err: rescheduleAppointment.ErrBackendUnavailable, wantCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(&fakeUseCase{err: tt.err}, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
