//go:build unit

package agent

import (
	"context"
	"encoding/json"
	"testing"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/infra/calcom"
	"booking-concierge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailability struct {
	result *usecase.SlotsResult
	err    error
}

func (f *fakeAvailability) GetSlots(context.Context, string) (*usecase.SlotsResult, error) {
	return f.result, f.err
}

type fakeBooking struct {
	result *usecase.BookingResult
	err    error
}

func (f *fakeBooking) ScheduleAppointment(context.Context, schedule.BookingRequest) (*usecase.BookingResult, error) {
	return f.result, f.err
}

func decodeToolResult(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestGetSlotsTool_NoAvailability(t *testing.T) {
	avail := &fakeAvailability{err: &usecase.NoAvailabilityError{
		DateQuery: "31 de marzo",
		DateFrom:  "2025-03-31",
		DateTo:    "2025-04-07",
	}}
	tools := newToolset(avail, &fakeBooking{})

	out := decodeToolResult(t, tools["get_slots"].run(context.Background(), `{"date_expression":"31 de marzo"}`))

	assert.Equal(t, "No hay disponibilidad para las fechas seleccionadas.", out["error"])
	assert.Equal(t, "31 de marzo", out["date_query"])
	assert.Equal(t, "2025-03-31", out["date_from"])
	assert.Equal(t, "2025-04-07", out["date_to"])
}

func TestGetSlotsTool_ProviderFailure(t *testing.T) {
	avail := &fakeAvailability{err: &calcom.ProviderError{Status: 500, Details: "upstream down"}}
	tools := newToolset(avail, &fakeBooking{})

	out := decodeToolResult(t, tools["get_slots"].run(context.Background(), ""))

	assert.Equal(t, "Error al obtener disponibilidad: 500", out["error"])
	assert.Equal(t, "upstream down", out["details"])
}

func TestScheduleAppointmentTool_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantError   string
		wantDetails string
	}{
		{
			name:        "missing contact",
			err:         schedule.ErrIncompleteContact,
			wantError:   "Información incompleta",
			wantDetails: "Se requiere nombre y correo electrónico para agendar la reserva.",
		},
		{
			name:        "missing schedule",
			err:         schedule.ErrIncompleteSchedule,
			wantError:   "Información incompleta",
			wantDetails: "Se requiere fecha y hora para agendar la reserva.",
		},
		{
			name:      "malformed date",
			err:       schedule.ErrMalformedDateTime,
			wantError: "Formato de fecha u hora inválido. Use YYYY-MM-DD para fecha y HH:MM para hora.",
		},
		{
			name:        "past date",
			err:         schedule.ErrPastDate,
			wantError:   "La cita seleccionada se encuentra en el pasado.",
			wantDetails: "Por favor seleccione una fecha y hora futuras.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := newToolset(&fakeAvailability{}, &fakeBooking{err: tt.err})

			out := decodeToolResult(t, tools["schedule_appointment"].run(context.Background(), `{"selected_date":"2024-04-11"}`))

			assert.Equal(t, tt.wantError, out["error"])
			if tt.wantDetails != "" {
				assert.Equal(t, tt.wantDetails, out["details"])
			}
		})
	}
}

func TestScheduleAppointmentTool_Success(t *testing.T) {
	book := &fakeBooking{result: &usecase.BookingResult{
		Success:       true,
		AppointmentID: "12345",
		ScheduledDate: "Jueves 11 de Abril de 2024",
		ScheduledTime: "10:00",
		Message:       "✅ *¡Reserva confirmada exitosamente!*",
	}}
	tools := newToolset(&fakeAvailability{}, book)

	raw := tools["schedule_appointment"].run(context.Background(),
		`{"selected_date":"2024-04-11","selected_time":"10:00","name":"Ana","email":"ana@example.com"}`)
	out := decodeToolResult(t, raw)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, "12345", out["appointment_id"])
}

func TestTools_MalformedArguments(t *testing.T) {
	tools := newToolset(&fakeAvailability{}, &fakeBooking{})

	out := decodeToolResult(t, tools["get_slots"].run(context.Background(), `{not json`))
	assert.Equal(t, "Argumentos inválidos para get_slots", out["error"])

	out = decodeToolResult(t, tools["schedule_appointment"].run(context.Background(), `{not json`))
	assert.Equal(t, "Argumentos inválidos para schedule_appointment", out["error"])
}
