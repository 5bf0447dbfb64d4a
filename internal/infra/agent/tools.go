package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/infra/calcom"
	"booking-concierge/internal/usecase"

	"github.com/sashabaranov/go-openai"
)

// tool pairs a function definition handed to the model with its executor.
// Executors never return Go errors: every failure is rendered as a JSON
// payload so the model can explain it to the user instead of the turn dying.
type tool struct {
	definition openai.Tool
	run        func(ctx context.Context, arguments string) string
}

func newToolset(availability usecase.AvailabilityUseCase, booking usecase.BookingUseCase) map[string]tool {
	return map[string]tool{
		"get_slots": {
			definition: openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "get_slots",
					Description: "Obtiene los slots disponibles para reservar citas. Acepta expresiones de fecha en lenguaje natural.",
					Parameters: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"date_expression": map[string]any{
								"type":        "string",
								"description": "Expresión de fecha en lenguaje natural (ej. \"mañana\", \"lunes\", \"31 de marzo\"). Por defecto se usará mañana.",
							},
						},
					},
				},
			},
			run: getSlotsTool(availability),
		},
		"schedule_appointment": {
			definition: openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        "schedule_appointment",
					Description: "Programa una cita en un slot de tiempo disponible.",
					Parameters: map[string]any{
						"type": "object",
						"properties": map[string]any{
							"selected_date": map[string]any{
								"type":        "string",
								"description": "La fecha para la cita en formato YYYY-MM-DD.",
							},
							"selected_time": map[string]any{
								"type":        "string",
								"description": "La hora para la cita en formato HH:MM.",
							},
							"name": map[string]any{
								"type":        "string",
								"description": "El nombre de la persona que reserva la cita.",
							},
							"email": map[string]any{
								"type":        "string",
								"description": "El correo de la persona que reserva la cita.",
							},
							"notes": map[string]any{
								"type":        "string",
								"description": "Notas opcionales para la cita.",
							},
						},
						"required": []string{"selected_date", "selected_time", "name", "email"},
					},
				},
			},
			run: scheduleAppointmentTool(booking),
		},
	}
}

func getSlotsTool(availability usecase.AvailabilityUseCase) func(ctx context.Context, arguments string) string {
	return func(ctx context.Context, arguments string) string {
		var args struct {
			DateExpression string `json:"date_expression"`
		}
		if arguments != "" {
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return toolError("Argumentos inválidos para get_slots", err.Error())
			}
		}

		result, err := availability.GetSlots(ctx, args.DateExpression)
		if err != nil {
			var noAvail *usecase.NoAvailabilityError
			if errors.As(err, &noAvail) {
				return toolJSON(map[string]any{
					"error":      "No hay disponibilidad para las fechas seleccionadas.",
					"date_query": noAvail.DateQuery,
					"date_from":  noAvail.DateFrom,
					"date_to":    noAvail.DateTo,
				})
			}
			var provErr *calcom.ProviderError
			if errors.As(err, &provErr) {
				return toolError(fmt.Sprintf("Error al obtener disponibilidad: %d", provErr.Status), provErr.Details)
			}
			return toolError("Error en la operación: "+err.Error(), "Ocurrió un error inesperado en get_slots")
		}
		return toolJSON(result)
	}
}

func scheduleAppointmentTool(booking usecase.BookingUseCase) func(ctx context.Context, arguments string) string {
	return func(ctx context.Context, arguments string) string {
		var args struct {
			SelectedDate string `json:"selected_date"`
			SelectedTime string `json:"selected_time"`
			Name         string `json:"name"`
			Email        string `json:"email"`
			Notes        string `json:"notes"`
		}
		if arguments != "" {
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return toolError("Argumentos inválidos para schedule_appointment", err.Error())
			}
		}

		result, err := booking.ScheduleAppointment(ctx, schedule.BookingRequest{
			Date:  args.SelectedDate,
			Time:  args.SelectedTime,
			Name:  args.Name,
			Email: args.Email,
			Notes: args.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, schedule.ErrIncompleteContact):
				return toolError("Información incompleta", "Se requiere nombre y correo electrónico para agendar la reserva.")
			case errors.Is(err, schedule.ErrIncompleteSchedule):
				return toolError("Información incompleta", "Se requiere fecha y hora para agendar la reserva.")
			case errors.Is(err, schedule.ErrMalformedDateTime):
				return toolJSON(map[string]any{
					"error": "Formato de fecha u hora inválido. Use YYYY-MM-DD para fecha y HH:MM para hora.",
				})
			case errors.Is(err, schedule.ErrPastDate):
				return toolError("La cita seleccionada se encuentra en el pasado.", "Por favor seleccione una fecha y hora futuras.")
			}
			var provErr *calcom.ProviderError
			if errors.As(err, &provErr) {
				return toolError(fmt.Sprintf("❌ Error al programar la reserva: %d", provErr.Status), provErr.Details)
			}
			return toolError("Error en la operación: "+err.Error(), "Ocurrió un error inesperado en schedule_appointment")
		}
		return toolJSON(result)
	}
}

func toolError(message, details string) string {
	return toolJSON(map[string]any{"error": message, "details": details})
}

func toolJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"error":"no se pudo serializar el resultado"}`
	}
	return string(data)
}
