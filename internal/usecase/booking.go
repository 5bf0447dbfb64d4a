package usecase

import (
	"context"
	"strconv"
	"time"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/pkg/clock"
	"booking-concierge/internal/pkg/errs"
)

// Placeholder until the provider starts returning per-booking meeting links.
const defaultMeetingURL = "https://meet.google.com/abc-defg-hij"

const confirmationMessage = "✅ *¡Reserva confirmada exitosamente!*"

// BookingResult is the confirmation summary handed back to the conversation.
type BookingResult struct {
	Success          bool   `json:"success"`
	AppointmentID    string `json:"appointment_id"`
	ScheduledDate    string `json:"scheduled_date"`
	ScheduledTime    string `json:"scheduled_time"`
	ConfirmationLink string `json:"confirmation_link"`
	MeetingURL       string `json:"meeting_url"`
	Message          string `json:"message"`
}

type BookingUseCase interface {
	ScheduleAppointment(ctx context.Context, req schedule.BookingRequest) (*BookingResult, error)
}

type bookingUseCaseImpl struct {
	provider  CalendarProvider
	validator *schedule.BookingValidator
	locale    schedule.Locale
	clock     clock.Clock
	loc       *time.Location
	tzName    string
}

func NewBookingUseCase(
	provider CalendarProvider,
	validator *schedule.BookingValidator,
	locale schedule.Locale,
	clk clock.Clock,
	loc *time.Location,
) BookingUseCase {
	return &bookingUseCaseImpl{
		provider:  provider,
		validator: validator,
		locale:    locale,
		clock:     clk,
		loc:       loc,
		tzName:    loc.String(),
	}
}

// ScheduleAppointment validates the request against "now" and submits it to
// the provider. Validation failures come back as the schedule package's typed
// errors; provider failures are marked ErrProviderUnavailable.
func (u *bookingUseCaseImpl) ScheduleAppointment(ctx context.Context, req schedule.BookingRequest) (*BookingResult, error) {
	payload, err := u.validator.Validate(req, u.clock.Now(), u.loc)
	if err != nil {
		return nil, err
	}

	confirmation, err := u.provider.CreateBooking(ctx, payload, u.tzName)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "submit booking"), ErrProviderUnavailable)
	}

	scheduledDate, err := time.Parse(dayKeyLayout, req.Date)
	if err != nil {
		// Validate already parsed the date; this cannot happen.
		return nil, errs.Wrap(err, "reparse booking date")
	}

	return &BookingResult{
		Success:          true,
		AppointmentID:    strconv.FormatInt(confirmation.ID, 10),
		ScheduledDate:    u.locale.FormatLongDate(scheduledDate, true),
		ScheduledTime:    req.Time,
		ConfirmationLink: confirmation.ConfirmationLink,
		MeetingURL:       defaultMeetingURL,
		Message:          confirmationMessage,
	}, nil
}
