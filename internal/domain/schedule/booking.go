package schedule

import (
	"time"

	"booking-concierge/internal/pkg/errs"
)

var (
	ErrIncompleteContact  = errs.New("name and email are required to book")
	ErrIncompleteSchedule = errs.New("date and time are required to book")
	ErrMalformedDateTime  = errs.New("invalid date or time format")
	ErrPastDate           = errs.New("selected slot is in the past")
)

// DefaultBookingDuration is the fallback event length. Provider event types
// can declare other durations, hence the constructor parameter.
const DefaultBookingDuration = 30 * time.Minute

const bookingDateTimeLayout = "2006-01-02T15:04"

// BookingRequest is a user's booking selection plus contact details, exactly
// as collected by the conversation: date YYYY-MM-DD, time HH:MM.
type BookingRequest struct {
	Date  string
	Time  string
	Name  string
	Email string
	Notes string
}

// BookingPayload is a validated, timezone-localized booking ready for
// submission to the provider.
type BookingPayload struct {
	Start time.Time
	End   time.Time
	Name  string
	Email string
	Notes string
}

// StartISO and EndISO render the instants in full offset-qualified ISO form
// for the provider wire format.
func (p BookingPayload) StartISO() string { return p.Start.Format(time.RFC3339) }
func (p BookingPayload) EndISO() string   { return p.End.Format(time.RFC3339) }

// BookingValidator is the single gate every booking attempt passes before
// any external submission. Pure: the reference "now" is caller-supplied.
type BookingValidator struct {
	duration time.Duration
}

func NewBookingValidator(duration time.Duration) *BookingValidator {
	if duration <= 0 {
		duration = DefaultBookingDuration
	}
	return &BookingValidator{duration: duration}
}

// Validate checks each precondition in order and returns the first violation
// as a typed error. On success the payload carries start plus the configured
// fixed duration, both localized to loc.
func (v *BookingValidator) Validate(req BookingRequest, now time.Time, loc *time.Location) (BookingPayload, error) {
	if req.Name == "" || req.Email == "" {
		return BookingPayload{}, ErrIncompleteContact
	}
	if req.Date == "" || req.Time == "" {
		return BookingPayload{}, ErrIncompleteSchedule
	}

	start, err := time.ParseInLocation(bookingDateTimeLayout, req.Date+"T"+req.Time, loc)
	if err != nil {
		return BookingPayload{}, errs.Mark(errs.Wrap(err, "parse booking datetime"), ErrMalformedDateTime)
	}

	if !start.After(now.In(loc)) {
		return BookingPayload{}, ErrPastDate
	}

	return BookingPayload{
		Start: start,
		End:   start.Add(v.duration),
		Name:  req.Name,
		Email: req.Email,
		Notes: req.Notes,
	}, nil
}
