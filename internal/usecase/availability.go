package usecase

import (
	"context"
	"time"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/infra/calcom"
	"booking-concierge/internal/pkg/clock"
	"booking-concierge/internal/pkg/errs"
)

var ErrProviderUnavailable = errs.New("scheduling provider unavailable")

const (
	dayKeyLayout      = "2006-01-02"
	defaultQueryLabel = "próximos días"
)

// CalendarProvider is the scheduling-provider contract the orchestrators
// consume. The concrete client lives in infra/calcom.
type CalendarProvider interface {
	AvailableSlots(ctx context.Context, window schedule.Window, tzName string) (map[string][]schedule.RawSlot, error)
	CreateBooking(ctx context.Context, payload schedule.BookingPayload, tzName string) (*calcom.BookingConfirmation, error)
}

// SlotsResult is the curated availability presented to the conversation.
type SlotsResult struct {
	AvailableSlots []schedule.Slot `json:"available_slots"`
	ReadableSlots  []string        `json:"readable_slots"`
	TotalSlots     int             `json:"total_slots"`
	DateQuery      string          `json:"date_query"`
	DateFrom       string          `json:"date_from"`
	DateTo         string          `json:"date_to"`
}

// NoAvailabilityError is the expected zero-slots outcome. It is distinct from
// a provider failure and carries the query context for user-facing
// diagnostics.
type NoAvailabilityError struct {
	DateQuery string `json:"date_query"`
	DateFrom  string `json:"date_from"`
	DateTo    string `json:"date_to"`
}

func (e *NoAvailabilityError) Error() string {
	return "no availability between " + e.DateFrom + " and " + e.DateTo
}

type AvailabilityUseCase interface {
	GetSlots(ctx context.Context, dateExpression string) (*SlotsResult, error)
}

type availabilityUseCaseImpl struct {
	provider CalendarProvider
	resolver *schedule.WindowResolver
	curator  *schedule.Curator
	clock    clock.Clock
	loc      *time.Location
	tzName   string
}

func NewAvailabilityUseCase(
	provider CalendarProvider,
	resolver *schedule.WindowResolver,
	curator *schedule.Curator,
	clk clock.Clock,
	loc *time.Location,
) AvailabilityUseCase {
	return &availabilityUseCaseImpl{
		provider: provider,
		resolver: resolver,
		curator:  curator,
		clock:    clk,
		loc:      loc,
		tzName:   loc.String(),
	}
}

// GetSlots resolves the free-text expression into a search window, queries
// the provider, and curates the raw payload into a presentable shortlist.
func (u *availabilityUseCaseImpl) GetSlots(ctx context.Context, dateExpression string) (*SlotsResult, error) {
	now := u.clock.Now().In(u.loc)
	window := u.resolver.Resolve(dateExpression, now, u.loc)

	raw, err := u.provider.AvailableSlots(ctx, window, u.tzName)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "fetch availability"), ErrProviderUnavailable)
	}

	grouped := schedule.NormalizeSlots(raw)
	curated := u.curator.Curate(grouped)

	query := dateExpression
	if query == "" {
		query = defaultQueryLabel
	}

	if len(curated) == 0 {
		return nil, &NoAvailabilityError{
			DateQuery: query,
			DateFrom:  window.Start.Format(dayKeyLayout),
			DateTo:    window.End.Format(dayKeyLayout),
		}
	}

	return &SlotsResult{
		AvailableSlots: curated,
		ReadableSlots:  u.curator.Readable(curated),
		TotalSlots:     len(curated),
		DateQuery:      query,
		DateFrom:       window.Start.Format(dayKeyLayout),
		DateTo:         window.End.Format(dayKeyLayout),
	}, nil
}
