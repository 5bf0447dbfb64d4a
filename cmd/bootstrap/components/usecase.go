package components

import (
	"time"

	"booking-concierge/internal/domain/schedule"
	"booking-concierge/internal/pkg/clock"
	"booking-concierge/internal/pkg/config"
	"booking-concierge/internal/pkg/timezone"
	"booking-concierge/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	fx.Provide(
		usecase.NewAvailabilityUseCase,
		usecase.NewBookingUseCase,
		usecase.NewConversationUseCase,
	),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	timezone.DefaultCatalog,
	schedule.SpanishLocale,
	schedule.NewWindowResolver,
	NewCurator,
	NewBookingValidator,
	NewBookingLocation,
)

func NewCurator(cfg config.Config, locale schedule.Locale) *schedule.Curator {
	return schedule.NewCurator(locale, cfg.Booking.MaxDays, cfg.Booking.MaxSlots)
}

func NewBookingValidator(cfg config.Config) *schedule.BookingValidator {
	return schedule.NewBookingValidator(cfg.Booking.Duration)
}

func NewBookingLocation(cfg config.Config, catalog *timezone.Catalog) (*time.Location, error) {
	return catalog.Location(timezone.Zone(cfg.Booking.Zone))
}
