package components

import (
	"log/slog"

	"booking-concierge/internal/infra/agent"
	"booking-concierge/internal/infra/calcom"
	"booking-concierge/internal/pkg/config"
	"booking-concierge/internal/usecase"

	"go.uber.org/fx"
)

// ProviderModule wires the external services: the Cal.com scheduling API and
// the OpenAI-backed concierge.
var ProviderModule = fx.Module("provider",
	fx.Provide(
		fx.Annotate(
			NewCalendarProvider,
			fx.As(new(usecase.CalendarProvider)),
		),
		fx.Annotate(
			NewAgent,
			fx.As(new(usecase.Agent)),
		),
	),
)

func NewCalendarProvider(cfg config.Config) *calcom.Client {
	return calcom.New(cfg.Provider)
}

func NewAgent(
	cfg config.Config,
	availability usecase.AvailabilityUseCase,
	booking usecase.BookingUseCase,
	logger *slog.Logger,
) *agent.Concierge {
	return agent.NewConcierge(cfg.Agent, availability, booking, logger)
}
