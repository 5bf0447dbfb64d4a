package components

import (
	"booking-concierge/internal/infra/repository"
	"booking-concierge/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewConversationRepository,
			fx.As(new(usecase.ConversationRepository)),
		),
	),
)
