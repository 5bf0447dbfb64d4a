package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"booking-concierge/internal/pkg/clock"
	"booking-concierge/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// Webhook event types the concierge understands beyond plain messages.
const (
	EventTypeMessage           = "message"
	EventTypeReservationUpdate = "reservation_update"
	EventTypePromo             = "promo"
	EventTypeUserInfo          = "user_info"
)

const farewellReply = "¡Gracias por contactarnos! Esperamos darle la bienvenida pronto a nuestras experiencias. ¡Buen viaje!"

const anonymousUser = "anonymous"

var exitCommands = map[string]struct{}{
	"salir": {}, "exit": {}, "quit": {}, "adios": {}, "adiós": {},
	"hasta luego": {}, "bye": {}, "byebye": {}, "chao": {}, "chaochao": {},
}

// Contact details worth remembering, fished out of free text.
var profilePatterns = map[string]*regexp.Regexp{
	"name":  regexp.MustCompile(`(?:me\s+llamo|soy|nombre\s+es)\s+([A-Za-zÀ-ÿ\s]+)(?:\.|,|\s|$)`),
	"email": regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
	"phone": regexp.MustCompile(`(?:\+\d{1,3}[\s\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`),
}

// Agent is the conversational backend. Implemented by infra/agent.
type Agent interface {
	Reply(ctx context.Context, userID, message string) (string, error)
	ReplyToEvent(ctx context.Context, userID, systemNote string) (string, error)
}

// ConversationRepository persists turns and user profiles.
type ConversationRepository interface {
	SaveTurn(ctx context.Context, turn readmodel.ConversationTurn) error
	UpdateProfile(ctx context.Context, identifier string, fields map[string]string) error
}

// WebhookEvent is a verified inbound webhook payload.
type WebhookEvent struct {
	Type     string
	Content  string
	UserID   string
	Metadata map[string]any
}

type ConversationUseCase interface {
	ProcessUserMessage(ctx context.Context, userID, message string) (string, error)
	ProcessWebhookEvent(ctx context.Context, evt WebhookEvent) (string, error)
}

type conversationUseCaseImpl struct {
	agent          Agent
	repo           ConversationRepository
	clock          clock.Clock
	logger         *slog.Logger
	conversationID uuid.UUID
}

func NewConversationUseCase(agent Agent, repo ConversationRepository, clk clock.Clock, logger *slog.Logger) ConversationUseCase {
	return &conversationUseCaseImpl{
		agent:          agent,
		repo:           repo,
		clock:          clk,
		logger:         logger,
		conversationID: uuid.New(),
	}
}

// ProcessUserMessage runs one conversational turn: detect profile data,
// get the agent's reply, persist the turn. Persistence failures never break
// the reply; the user still gets an answer.
func (u *conversationUseCaseImpl) ProcessUserMessage(ctx context.Context, userID, message string) (string, error) {
	if userID == "" {
		userID = anonymousUser
	}

	if _, ok := exitCommands[strings.ToLower(strings.TrimSpace(message))]; ok {
		return farewellReply, nil
	}

	if detected := extractProfileData(message); len(detected) > 0 && userID != anonymousUser {
		if err := u.repo.UpdateProfile(ctx, userID, detected); err != nil {
			u.logger.Warn("failed to update user profile", "user_id", userID, "error", err)
		}
	}

	reply, err := u.agent.Reply(ctx, userID, message)
	if err != nil {
		return "", err
	}

	u.saveTurn(ctx, userID, message, reply, map[string]any{"channel": "direct"})
	return reply, nil
}

// ProcessWebhookEvent turns a webhook delivery into a system note for the
// agent, following the event-type phrasing of the conversation design.
func (u *conversationUseCaseImpl) ProcessWebhookEvent(ctx context.Context, evt WebhookEvent) (string, error) {
	note := "Procesando mensaje de webhook de tipo '" + evt.Type + "'. "
	switch evt.Type {
	case EventTypeReservationUpdate:
		note += "Hay una actualización en la reserva: " + evt.Content
	case EventTypePromo:
		note += "Hay una promoción especial para compartir: " + evt.Content
	case EventTypeUserInfo:
		note += "Se ha recibido nueva información del usuario: " + evt.Content
	default:
		note += "Mensaje recibido: " + evt.Content
	}

	userID := evt.UserID
	if userID == "" {
		userID = anonymousUser
	}

	reply, err := u.agent.ReplyToEvent(ctx, userID, note)
	if err != nil {
		return "", err
	}

	if userID != anonymousUser {
		u.saveTurn(ctx, userID, "WEBHOOK: "+evt.Type, reply, map[string]any{
			"channel":      "webhook",
			"webhook_data": evt.Metadata,
		})
	}
	return reply, nil
}

func (u *conversationUseCaseImpl) saveTurn(ctx context.Context, userID, message, reply string, metadata map[string]any) {
	turn := readmodel.ConversationTurn{
		ConversationID: u.conversationID,
		UserIdentifier: userID,
		UserMessage:    message,
		AgentResponse:  reply,
		Metadata:       metadata,
		CreatedAt:      u.clock.Now(),
	}
	if err := u.repo.SaveTurn(ctx, turn); err != nil {
		u.logger.Warn("failed to save conversation turn", "user_id", userID, "error", err)
	}
}

func extractProfileData(message string) map[string]string {
	detected := make(map[string]string)
	for key, pattern := range profilePatterns {
		m := pattern.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		if key == "name" {
			detected[key] = strings.TrimSpace(m[1])
		} else {
			detected[key] = m[0]
		}
	}
	return detected
}
