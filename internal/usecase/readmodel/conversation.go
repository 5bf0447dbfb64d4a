package readmodel

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one user message / agent response pair, as persisted.
type ConversationTurn struct {
	ConversationID uuid.UUID
	UserIdentifier string
	UserMessage    string
	AgentResponse  string
	Metadata       map[string]any
	CreatedAt      time.Time
}
