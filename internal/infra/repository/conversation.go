package repository

import (
	"context"
	"encoding/json"

	"booking-concierge/internal/infra"
	"booking-concierge/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5/pgxpool"
)

const insertTurnQuery = `
INSERT INTO conversation_history (conversation_id, user_identifier, user_message, agent_response, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Absent fields keep their stored value; only newly detected data overwrites.
const upsertProfileQuery = `
INSERT INTO user_profiles (user_identifier, name, email, phone, updated_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (user_identifier) DO UPDATE SET
    name       = COALESCE(EXCLUDED.name, user_profiles.name),
    email      = COALESCE(EXCLUDED.email, user_profiles.email),
    phone      = COALESCE(EXCLUDED.phone, user_profiles.phone),
    updated_at = EXCLUDED.updated_at`

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func (r *ConversationRepository) SaveTurn(ctx context.Context, turn readmodel.ConversationTurn) error {
	metadata, err := json.Marshal(turn.Metadata)
	if err != nil {
		return infra.WrapRepoErr("failed to encode turn metadata", err)
	}

	_, err = r.pool.Exec(ctx, insertTurnQuery,
		turn.ConversationID,
		turn.UserIdentifier,
		turn.UserMessage,
		turn.AgentResponse,
		metadata,
		turn.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save conversation turn", err)
	}
	return nil
}

func (r *ConversationRepository) UpdateProfile(ctx context.Context, identifier string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	_, err := r.pool.Exec(ctx, upsertProfileQuery,
		identifier,
		nullable(fields, "name"),
		nullable(fields, "email"),
		nullable(fields, "phone"),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user profile", err)
	}
	return nil
}

func nullable(fields map[string]string, key string) *string {
	if v, ok := fields[key]; ok && v != "" {
		return &v
	}
	return nil
}
