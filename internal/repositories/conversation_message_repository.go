package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
)

// ConversationMessageRepository is append-only: there is no update or delete.
type ConversationMessageRepository interface {
	Append(ctx context.Context, m *models.ConversationMessage) error
	ListByConversationID(ctx context.Context, conversationID uuid.UUID) ([]*models.ConversationMessage, error)
}

type conversationMessageRepo struct{ db DB }

func NewConversationMessageRepository(db DB) ConversationMessageRepository {
	return &conversationMessageRepo{db: db}
}

func (r *conversationMessageRepo) Append(ctx context.Context, m *models.ConversationMessage) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO conversation_messages (id, conversation_id, direction, body, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, m.ID, m.ConversationID, m.Direction, m.Body, m.CreatedAt)
	return err
}

func (r *conversationMessageRepo) ListByConversationID(ctx context.Context, conversationID uuid.UUID) ([]*models.ConversationMessage, error) {
	// seq breaks ties between an incoming/outgoing pair written in the same instant.
	rows, err := r.db.Query(ctx, `
		SELECT id, conversation_id, direction, body, created_at
		FROM conversation_messages
		WHERE conversation_id=$1
		ORDER BY created_at, seq
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ConversationMessage
	for rows.Next() {
		var m models.ConversationMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Direction, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
