package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/poofware/contractor-access-service/internal/models"
	"github.com/poofware/contractor-access-service/internal/repositories"
	"github.com/poofware/contractor-access-service/internal/utils"
)

// MessageLog writes the audit trail for a conversation.
type MessageLog struct {
	repo  repositories.ConversationMessageRepository
	clock utils.Clock
}

func NewMessageLog(repo repositories.ConversationMessageRepository, clock utils.Clock) *MessageLog {
	return &MessageLog{repo: repo, clock: clock}
}

// Exchange appends the inbound text and then our reply.
func (l *MessageLog) Exchange(ctx context.Context, conversationID uuid.UUID, incoming, outgoing string) error {
	if err := l.append(ctx, conversationID, models.MessageDirectionIncoming, incoming); err != nil {
		return err
	}
	return l.append(ctx, conversationID, models.MessageDirectionOutgoing, outgoing)
}

func (l *MessageLog) append(ctx context.Context, conversationID uuid.UUID, dir models.MessageDirection, body string) error {
	msg := &models.ConversationMessage{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Direction:      dir,
		Body:           body,
		CreatedAt:      l.clock(),
	}
	if err := l.repo.Append(ctx, msg); err != nil {
		return fmt.Errorf("append %s message to conversation %s: %w", dir, conversationID, err)
	}
	return nil
}
