package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageDirection string

const (
	MessageDirectionIncoming MessageDirection = "incoming"
	MessageDirectionOutgoing MessageDirection = "outgoing"
)

// ConversationMessage is an append-only audit row for one SMS.
type ConversationMessage struct {
	ID             uuid.UUID        `json:"id"`
	ConversationID uuid.UUID        `json:"conversation_id"`
	Direction      MessageDirection `json:"direction"`
	Body           string           `json:"body"`
	CreatedAt      time.Time        `json:"created_at"`
}
