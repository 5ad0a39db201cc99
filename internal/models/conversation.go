package models

import (
	"time"

	"github.com/google/uuid"
)

type ConversationState string

const (
	// ConversationStateInitial is written by older clients and handled
	// exactly like AWAITING_INFO.
	ConversationStateInitial      ConversationState = "INITIAL"
	ConversationStateAwaitingInfo ConversationState = "AWAITING_INFO"
	ConversationStateConfirming   ConversationState = "CONFIRMING"
	// ConversationStatePinDelivered is kept for rows written before
	// delivery became a single CONFIRMING -> COMPLETED update.
	ConversationStatePinDelivered ConversationState = "PIN_DELIVERED"
	ConversationStateCompleted    ConversationState = "COMPLETED"
)

// IsTerminal reports whether the conversation can never be resumed.
func (s ConversationState) IsTerminal() bool {
	return s == ConversationStateCompleted
}

// Conversation is one contractor access dialogue, keyed by phone number.
// At most one non-COMPLETED row exists per phone number.
type Conversation struct {
	Versioned
	ID             uuid.UUID         `json:"id"`
	PhoneNumber    string            `json:"phone_number"`
	CompanyName    string            `json:"company_name"`
	BuildingID     *uuid.UUID        `json:"building_id,omitempty"`
	UnitCode       *string           `json:"unit_code,omitempty"`
	Side           *string           `json:"side,omitempty"`
	State          ConversationState `json:"state"`
	PinDeliveredAt *time.Time        `json:"pin_delivered_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (c *Conversation) GetID() string { return c.ID.String() }

// ClearResolution drops the building/unit/side picked earlier in the dialogue.
func (c *Conversation) ClearResolution() {
	c.BuildingID = nil
	c.UnitCode = nil
	c.Side = nil
}
