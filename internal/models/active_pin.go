package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivePin is a building's lockbox code for an inclusive date range.
type ActivePin struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"building_id"`
	PinCode    string    `json:"-"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	CreatedAt  time.Time `json:"created_at"`
}

// CoversDate reports whether the pin is live on the given DATE value.
func (p *ActivePin) CoversDate(day time.Time) bool {
	return !day.Before(p.ValidFrom) && !day.After(p.ValidUntil)
}
