package models

import (
	"time"

	"github.com/google/uuid"
)

// Building is static reference data. Code is the single letter that
// prefixes every unit code in the building.
type Building struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Code               string    `json:"code"`
	AccessInstructions *string   `json:"access_instructions,omitempty"`
	NorthUnits         []string  `json:"north_units"`
	SouthUnits         []string  `json:"south_units"`
	CreatedAt          time.Time `json:"created_at"`
}
