package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/contractor-access-service/internal/models"
)

type ActivePinRepository interface {
	Create(ctx context.Context, p *models.ActivePin) error
	// FindCurrent returns the first row whose window covers day, or nil.
	// Overlapping windows are a provisioning mistake; whichever row the
	// ordering yields first wins.
	FindCurrent(ctx context.Context, buildingID uuid.UUID, day time.Time) (*models.ActivePin, error)
}

type activePinRepo struct{ db DB }

func NewActivePinRepository(db DB) ActivePinRepository {
	return &activePinRepo{db: db}
}

func (r *activePinRepo) Create(ctx context.Context, p *models.ActivePin) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO active_pins (id, building_id, pin_code, valid_from, valid_until, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, p.ID, p.BuildingID, p.PinCode, p.ValidFrom, p.ValidUntil)
	return err
}

func (r *activePinRepo) FindCurrent(ctx context.Context, buildingID uuid.UUID, day time.Time) (*models.ActivePin, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, building_id, pin_code, valid_from, valid_until, created_at
		FROM active_pins
		WHERE building_id=$1 AND valid_from <= $2::date AND valid_until >= $2::date
		ORDER BY valid_from DESC
		LIMIT 1
	`, buildingID, day)

	var p models.ActivePin
	if err := row.Scan(&p.ID, &p.BuildingID, &p.PinCode, &p.ValidFrom, &p.ValidUntil, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
