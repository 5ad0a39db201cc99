package repositories

import (
	"context"
	"strings"
)

type ValidUnitRepository interface {
	// Create is idempotent.
	Create(ctx context.Context, unitCode string) error
	Exists(ctx context.Context, unitCode string) (bool, error)
}

type validUnitRepo struct{ db DB }

func NewValidUnitRepository(db DB) ValidUnitRepository {
	return &validUnitRepo{db: db}
}

func (r *validUnitRepo) Create(ctx context.Context, unitCode string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO valid_units (unit_code, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (unit_code) DO NOTHING
	`, strings.ToUpper(unitCode))
	return err
}

func (r *validUnitRepo) Exists(ctx context.Context, unitCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM valid_units WHERE unit_code=$1)`,
		strings.ToUpper(unitCode),
	).Scan(&exists)
	return exists, err
}
