package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/contractor-access-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	GetByCode(ctx context.Context, code string) (*models.Building, error)
	ListAll(ctx context.Context) ([]*models.Building, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type buildingRepo struct{ db DB }

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, name, code, access_instructions, north_units, south_units, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,NOW())
	`, b.ID, b.Name, strings.ToUpper(b.Code), b.AccessInstructions, b.NorthUnits, b.SouthUnits)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return scanBuilding(row)
}

func (r *buildingRepo) GetByCode(ctx context.Context, code string) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE code=$1 LIMIT 1", strings.ToUpper(code))
	return scanBuilding(row)
}

func (r *buildingRepo) ListAll(ctx context.Context) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" ORDER BY code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

/* ---------- internals ---------- */

func baseSelectBuilding() string {
	return `
		SELECT id, name, code, access_instructions,
		       COALESCE(north_units, '{}'), COALESCE(south_units, '{}'), created_at
		FROM buildings`
}

func scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.Name, &b.Code, &b.AccessInstructions,
		&b.NorthUnits, &b.SouthUnits, &b.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
