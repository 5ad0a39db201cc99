package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/contractor-access-service/internal/models"
)

/* ───────────── public interface ───────────── */

type ConversationRepository interface {
	Create(ctx context.Context, c *models.Conversation) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	// FindActiveByPhone never returns a COMPLETED conversation.
	FindActiveByPhone(ctx context.Context, phone string) (*models.Conversation, error)
	ListByPhone(ctx context.Context, phone string) ([]*models.Conversation, error)

	UpdateIfVersion(ctx context.Context, c *models.Conversation, expected int64) (pgconn.CommandTag, error)
}

/* ───────────── implementation ───────────── */

type conversationRepo struct {
	*BaseVersionedRepo[*models.Conversation]
	db DB
}

func NewConversationRepository(db DB) ConversationRepository {
	r := &conversationRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectConversation()+" WHERE id=$1", r.scanConversation)
	return r
}

/* ---------- create ---------- */

func (r *conversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO conversations (
			id, phone_number, company_name, building_id, unit_code, side,
			state, pin_delivered_at, created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9,1)
	`, c.ID, c.PhoneNumber, c.CompanyName, c.BuildingID, c.UnitCode, c.Side,
		c.State, c.PinDeliveredAt, c.CreatedAt)
	if err != nil {
		return err
	}
	c.UpdatedAt = c.CreatedAt
	c.RowVersion = 1
	return nil
}

/* ---------- reads ---------- */

func (r *conversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *conversationRepo) FindActiveByPhone(ctx context.Context, phone string) (*models.Conversation, error) {
	row := r.db.QueryRow(ctx, baseSelectConversation()+`
		WHERE phone_number=$1 AND state <> $2
		ORDER BY created_at DESC
		LIMIT 1
	`, phone, models.ConversationStateCompleted)
	return r.scanConversation(row)
}

func (r *conversationRepo) ListByPhone(ctx context.Context, phone string) ([]*models.Conversation, error) {
	rows, err := r.db.Query(ctx, baseSelectConversation()+" WHERE phone_number=$1 ORDER BY created_at", phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Conversation
	for rows.Next() {
		c, err := r.scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

/* ---------- update ---------- */

// UpdateIfVersion refuses to touch a row that is already COMPLETED.
func (r *conversationRepo) UpdateIfVersion(ctx context.Context, c *models.Conversation, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
		UPDATE conversations
		SET building_id=$1, unit_code=$2, side=$3, state=$4, pin_delivered_at=$5,
		    updated_at=$6, row_version=row_version+1
		WHERE id=$7 AND row_version=$8 AND state <> $9
	`, c.BuildingID, c.UnitCode, c.Side, c.State, c.PinDeliveredAt,
		c.UpdatedAt, c.ID, expected, models.ConversationStateCompleted)
}

/* ---------- internals ---------- */

func baseSelectConversation() string {
	return `
		SELECT id, phone_number, company_name, building_id, unit_code, side,
		       state, pin_delivered_at, created_at, updated_at, row_version
		FROM conversations`
}

func (r *conversationRepo) scanConversation(row pgx.Row) (*models.Conversation, error) {
	var c models.Conversation
	if err := row.Scan(
		&c.ID, &c.PhoneNumber, &c.CompanyName, &c.BuildingID, &c.UnitCode, &c.Side,
		&c.State, &c.PinDeliveredAt, &c.CreatedAt, &c.UpdatedAt, &c.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
