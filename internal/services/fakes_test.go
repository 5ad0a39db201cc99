package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/poofware/contractor-access-service/internal/models"
)

/* ───────────── conversations ───────────── */

type fakeConversationRepo struct {
	mu    sync.Mutex
	rows  []*models.Conversation
	err   error // returned by every call when set
	stale bool  // UpdateIfVersion reports a lost race
}

func (r *fakeConversationRepo) Create(_ context.Context, c *models.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, row := range r.rows {
		if row.PhoneNumber == c.PhoneNumber && !row.State.IsTerminal() {
			return &pgconn.PgError{Code: "23505", Message: "duplicate active conversation"}
		}
	}
	c.RowVersion = 1
	cp := *c
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindActiveByPhone(_ context.Context, phone string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if row.PhoneNumber == phone && row.State != models.ConversationStateCompleted {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) ListByPhone(_ context.Context, phone string) ([]*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Conversation
	for _, row := range r.rows {
		if row.PhoneNumber == phone {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) UpdateIfVersion(_ context.Context, c *models.Conversation, expected int64) (pgconn.CommandTag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if r.stale {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	for i, row := range r.rows {
		if row.ID != c.ID {
			continue
		}
		if row.RowVersion != expected || row.State.IsTerminal() {
			return pgconn.CommandTag("UPDATE 0"), nil
		}
		cp := *c
		cp.RowVersion = expected + 1
		r.rows[i] = &cp
		return pgconn.CommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag("UPDATE 0"), nil
}

func (r *fakeConversationRepo) all() []models.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Conversation, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out
}

// seed inserts a row as-is, bypassing the active-conversation check.
func (r *fakeConversationRepo) seed(c models.Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.RowVersion == 0 {
		c.RowVersion = 1
	}
	r.rows = append(r.rows, &c)
}

/* ───────────── messages ───────────── */

type fakeMessageRepo struct {
	mu   sync.Mutex
	rows []*models.ConversationMessage
	err  error
}

func (r *fakeMessageRepo) Append(_ context.Context, m *models.ConversationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	cp := *m
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeMessageRepo) ListByConversationID(_ context.Context, id uuid.UUID) ([]*models.ConversationMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ConversationMessage
	for _, m := range r.rows {
		if m.ConversationID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

/* ───────────── directory ───────────── */

type fakeBuildingRepo struct {
	rows []*models.Building
	err  error
}

func (r *fakeBuildingRepo) Create(_ context.Context, b *models.Building) error {
	r.rows = append(r.rows, b)
	return nil
}

func (r *fakeBuildingRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Building, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBuildingRepo) GetByCode(_ context.Context, code string) (*models.Building, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, b := range r.rows {
		if strings.EqualFold(b.Code, code) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBuildingRepo) ListAll(_ context.Context) ([]*models.Building, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type fakeValidUnitRepo struct {
	units map[string]bool
	err   error
}

func (r *fakeValidUnitRepo) Create(_ context.Context, code string) error {
	if r.units == nil {
		r.units = map[string]bool{}
	}
	r.units[strings.ToUpper(code)] = true
	return nil
}

func (r *fakeValidUnitRepo) Exists(_ context.Context, code string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.units[strings.ToUpper(code)], nil
}

/* ───────────── pins ───────────── */

type fakeActivePinRepo struct {
	rows    []*models.ActivePin
	err     error
	lastDay time.Time
}

func (r *fakeActivePinRepo) Create(_ context.Context, p *models.ActivePin) error {
	r.rows = append(r.rows, p)
	return nil
}

func (r *fakeActivePinRepo) FindCurrent(_ context.Context, buildingID uuid.UUID, day time.Time) (*models.ActivePin, error) {
	r.lastDay = day
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.rows {
		if p.BuildingID == buildingID && p.CoversDate(day) {
			return p, nil
		}
	}
	return nil, nil
}

/* ───────────── notifier ───────────── */

type recordingNotifier struct {
	mu          sync.Mutex
	delivered   []models.Conversation
	hadDeadline []bool
	gaps        [][]*models.Building
	gapsAsOf    []time.Time

	// block, when set, holds PinDelivered until it is closed.
	block chan struct{}
	done  chan struct{}
}

func (n *recordingNotifier) PinDelivered(ctx context.Context, conv *models.Conversation, _ *models.Building) {
	if n.block != nil {
		<-n.block
	}
	_, hasDeadline := ctx.Deadline()
	n.mu.Lock()
	n.delivered = append(n.delivered, *conv)
	n.hadDeadline = append(n.hadDeadline, hasDeadline)
	n.mu.Unlock()
	if n.done != nil {
		n.done <- struct{}{}
	}
}

func (n *recordingNotifier) PinCoverageGaps(_ context.Context, buildings []*models.Building, asOf time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gaps = append(n.gaps, buildings)
	n.gapsAsOf = append(n.gapsAsOf, asOf)
}

func (n *recordingNotifier) deliveredSnapshot() ([]models.Conversation, []bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Conversation(nil), n.delivered...), append([]bool(nil), n.hadDeadline...)
}
