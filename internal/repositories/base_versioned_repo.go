package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

/*
EntityWithVersion:

* `comparable`  → lets us use `==` to compare two values of type T
* the three concurrency methods
*/
type EntityWithVersion interface {
	comparable
	GetID() string
	GetRowVersion() int64
	SetRowVersion(int64)
}

type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (pgconn.CommandTag, error)

/*
BaseVersionedRepo holds the DB connection, a SELECT-by-ID statement
and a scanner for a single entity type T.
*/
type BaseVersionedRepo[T EntityWithVersion] struct {
	db         DB
	selectByID string
	scan       func(row pgx.Row) (T, error)
}

func NewBaseRepo[T EntityWithVersion](
	db DB,
	selectByID string,
	scan func(pgx.Row) (T, error),
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{db: db, selectByID: selectByID, scan: scan}
}

func (b *BaseVersionedRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	row := b.db.QueryRow(ctx, b.selectByID, id)
	return b.scan(row)
}

// ApplyIfVersion runs one optimistic update and bumps the in-memory version
// on success. A lost race comes back as ok=false; callers decide whether
// that is retryable.
func ApplyIfVersion[T EntityWithVersion](
	ctx context.Context,
	entity T,
	update UpdateIfVersionFunc[T],
) (ok bool, err error) {
	expected := entity.GetRowVersion()
	tag, err := update(ctx, entity, expected)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}
	entity.SetRowVersion(expected + 1)
	return true, nil
}
