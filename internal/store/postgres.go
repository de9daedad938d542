package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/google/uuid"
)

const pgUniqueViolation = "23505"

// NewPool builds a pgx pool for the given URL with decimal support registered
// on every connection.
func NewPool(ctx context.Context, databaseURL, appName string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if cfg.ConnConfig.RuntimeParams == nil {
		cfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = appName
	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// pgCodec binds one entity kind to its table, column list, and SQL.
type pgCodec[T Entity] struct {
	table      string
	selectSQL  string
	insertSQL  string
	updateSQL  string
	scan       func(rows pgx.Rows) (T, error)
	insertArgs func(T) []any
	updateArgs func(T) []any
}

// PG implements the storage port over a Postgres table. Reads go straight to
// the pool; writes are staged and flushed inside a single transaction per
// Commit call.
type PG[T Entity] struct {
	pool  *pgxpool.Pool
	codec pgCodec[T]

	mu     sync.Mutex
	staged []op[T]
}

func newPG[T Entity](pool *pgxpool.Pool, codec pgCodec[T]) *PG[T] {
	return &PG[T]{pool: pool, codec: codec}
}

// ListAll returns every committed row ordered by creation time.
func (s *PG[T]) ListAll(ctx context.Context) ([]T, error) {
	rows, err := s.pool.Query(ctx, s.codec.selectSQL+" ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.codec.table, err)
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		entity, err := s.codec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", s.codec.table, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list: %w", s.codec.table, err)
	}
	return out, nil
}

// GetByID returns the row with the given identity and whether it exists.
func (s *PG[T]) GetByID(ctx context.Context, id uuid.UUID) (T, bool, error) {
	var zero T
	rows, err := s.pool.Query(ctx, s.codec.selectSQL+" WHERE id = $1", id)
	if err != nil {
		return zero, false, fmt.Errorf("%s: get: %w", s.codec.table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return zero, false, fmt.Errorf("%s: get: %w", s.codec.table, err)
		}
		return zero, false, nil
	}
	entity, err := s.codec.scan(rows)
	if err != nil {
		return zero, false, fmt.Errorf("%s: scan: %w", s.codec.table, err)
	}
	return entity, true, nil
}

// Add stages an insert.
func (s *PG[T]) Add(ctx context.Context, entity T) error {
	return s.stage(ctx, op[T]{kind: opAdd, entity: entity})
}

// Update stages a mutation of an existing row.
func (s *PG[T]) Update(ctx context.Context, entity T) error {
	return s.stage(ctx, op[T]{kind: opUpdate, entity: entity})
}

// Remove stages a deletion.
func (s *PG[T]) Remove(ctx context.Context, entity T) error {
	return s.stage(ctx, op[T]{kind: opRemove, entity: entity})
}

func (s *PG[T]) stage(ctx context.Context, o op[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = append(s.staged, o)
	return nil
}

// Commit flushes every staged mutation in one transaction and reports the
// number of affected rows. A failed flush rolls the whole batch back and the
// stage is cleared either way.
func (s *PG[T]) Commit(ctx context.Context) (int64, error) {
	s.mu.Lock()
	staged := s.staged
	s.staged = nil
	s.mu.Unlock()
	if len(staged) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: begin: %w", s.codec.table, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var affected int64
	for _, o := range staged {
		var tag pgconn.CommandTag
		switch o.kind {
		case opAdd:
			tag, err = tx.Exec(ctx, s.codec.insertSQL, s.codec.insertArgs(o.entity)...)
		case opUpdate:
			tag, err = tx.Exec(ctx, s.codec.updateSQL, s.codec.updateArgs(o.entity)...)
		case opRemove:
			tag, err = tx.Exec(ctx, "DELETE FROM "+s.codec.table+" WHERE id = $1", o.entity.EntityID())
		}
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return 0, fmt.Errorf("%s: %w: %s", s.codec.table, ErrDuplicateID, pgErr.Detail)
			}
			return 0, fmt.Errorf("%s: flush: %w", s.codec.table, err)
		}
		if o.kind != opAdd && tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("%s: %w: %s", s.codec.table, ErrMissingRow, o.entity.EntityID())
		}
		affected += tag.RowsAffected()
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", s.codec.table, err)
	}
	return affected, nil
}
