package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type transitionJournal struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Journal returns the status transition journal.
func (s *Storage) Journal() repository.TransitionJournal {
	return &transitionJournal{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS status_transitions (
            id UUID PRIMARY KEY,
            order_id TEXT NOT NULL,
            admin_id TEXT NOT NULL,
            from_status TEXT NOT NULL,
            to_status TEXT NOT NULL,
            outcome TEXT NOT NULL,
            message TEXT NOT NULL DEFAULT '',
            requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            resolved_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_status_transitions_order ON status_transitions(order_id, requested_at)`,
		`CREATE INDEX IF NOT EXISTS idx_status_transitions_unresolved ON status_transitions(requested_at) WHERE outcome = 'unknown'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- TransitionJournal implementation ---

const transitionColumns = `id, order_id, admin_id, from_status, to_status, outcome, message, requested_at, resolved_at`

func (j *transitionJournal) Record(ctx context.Context, rec model.TransitionRecord) error {
	const query = `INSERT INTO status_transitions (` + transitionColumns + `)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   ON CONFLICT (id) DO NOTHING`
	_, err := j.storage.pool.Exec(ctx, query,
		rec.ID.String(), rec.OrderID, rec.AdminID, string(rec.From), string(rec.To),
		string(rec.Outcome), rec.Message, rec.RequestedAt, rec.ResolvedAt,
	)
	return err
}

// Resolve settles an unknown entry. Entries already settled are left untouched and
// reported with ErrAlreadyResolved.
func (j *transitionJournal) Resolve(ctx context.Context, id uuid.UUID, outcome model.TransitionOutcome, message string, resolvedAt time.Time) error {
	return j.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT outcome FROM status_transitions WHERE id=$1 FOR UPDATE`
		var current string
		if err := tx.QueryRow(ctx, selectQuery, id.String()).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if model.TransitionOutcome(current) != model.TransitionUnknown {
			j.storage.logger.Info("transition already resolved",
				slog.String("attempt", id.String()),
				slog.String("outcome", current),
			)
			return fmt.Errorf("%w: %s is %s", domainErrors.ErrAlreadyResolved, id, current)
		}

		const updateQuery = `UPDATE status_transitions SET outcome=$1, message=$2, resolved_at=$3 WHERE id=$4`
		if _, err := tx.Exec(ctx, updateQuery, string(outcome), message, resolvedAt, id.String()); err != nil {
			return err
		}
		return nil
	})
}

func (j *transitionJournal) ListByOrder(ctx context.Context, orderID string) ([]model.TransitionRecord, error) {
	const query = `SELECT ` + transitionColumns + `
                   FROM status_transitions WHERE order_id=$1 ORDER BY requested_at`
	return j.storage.queryTransitions(ctx, query, orderID)
}

func (j *transitionJournal) Unresolved(ctx context.Context, limit int) ([]model.TransitionRecord, error) {
	const query = `SELECT ` + transitionColumns + `
                   FROM status_transitions WHERE outcome='unknown'
                   ORDER BY requested_at
                   LIMIT $1`
	return j.storage.queryTransitions(ctx, query, limit)
}

func (s *Storage) queryTransitions(ctx context.Context, query string, args ...any) ([]model.TransitionRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TransitionRecord
	for rows.Next() {
		rec, err := scanTransition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTransition(row pgx.Row) (model.TransitionRecord, error) {
	var rec model.TransitionRecord
	var id, from, to, outcome string
	if err := row.Scan(&id, &rec.OrderID, &rec.AdminID, &from, &to, &outcome, &rec.Message, &rec.RequestedAt, &rec.ResolvedAt); err != nil {
		return model.TransitionRecord{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("parse transition id: %w", err)
	}
	rec.ID = parsed
	rec.From = model.OrderStatus(from)
	rec.To = model.OrderStatus(to)
	rec.Outcome = model.TransitionOutcome(outcome)
	return rec, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
