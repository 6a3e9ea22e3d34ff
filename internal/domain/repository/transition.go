package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// TransitionJournal persists status transition attempts.
type TransitionJournal interface {
	Record(ctx context.Context, record model.TransitionRecord) error
	Resolve(ctx context.Context, id uuid.UUID, outcome model.TransitionOutcome, message string, resolvedAt time.Time) error
	ListByOrder(ctx context.Context, orderID string) ([]model.TransitionRecord, error)
	// Unresolved returns entries with unknown outcome, oldest first.
	Unresolved(ctx context.Context, limit int) ([]model.TransitionRecord, error)
}
