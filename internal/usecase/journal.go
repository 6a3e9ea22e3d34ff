package usecase

import (
	"context"
	"log/slog"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
)

// JournalNotifier records every transition attempt in the journal.
type JournalNotifier struct {
	journal repository.TransitionJournal
	logger  *slog.Logger
}

// NewJournalNotifier constructs JournalNotifier.
func NewJournalNotifier(journal repository.TransitionJournal, logger *slog.Logger) *JournalNotifier {
	return &JournalNotifier{journal: journal, logger: logger}
}

// Notify writes n as a journal entry. Unknown outcomes are left unresolved for reconciliation.
func (j *JournalNotifier) Notify(ctx context.Context, n orderstatus.Notification) {
	rec := model.TransitionRecord{
		ID:          n.AttemptID,
		OrderID:     n.OrderID,
		AdminID:     n.Actor,
		From:        n.From,
		To:          n.To,
		Outcome:     n.Outcome,
		Message:     n.Message,
		RequestedAt: n.At,
	}
	if n.Outcome != model.TransitionUnknown {
		resolved := n.At
		rec.ResolvedAt = &resolved
	}

	if err := j.journal.Record(context.WithoutCancel(ctx), rec); err != nil {
		j.logger.Error("record status transition",
			slog.String("order", n.OrderID),
			slog.String("attempt", n.AttemptID.String()),
			slog.String("error", err.Error()),
		)
	}
}
