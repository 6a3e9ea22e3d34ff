package events

import (
	"context"
	"log/slog"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
)

// Notifier publishes successful transitions. Other outcomes are not announced.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewNotifier constructs Notifier.
func NewNotifier(publisher Publisher, logger *slog.Logger) *Notifier {
	return &Notifier{publisher: publisher, logger: logger}
}

// Notify publishes n when the store applied the transition.
func (n *Notifier) Notify(ctx context.Context, note orderstatus.Notification) {
	if note.Outcome != model.TransitionSucceeded {
		return
	}

	change := model.StatusChange{
		AttemptID:  note.AttemptID,
		OrderID:    note.OrderID,
		AdminID:    note.Actor,
		From:       note.From,
		To:         note.To,
		Outcome:    note.Outcome,
		OccurredAt: note.At,
	}
	if err := n.publisher.PublishStatusChanged(context.WithoutCancel(ctx), change); err != nil {
		n.logger.Warn("publish status change",
			slog.String("order", note.OrderID),
			slog.String("attempt", note.AttemptID.String()),
			slog.String("error", err.Error()),
		)
	}
}
