package orderstatus

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// Level classifies a notification for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification reports the result of one transition attempt.
type Notification struct {
	AttemptID uuid.UUID
	OrderID   string
	Actor     string
	From      model.OrderStatus
	To        model.OrderStatus
	// Current is the order status once the attempt settled.
	Current model.OrderStatus
	Outcome model.TransitionOutcome
	Level   Level
	Message string
	At      time.Time
}

// Notifier receives transition notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// Notifiers fans a notification out to every member in order.
type Notifiers []Notifier

// Notify delivers n to each non-nil notifier.
func (ns Notifiers) Notify(ctx context.Context, n Notification) {
	for _, notifier := range ns {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// LogNotifier writes notifications to a structured logger.
func LogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		level := slog.LevelInfo
		if n.Level == LevelError {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "order status transition",
			slog.String("attempt", n.AttemptID.String()),
			slog.String("order", n.OrderID),
			slog.String("actor", n.Actor),
			slog.String("from", string(n.From)),
			slog.String("to", string(n.To)),
			slog.String("current", string(n.Current)),
			slog.String("outcome", string(n.Outcome)),
			slog.String("message", n.Message),
		)
	})
}
