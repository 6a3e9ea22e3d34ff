package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
)

// StatusChangePublisher announces applied status changes.
type StatusChangePublisher interface {
	PublishStatusChanged(ctx context.Context, change model.StatusChange) error
}

// ReconcileUseCase settles journal entries whose outcome was never confirmed.
type ReconcileUseCase struct {
	journal      repository.TransitionJournal
	orders       repository.OrderRepository
	publisher    StatusChangePublisher
	serviceToken string
	now          func() time.Time
}

// NewReconcileUseCase constructs ReconcileUseCase. Without serviceToken it stays disabled.
func NewReconcileUseCase(journal repository.TransitionJournal, orders repository.OrderRepository, publisher StatusChangePublisher, serviceToken string) *ReconcileUseCase {
	return &ReconcileUseCase{
		journal:      journal,
		orders:       orders,
		publisher:    publisher,
		serviceToken: serviceToken,
		now:          time.Now,
	}
}

// Enabled reports whether the store can be queried in the background.
func (u *ReconcileUseCase) Enabled() bool {
	return u.serviceToken != ""
}

// Pending returns up to limit unresolved entries, oldest first.
func (u *ReconcileUseCase) Pending(ctx context.Context, limit int) ([]model.TransitionRecord, error) {
	return u.journal.Unresolved(ctx, limit)
}

// Reconcile re-reads the order behind rec and resolves the entry. It returns the outcome
// written to the journal. An entry settled elsewhere in the meantime yields
// ErrAlreadyResolved and nothing is published.
func (u *ReconcileUseCase) Reconcile(ctx context.Context, rec model.TransitionRecord) (model.TransitionOutcome, error) {
	order, err := u.orders.Get(pkgAuth.WithStoreToken(ctx, u.serviceToken), rec.OrderID)
	if err != nil {
		return "", fmt.Errorf("load order %s: %w", rec.OrderID, err)
	}

	now := u.now()
	outcome := model.TransitionReverted
	message := fmt.Sprintf("store reports %s", order.Status)
	if appliedBefore(rec, order.Status) {
		outcome = model.TransitionReconciled
		message = fmt.Sprintf("store confirms %s", order.Status)
	}

	if err := u.journal.Resolve(ctx, rec.ID, outcome, message, now); err != nil {
		return "", fmt.Errorf("resolve transition %s: %w", rec.ID, err)
	}

	if outcome == model.TransitionReconciled && u.publisher != nil {
		change := model.StatusChange{
			AttemptID:  rec.ID,
			OrderID:    rec.OrderID,
			AdminID:    rec.AdminID,
			From:       rec.From,
			To:         rec.To,
			Outcome:    outcome,
			OccurredAt: now,
		}
		if err := u.publisher.PublishStatusChanged(ctx, change); err != nil {
			return outcome, fmt.Errorf("publish status change: %w", err)
		}
	}
	return outcome, nil
}

// appliedBefore reports whether the order can only be in status if rec.To was applied:
// status is rec.To itself or lies beyond it on every lifecycle path from rec.From.
func appliedBefore(rec model.TransitionRecord, status model.OrderStatus) bool {
	if status == rec.To {
		return true
	}
	return orderstatus.Reachable(rec.To, status) && !orderstatus.Reachable(rec.From, status, rec.To)
}
