package orderstatus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

const defaultVerifyTimeout = 10 * time.Second

// Gateway is the store endpoint used to mutate and re-read order status.
type Gateway interface {
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
}

// Confirmer asks the operator to approve a transition.
type Confirmer interface {
	Confirm(ctx context.Context, order *model.Order, target model.OrderStatus) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, order *model.Order, target model.OrderStatus) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, order *model.Order, target model.OrderStatus) (bool, error) {
	return f(ctx, order, target)
}

// Options tunes Controller behaviour.
type Options struct {
	// VerifyTimeout bounds the re-fetch issued after an ambiguous update.
	VerifyTimeout time.Duration
	Now           func() time.Time
}

// Result describes a completed transition.
type Result struct {
	Order        *model.Order
	Previous     model.OrderStatus
	Notification Notification
}

// Controller performs status transitions, one in flight per order.
type Controller struct {
	gateway       Gateway
	notifier      Notifier
	registry      *Registry
	logger        *slog.Logger
	verifyTimeout time.Duration
	now           func() time.Time
}

// NewController builds a Controller. notifier may be nil.
func NewController(gateway Gateway, notifier Notifier, logger *slog.Logger, opts Options) *Controller {
	verify := opts.VerifyTimeout
	if verify <= 0 {
		verify = defaultVerifyTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		gateway:       gateway,
		notifier:      notifier,
		registry:      NewRegistry(),
		logger:        logger,
		verifyTimeout: verify,
		now:           now,
	}
}

// Controls returns the status controls for order, taking in-flight requests into account.
func (c *Controller) Controls(order *model.Order) []Control {
	inFlight, _ := c.registry.InFlight(order.ID)
	return Controls(order.Status, inFlight)
}

// Busy reports whether a transition for orderID is in flight.
func (c *Controller) Busy(orderID string) bool {
	_, ok := c.registry.InFlight(orderID)
	return ok
}

// RequestTransition moves order to target on behalf of actor.
//
// Local rejections (same status, illegal edge, busy order, declined confirmation) never
// reach the store. On success order is updated in place. On failure order keeps its
// previous status unless an ambiguous outcome was resolved by re-reading the order, in
// which case it holds the store's authoritative value.
func (c *Controller) RequestTransition(ctx context.Context, actor string, order *model.Order, target model.OrderStatus, confirm Confirmer) (*Result, error) {
	if order == nil {
		return nil, domainErrors.ErrNotFound
	}
	if err := Validate(order.Status, target); err != nil {
		return nil, err
	}

	if !c.registry.TryAcquire(order.ID, target) {
		return nil, fmt.Errorf("%w: order %s", domainErrors.ErrTransitionInProgress, order.ID)
	}
	defer c.registry.Release(order.ID)

	return c.execute(ctx, actor, order, target, confirm)
}

// TransitionOrder is RequestTransition for an order known only by id. The order is
// read from the store while the per-order slot is held, so validation always sees the
// status left by any transition that finished before this one. check, when set, runs
// against that fresh order before validation.
func (c *Controller) TransitionOrder(ctx context.Context, actor, orderID string, target model.OrderStatus, confirm Confirmer, check func(*model.Order) error) (*Result, error) {
	if !c.registry.TryAcquire(orderID, target) {
		return nil, fmt.Errorf("%w: order %s", domainErrors.ErrTransitionInProgress, orderID)
	}
	defer c.registry.Release(orderID)

	order, err := c.gateway.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domainErrors.ErrNotFound
	}
	if check != nil {
		if err := check(order); err != nil {
			return nil, err
		}
	}
	if err := Validate(order.Status, target); err != nil {
		return nil, err
	}

	return c.execute(ctx, actor, order, target, confirm)
}

// execute runs a validated transition. The caller holds the order's slot.
func (c *Controller) execute(ctx context.Context, actor string, order *model.Order, target model.OrderStatus, confirm Confirmer) (*Result, error) {
	previous := order.Status
	attempt := Notification{
		AttemptID: uuid.New(),
		OrderID:   order.ID,
		Actor:     actor,
		From:      previous,
		To:        target,
		Current:   previous,
		At:        c.now(),
	}

	if RequiresConfirmation(target) {
		approved, err := c.confirm(ctx, confirm, order, target)
		if err != nil {
			return nil, fmt.Errorf("confirm transition: %w", err)
		}
		if !approved {
			c.notify(ctx, attempt, model.TransitionDeclined, LevelInfo,
				fmt.Sprintf("Moving order to %s was not confirmed", Label(target)))
			return nil, domainErrors.ErrConfirmationRequired
		}
	}

	// The store call must run to completion even if the caller goes away.
	updated, err := c.gateway.UpdateStatus(context.WithoutCancel(ctx), order.ID, target)
	if err != nil {
		if errors.Is(err, domainErrors.ErrOutcomeUnknown) {
			return c.reconcile(ctx, attempt, order, err)
		}
		c.notify(ctx, attempt, model.TransitionFailed, LevelError,
			fmt.Sprintf("Failed to update order status: %s", err.Error()))
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if updated != nil {
		*order = *updated
		if updated.Status != target {
			attempt.Current = updated.Status
			c.notify(ctx, attempt, model.TransitionFailed, LevelError,
				fmt.Sprintf("Store kept order in %s", Label(updated.Status)))
			return nil, fmt.Errorf("%w: store reports %s", domainErrors.ErrStatusConflict, updated.Status)
		}
	} else {
		order.Status = target
		if target == model.OrderStatusDelivered && order.DeliveredAt == nil {
			deliveredAt := c.now()
			order.DeliveredAt = &deliveredAt
		}
	}

	attempt.Current = target
	n := c.notify(ctx, attempt, model.TransitionSucceeded, LevelSuccess,
		fmt.Sprintf("Order status updated to %s", Label(target)))
	return &Result{Order: order, Previous: previous, Notification: n}, nil
}

func (c *Controller) confirm(ctx context.Context, confirm Confirmer, order *model.Order, target model.OrderStatus) (bool, error) {
	if confirm == nil {
		return false, nil
	}
	return confirm.Confirm(ctx, order, target)
}

// reconcile re-reads the order after an update whose effect is unknown.
func (c *Controller) reconcile(ctx context.Context, attempt Notification, order *model.Order, cause error) (*Result, error) {
	verifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.verifyTimeout)
	defer cancel()

	fresh, err := c.gateway.Get(verifyCtx, order.ID)
	if err != nil {
		c.logger.Warn("verify order status failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()),
		)
		c.notify(ctx, attempt, model.TransitionUnknown, LevelError,
			"Status update may not have been applied; refresh the order before retrying")
		return nil, fmt.Errorf("update order status: %w", cause)
	}

	*order = *fresh
	attempt.Current = fresh.Status
	if fresh.Status == attempt.To {
		n := c.notify(ctx, attempt, model.TransitionSucceeded, LevelSuccess,
			fmt.Sprintf("Order status updated to %s", Label(attempt.To)))
		return &Result{Order: order, Previous: attempt.From, Notification: n}, nil
	}

	c.notify(ctx, attempt, model.TransitionFailed, LevelError,
		fmt.Sprintf("Failed to update order status; order is %s", Label(fresh.Status)))
	return nil, fmt.Errorf("%w: store reports %s", domainErrors.ErrUpdateNotApplied, fresh.Status)
}

func (c *Controller) notify(ctx context.Context, n Notification, outcome model.TransitionOutcome, level Level, message string) Notification {
	n.Outcome = outcome
	n.Level = level
	n.Message = message
	if c.notifier != nil {
		c.notifier.Notify(ctx, n)
	}
	return n
}
