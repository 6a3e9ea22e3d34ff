package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
)

// OrderFilter narrows an order listing. Empty fields match everything.
type OrderFilter struct {
	Status string
	Query  string
}

// OrderView is an order together with its status controls.
type OrderView struct {
	Order             *model.Order
	Controls          []orderstatus.Control
	AmountsConsistent bool
}

// TransitionRequest asks for an order to move to a new status.
type TransitionRequest struct {
	OrderID string
	Target  string
	// ExpectedStatus is the status the admin saw when choosing Target. Optional.
	ExpectedStatus string
	Confirmed      bool
}

// OrderUseCase encapsulates order browsing and lifecycle operations.
type OrderUseCase struct {
	orders     repository.OrderRepository
	journal    repository.TransitionJournal
	controller *orderstatus.Controller
	logger     *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, journal repository.TransitionJournal, controller *orderstatus.Controller, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, journal: journal, controller: controller, logger: logger}
}

// List returns orders matching filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	var status model.OrderStatus
	if strings.TrimSpace(filter.Status) != "" {
		parsed, err := orderstatus.Parse(filter.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if query != "" && !matchesQuery(o, query) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func matchesQuery(o model.Order, query string) bool {
	if strings.Contains(strings.ToLower(o.ID), query) {
		return true
	}
	if o.Customer == nil {
		return false
	}
	return strings.Contains(strings.ToLower(o.Customer.Name), query) ||
		strings.Contains(strings.ToLower(o.Customer.Email), query)
}

// Get loads a single order with its controls.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*OrderView, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.view(order), nil
}

// Transition runs a status change for actor against a freshly loaded order.
func (u *OrderUseCase) Transition(ctx context.Context, actor string, req TransitionRequest) (*orderstatus.Result, error) {
	target, err := orderstatus.Parse(req.Target)
	if err != nil {
		return nil, err
	}

	var expected model.OrderStatus
	if strings.TrimSpace(req.ExpectedStatus) != "" {
		if expected, err = orderstatus.Parse(req.ExpectedStatus); err != nil {
			return nil, err
		}
	}

	id := normalizeOrderID(req.OrderID)
	if !ValidateOrderID(id) {
		return nil, domainErrors.ErrInvalidOrderID
	}

	check := func(order *model.Order) error {
		if expected != "" && order.Status != expected {
			return fmt.Errorf("%w: order is %s, not %s", domainErrors.ErrStaleStatus, order.Status, expected)
		}
		return nil
	}
	confirm := orderstatus.ConfirmFunc(func(context.Context, *model.Order, model.OrderStatus) (bool, error) {
		return req.Confirmed, nil
	})
	return u.controller.TransitionOrder(ctx, actor, id, target, confirm, check)
}

// MarkPaid settles a manual UPI payment.
func (u *OrderUseCase) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	order, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsPaid() {
		return nil, domainErrors.ErrAlreadyPaid
	}
	if order.Payment.Method != model.PaymentMethodManualUPI {
		return nil, domainErrors.ErrNotManualPayment
	}

	updated, err := u.orders.MarkPaid(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return u.orders.Get(ctx, order.ID)
	}
	return updated, nil
}

// Transitions returns the journal of status changes for an order.
func (u *OrderUseCase) Transitions(ctx context.Context, id string) ([]model.TransitionRecord, error) {
	id = normalizeOrderID(id)
	if !ValidateOrderID(id) {
		return nil, domainErrors.ErrInvalidOrderID
	}
	return u.journal.ListByOrder(ctx, id)
}

// View wraps an order already in hand with its controls.
func (u *OrderUseCase) View(order *model.Order) *OrderView {
	return u.view(order)
}

func (u *OrderUseCase) load(ctx context.Context, id string) (*model.Order, error) {
	id = normalizeOrderID(id)
	if !ValidateOrderID(id) {
		return nil, domainErrors.ErrInvalidOrderID
	}
	return u.orders.Get(ctx, id)
}

func (u *OrderUseCase) view(order *model.Order) *OrderView {
	consistent := order.Amounts.Consistent()
	if !consistent {
		u.logger.Warn("order amounts inconsistent",
			slog.String("order", order.ID),
			slog.String("subtotal", order.Amounts.Subtotal.String()),
			slog.String("tax", order.Amounts.Tax.String()),
			slog.String("shipping", order.Amounts.Shipping.String()),
			slog.String("total", order.Amounts.Total.String()),
		)
	}
	return &OrderView{
		Order:             order,
		Controls:          u.controller.Controls(order),
		AmountsConsistent: consistent,
	}
}
