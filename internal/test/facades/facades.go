// Package facades holds handler-facing facade stubs shared by HTTP tests.
package facades

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

// SampleOrderID is the identifier used by default stub orders.
const SampleOrderID = "64f1c2a9b3e4d5f6a7b8c9d0"

// SampleOrder returns a small order in the given status.
func SampleOrder(id string, status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:       id,
		Customer: &model.Customer{Name: "Ji-woo Han", Email: "jiwoo@example.com"},
		Status:   status,
		Items: []model.OrderItem{{
			ProductID: "p-1",
			Name:      "Silk Hanbok",
			Variant:   model.Variant{Label: "M", UnitPrice: decimal.NewFromInt(1200)},
			Quantity:  2,
		}},
		Amounts: model.Amounts{
			Subtotal: decimal.NewFromInt(2400),
			Tax:      decimal.NewFromInt(432),
			Shipping: decimal.NewFromInt(100),
			Total:    decimal.NewFromInt(2932),
		},
		Payment:   model.Payment{Method: model.PaymentMethodManualUPI, Status: model.PaymentStatusPending},
		CreatedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

// SampleView wraps order with controls computed for its status.
func SampleView(order *model.Order) *usecase.OrderView {
	return &usecase.OrderView{
		Order:             order,
		Controls:          orderstatus.Controls(order.Status, ""),
		AmountsConsistent: order.Amounts.Consistent(),
	}
}

// AuthFacadeStub allows customizing authentication behaviour.
type AuthFacadeStub struct {
	LoginFn   func(context.Context, string, string) (*model.Admin, string, error)
	ProfileFn func(context.Context) (*model.Admin, error)
	ParseFn   func(string) (*model.Principal, error)
}

// Login delegates to LoginFn or signs in a default admin.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Admin{ID: "admin-1", Email: email, Role: model.RoleAdmin}, "token", nil
}

// Profile delegates to ProfileFn or returns the default admin.
func (s AuthFacadeStub) Profile(ctx context.Context) (*model.Admin, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &model.Admin{ID: "admin-1", Name: "Admin", Email: "admin@mirae.store", Role: model.RoleAdmin}, nil
}

// ParseToken delegates to ParseFn or accepts any token.
func (s AuthFacadeStub) ParseToken(token string) (*model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &model.Principal{AdminID: "admin-1", StoreToken: "store-token"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn       func(context.Context, usecase.OrderFilter) ([]model.Order, error)
	OrderFn        func(context.Context, string) (*usecase.OrderView, error)
	ChangeStatusFn func(context.Context, string, usecase.TransitionRequest) (*usecase.OrderView, orderstatus.Notification, error)
	MarkPaidFn     func(context.Context, string) (*usecase.OrderView, error)
	TransitionsFn  func(context.Context, string) ([]model.TransitionRecord, error)
}

// Orders returns configured orders or a single pending one.
func (s OrderFacadeStub) Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter)
	}
	return []model.Order{*SampleOrder(SampleOrderID, model.OrderStatusPending)}, nil
}

// Order returns configured view or a pending order.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*usecase.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return SampleView(SampleOrder(id, model.OrderStatusPending)), nil
}

// ChangeStatus delegates to ChangeStatusFn or applies the target unconditionally.
func (s OrderFacadeStub) ChangeStatus(ctx context.Context, actor string, req usecase.TransitionRequest) (*usecase.OrderView, orderstatus.Notification, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, actor, req)
	}
	target := model.OrderStatus(req.Target)
	n := orderstatus.Notification{
		AttemptID: uuid.New(),
		OrderID:   req.OrderID,
		Actor:     actor,
		From:      model.OrderStatusPending,
		To:        target,
		Current:   target,
		Outcome:   model.TransitionSucceeded,
		Level:     orderstatus.LevelSuccess,
		Message:   "Order status updated to " + orderstatus.Label(target),
		At:        time.Now(),
	}
	return SampleView(SampleOrder(req.OrderID, target)), n, nil
}

// MarkPaid delegates to MarkPaidFn or returns a paid order.
func (s OrderFacadeStub) MarkPaid(ctx context.Context, id string) (*usecase.OrderView, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id)
	}
	order := SampleOrder(id, model.OrderStatusPending)
	paidAt := time.Now()
	order.Payment.Status = model.PaymentStatusPaid
	order.Payment.PaidAt = &paidAt
	return SampleView(order), nil
}

// Transitions returns configured history or nothing.
func (s OrderFacadeStub) Transitions(ctx context.Context, id string) ([]model.TransitionRecord, error) {
	if s.TransitionsFn != nil {
		return s.TransitionsFn(ctx, id)
	}
	return nil, nil
}

// DashboardFacadeStub simulates dashboard figures.
type DashboardFacadeStub struct {
	SummaryFn func(context.Context) (*model.DashboardSummary, error)
}

// Summary returns configured summary or a fixed one.
func (s DashboardFacadeStub) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx)
	}
	return &model.DashboardSummary{
		Revenue:      decimal.NewFromInt(2932),
		TotalOrders:  1,
		OpenOrders:   1,
		StatusCounts: map[model.OrderStatus]int{model.OrderStatusPending: 1},
	}, nil
}

// AdminFacadeStub combines stubs to satisfy the full handler facade.
type AdminFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	DashboardFacadeStub
}
