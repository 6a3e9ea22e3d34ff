package app

import (
	"context"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

// AdminFacade aggregates the use cases exposed to handlers and background workers.
type AdminFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	dashboard *usecase.DashboardUseCase
	reconcile *usecase.ReconcileUseCase
}

func NewAdminFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, dashboard *usecase.DashboardUseCase, reconcile *usecase.ReconcileUseCase) *AdminFacade {
	return &AdminFacade{auth: auth, orders: orders, dashboard: dashboard, reconcile: reconcile}
}

func (f *AdminFacade) Login(ctx context.Context, email, password string) (*model.Admin, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *AdminFacade) Profile(ctx context.Context) (*model.Admin, error) {
	return f.auth.Profile(ctx)
}

func (f *AdminFacade) ParseToken(token string) (*model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *AdminFacade) Order(ctx context.Context, id string) (*usecase.OrderView, error) {
	return f.orders.Get(ctx, id)
}

// ChangeStatus runs a transition and returns the updated order with its refreshed controls.
func (f *AdminFacade) ChangeStatus(ctx context.Context, actor string, req usecase.TransitionRequest) (*usecase.OrderView, orderstatus.Notification, error) {
	res, err := f.orders.Transition(ctx, actor, req)
	if err != nil {
		return nil, orderstatus.Notification{}, err
	}
	return f.orders.View(res.Order), res.Notification, nil
}

func (f *AdminFacade) MarkPaid(ctx context.Context, id string) (*usecase.OrderView, error) {
	order, err := f.orders.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.orders.View(order), nil
}

func (f *AdminFacade) Transitions(ctx context.Context, id string) ([]model.TransitionRecord, error) {
	return f.orders.Transitions(ctx, id)
}

func (f *AdminFacade) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	return f.dashboard.Summary(ctx)
}

func (f *AdminFacade) ReconcileEnabled() bool {
	return f.reconcile.Enabled()
}

func (f *AdminFacade) PendingTransitions(ctx context.Context, limit int) ([]model.TransitionRecord, error) {
	return f.reconcile.Pending(ctx, limit)
}

func (f *AdminFacade) ReconcileTransition(ctx context.Context, rec model.TransitionRecord) (model.TransitionOutcome, error) {
	return f.reconcile.Reconcile(ctx, rec)
}
