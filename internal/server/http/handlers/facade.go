package handlers

import (
	"context"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (*model.Admin, string, error)
	Profile(ctx context.Context) (*model.Admin, error)
	ParseToken(token string) (*model.Principal, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, filter usecase.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, id string) (*usecase.OrderView, error)
	ChangeStatus(ctx context.Context, actor string, req usecase.TransitionRequest) (*usecase.OrderView, orderstatus.Notification, error)
	MarkPaid(ctx context.Context, id string) (*usecase.OrderView, error)
	Transitions(ctx context.Context, id string) ([]model.TransitionRecord, error)
}

// DashboardFacade provides store-wide figures.
type DashboardFacade interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	AuthFacade
	OrderFacade
	DashboardFacade
}
