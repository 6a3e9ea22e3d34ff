package repository

import (
	"context"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// OrderRepository describes access to orders owned by the store API.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	// UpdateStatus returns the order as reported by the store, or nil when the store
	// only acknowledged the change.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	MarkPaid(ctx context.Context, id string) (*model.Order, error)
}
