package storeapi

import (
	"context"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
)

// OrderRepository adapts Client to repository.OrderRepository.
type OrderRepository struct {
	client Client
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository wraps client.
func NewOrderRepository(client Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// List returns all orders.
func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.client.ListOrders(ctx)
}

// Get returns one order.
func (r *OrderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	return r.client.Order(ctx, id)
}

// UpdateStatus changes order status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	return r.client.UpdateOrderStatus(ctx, id, status)
}

// MarkPaid settles a manual payment.
func (r *OrderRepository) MarkPaid(ctx context.Context, id string) (*model.Order, error) {
	return r.client.MarkPaid(ctx, id)
}
