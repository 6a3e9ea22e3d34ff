package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/domain/repository"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
)

const recentOrdersLimit = 5

// DashboardUseCase aggregates store-wide order figures.
type DashboardUseCase struct {
	orders repository.OrderRepository
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(orders repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{orders: orders}
}

// Summary computes revenue, open orders, per-status counts and the most recent orders.
func (u *DashboardUseCase) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.DashboardSummary{
		Revenue:      decimal.Zero,
		TotalOrders:  len(orders),
		StatusCounts: make(map[model.OrderStatus]int, len(orderstatus.Statuses())),
	}
	for _, status := range orderstatus.Statuses() {
		summary.StatusCounts[status] = 0
	}

	for _, o := range orders {
		summary.StatusCounts[o.Status]++
		if o.IsPaid() {
			summary.PaidOrders++
			summary.Revenue = summary.Revenue.Add(o.Amounts.Total)
		}
		if !orderstatus.IsTerminal(o.Status) {
			summary.OpenOrders++
		}
	}

	recent := make([]model.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentOrdersLimit {
		recent = recent[:recentOrdersLimit]
	}
	summary.Recent = recent

	return summary, nil
}
