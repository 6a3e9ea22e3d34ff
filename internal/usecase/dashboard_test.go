package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	testhelpers "github.com/mirae-store/mirae-admin/internal/test"
)

func TestDashboardUseCaseSummary(t *testing.T) {
	paidDelivered := newTestOrder("64f1c2a9b3e4d5f6a7b8c900", model.OrderStatusDelivered, 10*time.Hour)
	paidDelivered.Payment.Status = model.PaymentStatusPaid
	paidShipped := newTestOrder("64f1c2a9b3e4d5f6a7b8c901", model.OrderStatusShipped, 9*time.Hour)
	paidShipped.Payment.Status = model.PaymentStatusPaid
	paidShipped.Amounts.Total = decimal.RequireFromString("499.50")

	orders := []model.Order{
		paidDelivered,
		paidShipped,
		newTestOrder("64f1c2a9b3e4d5f6a7b8c902", model.OrderStatusCancelled, 8*time.Hour),
		newTestOrder("64f1c2a9b3e4d5f6a7b8c903", model.OrderStatusPending, 7*time.Hour),
		newTestOrder("64f1c2a9b3e4d5f6a7b8c904", model.OrderStatusPending, 6*time.Hour),
		newTestOrder("64f1c2a9b3e4d5f6a7b8c905", model.OrderStatusConfirmed, 5*time.Hour),
		newTestOrder("64f1c2a9b3e4d5f6a7b8c906", model.OrderStatusProcessing, 4*time.Hour),
	}
	uc := NewDashboardUseCase(&testhelpers.OrderRepositoryStub{Orders: orders})

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.TotalOrders != 7 {
		t.Fatalf("expected 7 orders, got %d", summary.TotalOrders)
	}
	if summary.PaidOrders != 2 {
		t.Fatalf("expected 2 paid orders, got %d", summary.PaidOrders)
	}
	if !summary.Revenue.Equal(decimal.RequireFromString("1729.50")) {
		t.Fatalf("unexpected revenue %s", summary.Revenue)
	}
	if summary.OpenOrders != 5 {
		t.Fatalf("expected 5 open orders, got %d", summary.OpenOrders)
	}
	if summary.StatusCounts[model.OrderStatusPending] != 2 {
		t.Fatalf("unexpected pending count %d", summary.StatusCounts[model.OrderStatusPending])
	}
	if count, ok := summary.StatusCounts[model.OrderStatusOutForDelivery]; !ok || count != 0 {
		t.Fatalf("every status must be counted, out_for_delivery=%d present=%v", count, ok)
	}
	if len(summary.Recent) != 5 {
		t.Fatalf("expected 5 recent orders, got %d", len(summary.Recent))
	}
	if summary.Recent[0].ID != "64f1c2a9b3e4d5f6a7b8c906" {
		t.Fatalf("recent orders must be newest first, got %s", summary.Recent[0].ID)
	}
}

func TestDashboardUseCaseSummaryEmpty(t *testing.T) {
	uc := NewDashboardUseCase(&testhelpers.OrderRepositoryStub{})

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if !summary.Revenue.IsZero() || summary.TotalOrders != 0 || len(summary.Recent) != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestDashboardUseCaseSummaryError(t *testing.T) {
	listErr := errors.New("store unavailable")
	uc := NewDashboardUseCase(&testhelpers.OrderRepositoryStub{
		ListFn: func(context.Context) ([]model.Order, error) { return nil, listErr },
	})

	if _, err := uc.Summary(context.Background()); !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}
}
