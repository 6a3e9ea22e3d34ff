package handlers

import (
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	"github.com/mirae-store/mirae-admin/internal/orderstatus"
	"github.com/mirae-store/mirae-admin/internal/server/http/dto"
	"github.com/mirae-store/mirae-admin/internal/usecase"
)

func toAdminResponse(admin *model.Admin) dto.AdminResponse {
	return dto.AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: admin.Role}
}

func toCustomerResponse(c *model.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{Name: c.Name, Email: c.Email}
}

func toOrderSummary(order model.Order) dto.OrderSummaryResponse {
	return dto.OrderSummaryResponse{
		ID:        order.ID,
		Customer:  toCustomerResponse(order.Customer),
		Status:    string(order.Status),
		Total:     order.Amounts.Total,
		Paid:      order.IsPaid(),
		CreatedAt: order.CreatedAt,
	}
}

func toOrderResponse(view *usecase.OrderView) dto.OrderResponse {
	order := view.Order
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Variant:   item.Variant.Label,
			UnitPrice: item.Variant.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}

	controls := make([]dto.ControlResponse, 0, len(view.Controls))
	updating := false
	for _, ctrl := range view.Controls {
		if ctrl.State == orderstatus.ControlUpdating {
			updating = true
		}
		controls = append(controls, dto.ControlResponse{
			Status:               string(ctrl.Status),
			Label:                ctrl.Label,
			State:                string(ctrl.State),
			Selectable:           ctrl.Selectable(),
			RequiresConfirmation: ctrl.RequiresConfirmation,
		})
	}

	resp := dto.OrderResponse{
		ID:          order.ID,
		Customer:    toCustomerResponse(order.Customer),
		Status:      string(order.Status),
		StatusLabel: orderstatus.Label(order.Status),
		Items:       items,
		Amounts: dto.AmountsResponse{
			Subtotal:   order.Amounts.Subtotal,
			Tax:        order.Amounts.Tax,
			Shipping:   order.Amounts.Shipping,
			Total:      order.Amounts.Total,
			Consistent: view.AmountsConsistent,
		},
		Payment: dto.PaymentResponse{
			Method:    order.Payment.Method,
			Status:    string(order.Payment.Status),
			Reference: order.Payment.Reference,
			PaidAt:    order.Payment.PaidAt,
		},
		CreatedAt:   order.CreatedAt,
		DeliveredAt: order.DeliveredAt,
		Controls:    controls,
		Updating:    updating,
	}
	if a := order.ShippingAddress; a != nil {
		resp.ShippingAddress = &dto.AddressResponse{
			FullName:   a.FullName,
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			Phone:      a.Phone,
		}
	}
	return resp
}

func toNotificationResponse(n orderstatus.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		AttemptID: n.AttemptID.String(),
		Level:     string(n.Level),
		Outcome:   string(n.Outcome),
		Message:   n.Message,
		At:        n.At,
	}
}

func toTransitionResponse(rec model.TransitionRecord) dto.TransitionResponse {
	return dto.TransitionResponse{
		ID:          rec.ID.String(),
		AdminID:     rec.AdminID,
		From:        string(rec.From),
		To:          string(rec.To),
		Outcome:     string(rec.Outcome),
		Message:     rec.Message,
		RequestedAt: rec.RequestedAt,
		ResolvedAt:  rec.ResolvedAt,
	}
}

func toDashboardResponse(summary *model.DashboardSummary) dto.DashboardResponse {
	counts := make(map[string]int, len(summary.StatusCounts))
	for status, n := range summary.StatusCounts {
		counts[string(status)] = n
	}
	recent := make([]dto.OrderSummaryResponse, 0, len(summary.Recent))
	for _, o := range summary.Recent {
		recent = append(recent, toOrderSummary(o))
	}
	return dto.DashboardResponse{
		Revenue:      summary.Revenue,
		TotalOrders:  summary.TotalOrders,
		OpenOrders:   summary.OpenOrders,
		PaidOrders:   summary.PaidOrders,
		StatusCounts: counts,
		Recent:       recent,
	}
}
