package storeapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
)

// userPayload mirrors a store user document.
type userPayload struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u userPayload) toModel() *model.Admin {
	return &model.Admin{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *userPayload `json:"user,omitempty"`
}

type profileResponse struct {
	User *userPayload `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type itemPayload struct {
	Product     string          `json:"product"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	VariantName string          `json:"variantName"`
}

type addressPayload struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

type paymentResultPayload struct {
	ID string `json:"id"`
}

// orderPayload mirrors a store order document.
type orderPayload struct {
	ID              string                `json:"_id"`
	User            *userPayload          `json:"user,omitempty"`
	OrderItems      []itemPayload         `json:"orderItems"`
	ShippingAddress *addressPayload       `json:"shippingAddress,omitempty"`
	ItemsPrice      decimal.NullDecimal   `json:"itemsPrice"`
	TaxPrice        decimal.Decimal       `json:"taxPrice"`
	ShippingPrice   decimal.Decimal       `json:"shippingPrice"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
	PaymentMethod   string                `json:"paymentMethod"`
	PaymentStatus   string                `json:"paymentStatus"`
	PaymentResult   *paymentResultPayload `json:"paymentResult,omitempty"`
	OrderStatus     string                `json:"orderStatus"`
	IsPaid          bool                  `json:"isPaid"`
	PaidAt          *time.Time            `json:"paidAt,omitempty"`
	IsDelivered     bool                  `json:"isDelivered"`
	DeliveredAt     *time.Time            `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

type ordersResponse struct {
	Orders []orderPayload `json:"orders"`
}

type statusRequest struct {
	OrderStatus model.OrderStatus `json:"orderStatus"`
}

func (p orderPayload) toModel() model.Order {
	order := model.Order{
		ID:          p.ID,
		Status:      model.OrderStatus(p.OrderStatus),
		Items:       make([]model.OrderItem, 0, len(p.OrderItems)),
		CreatedAt:   p.CreatedAt,
		DeliveredAt: p.DeliveredAt,
		Payment: model.Payment{
			Method: p.PaymentMethod,
			Status: model.PaymentStatus(p.PaymentStatus),
			PaidAt: p.PaidAt,
		},
	}
	if p.User != nil {
		order.Customer = &model.Customer{Name: p.User.Name, Email: p.User.Email}
	}

	subtotal := decimal.Zero
	for _, item := range p.OrderItems {
		line := model.OrderItem{
			ProductID: item.Product,
			Name:      item.Name,
			Image:     item.Image,
			Variant:   model.Variant{Label: item.VariantName, UnitPrice: item.Price},
			Quantity:  item.Quantity,
		}
		subtotal = subtotal.Add(line.LineTotal())
		order.Items = append(order.Items, line)
	}
	if p.ItemsPrice.Valid {
		subtotal = p.ItemsPrice.Decimal
	}
	order.Amounts = model.Amounts{
		Subtotal: subtotal,
		Tax:      p.TaxPrice,
		Shipping: p.ShippingPrice,
		Total:    p.TotalPrice,
	}

	if order.Payment.Status == "" {
		order.Payment.Status = model.PaymentStatusPending
		if p.IsPaid {
			order.Payment.Status = model.PaymentStatusPaid
		}
	}
	if p.PaymentResult != nil {
		order.Payment.Reference = p.PaymentResult.ID
	}

	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if order.Status != model.OrderStatusDelivered {
		order.DeliveredAt = nil
	}

	if a := p.ShippingAddress; a != nil {
		order.ShippingAddress = &model.Address{
			FullName:   a.FullName,
			Line1:      a.AddressLine1,
			Line2:      a.AddressLine2,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			Phone:      a.Phone,
		}
	}
	return order
}
