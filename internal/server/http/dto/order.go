package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerResponse describes who placed an order.
type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderItemResponse describes a single order line.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// AmountsResponse is the monetary breakdown of an order.
type AmountsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
	Consistent bool            `json:"amounts_consistent"`
}

// PaymentResponse describes payment state.
type PaymentResponse struct {
	Method    string     `json:"method"`
	Status    string     `json:"status"`
	Reference string     `json:"reference,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// AddressResponse is a shipping address.
type AddressResponse struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// ControlResponse describes one status button.
type ControlResponse struct {
	Status               string `json:"status"`
	Label                string `json:"label"`
	State                string `json:"state"`
	Selectable           bool   `json:"selectable"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
}

// OrderSummaryResponse is a row of the orders list.
type OrderSummaryResponse struct {
	ID        string            `json:"id"`
	Customer  *CustomerResponse `json:"customer,omitempty"`
	Status    string            `json:"status"`
	Total     decimal.Decimal   `json:"total"`
	Paid      bool              `json:"paid"`
	CreatedAt time.Time         `json:"created_at"`
}

// OrderResponse is the full order detail with its controls.
type OrderResponse struct {
	ID              string              `json:"id"`
	Customer        *CustomerResponse   `json:"customer,omitempty"`
	Status          string              `json:"status"`
	StatusLabel     string              `json:"status_label"`
	Items           []OrderItemResponse `json:"items"`
	Amounts         AmountsResponse     `json:"amounts"`
	Payment         PaymentResponse     `json:"payment"`
	ShippingAddress *AddressResponse    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	Controls        []ControlResponse   `json:"controls"`
	Updating        bool                `json:"updating"`
}
