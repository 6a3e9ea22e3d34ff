package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes fulfilment lifecycle of a store order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus describes settlement state of an order payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentMethodManualUPI marks orders settled by hand from the dashboard.
const PaymentMethodManualUPI = "UPI_MANUAL"

// Customer is the user who placed the order.
type Customer struct {
	Name  string
	Email string
}

// Variant is the product variant chosen for a line item.
type Variant struct {
	Label     string
	UnitPrice decimal.Decimal
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string
	Name      string
	Image     string
	Variant   Variant
	Quantity  int
}

// LineTotal returns unit price multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Variant.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Amounts carries the monetary breakdown reported by the store.
type Amounts struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// Consistent reports whether total equals subtotal + tax + shipping.
func (a Amounts) Consistent() bool {
	return a.Subtotal.Add(a.Tax).Add(a.Shipping).Equal(a.Total)
}

// Payment describes how the order is paid.
type Payment struct {
	Method    string
	Status    PaymentStatus
	Reference string
	PaidAt    *time.Time
}

// Address is a postal shipping address.
type Address struct {
	FullName   string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// Order is a store order as seen by the admin dashboard.
type Order struct {
	ID              string
	Customer        *Customer
	Status          OrderStatus
	Items           []OrderItem
	Amounts         Amounts
	Payment         Payment
	ShippingAddress *Address
	CreatedAt       time.Time
	DeliveredAt     *time.Time
}

// IsPaid reports whether payment has been settled.
func (o *Order) IsPaid() bool {
	return o.Payment.Status == PaymentStatusPaid
}
