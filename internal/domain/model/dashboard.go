package model

import "github.com/shopspring/decimal"

// DashboardSummary aggregates store health figures.
type DashboardSummary struct {
	Revenue      decimal.Decimal
	TotalOrders  int
	OpenOrders   int
	PaidOrders   int
	StatusCounts map[OrderStatus]int
	Recent       []Order
}
