package dto

import "github.com/shopspring/decimal"

// DashboardResponse is the store summary shown on the dashboard home.
type DashboardResponse struct {
	Revenue      decimal.Decimal        `json:"revenue"`
	TotalOrders  int                    `json:"total_orders"`
	OpenOrders   int                    `json:"open_orders"`
	PaidOrders   int                    `json:"paid_orders"`
	StatusCounts map[string]int         `json:"status_counts"`
	Recent       []OrderSummaryResponse `json:"recent"`
}
