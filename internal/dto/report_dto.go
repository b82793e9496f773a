package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Query binding ──────────────────────────────────────────────────────────

// DashboardQuery is bound from the query string of dashboard/report routes.
// Dates are YYYY-MM-DD; empty means "use the trailing window for period".
type DashboardQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Period    string `form:"period,default=week"` // week | month
}

// ─── Responses ──────────────────────────────────────────────────────────────

// OrderStatistics summarizes a window of orders plus growth against the
// immediately preceding window of identical length.
type OrderStatistics struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int64           `json:"total_orders"`
	CompletedOrders   int64           `json:"completed_orders"`
	PendingOrders     int64           `json:"pending_orders"`
	CancelledOrders   int64           `json:"cancelled_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	SalesGrowth       decimal.Decimal `json:"sales_growth"`
	OrderGrowth       decimal.Decimal `json:"order_growth"`
}

// StatusCount is one slice of the status distribution chart.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TrendPoint is one bucket of the sales trend series: a calendar day for the
// week view, or the Monday of an ISO-8601 week for the month view.
type TrendPoint struct {
	Date       time.Time       `json:"date"`
	WeekNumber int             `json:"week_number,omitempty"`
	Sales      decimal.Decimal `json:"sales"`
	OrderCount int64           `json:"order_count"`
}

// DashboardResponse aggregates everything the back-office dashboard renders.
type DashboardResponse struct {
	Period             string           `json:"period"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	Statistics         *OrderStatistics `json:"statistics"`
	RecentOrders       []OrderListItem  `json:"recent_orders"`
	StatusDistribution []StatusCount    `json:"status_distribution"`
	SalesTrend         []TrendPoint     `json:"sales_trend"`
}
