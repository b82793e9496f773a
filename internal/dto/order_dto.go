package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter / list ──────────────────────────────────────────────────────────

// OrderListQuery is bound from the query string of GET /v1/admin/orders.
// Dates are YYYY-MM-DD and are parsed by the handler into an OrderFilter.
type OrderListQuery struct {
	Search    string `form:"search"`
	Status    string `form:"status"` // "" or "all" = no status filter
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by,default=newest"` // newest | oldest | highest | lowest
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=10" validate:"min=1,max=200"`
}

// OrderFilter is the parsed service-level filter. EndDate is extended to the
// end of its calendar day by the repository.
type OrderFilter struct {
	Search    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
	Page      int
	PageSize  int
}

// OrderListItem is one row of the paginated order table.
type OrderListItem struct {
	ID              string          `json:"id"`
	OrderDate       *time.Time      `json:"order_date"`
	CustomerName    string          `json:"customer_name"`
	PhoneContact    string          `json:"phone_contact"`
	ShippingAddress string          `json:"shipping_address"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ItemCount       int             `json:"item_count"`
	PaymentMethod   string          `json:"payment_method"`
}

// OrderListResponse carries the page slice plus the totals the UI needs and
// the distinct status set across ALL orders (for the filter dropdown — never
// scoped to the current query).
type OrderListResponse struct {
	Orders      []OrderListItem `json:"orders"`
	TotalOrders int64           `json:"total_orders"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	Statuses    []string        `json:"statuses"`
}

// ─── Detail ─────────────────────────────────────────────────────────────────

type OrderItemDetail struct {
	ProductName string          `json:"product_name"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Material    string          `json:"material,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

type OrderDetail struct {
	ID              string               `json:"id"`
	OrderDate       *time.Time           `json:"order_date"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email,omitempty"`
	PhoneContact    string               `json:"phone_contact"`
	ShippingAddress string               `json:"shipping_address"`
	Status          string               `json:"status"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	Notes           string               `json:"notes,omitempty"`
	PaymentMethod   string               `json:"payment_method,omitempty"`
	PaymentStatus   string               `json:"payment_status,omitempty"`
	Items           []OrderItemDetail    `json:"items"`
	StatusHistory   []StatusHistoryEntry `json:"status_history"`
}

// ─── Mutations ──────────────────────────────────────────────────────────────

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,min=1,max=20"`
	Notes  string `json:"notes"  validate:"max=500"`
}

// ─── Export ─────────────────────────────────────────────────────────────────

// ExportQuery is bound from the query string of the XLSX export route.
type ExportQuery struct {
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// ExportRow is the flat projection written into the spreadsheet.
type ExportRow struct {
	OrderID         string
	OrderDate       *time.Time
	Status          string
	TotalAmount     decimal.Decimal
	CustomerName    string
	CustomerPhone   string
	ShippingAddress string
	PaymentMethod   string
	PaymentStatus   string
	Notes           string
	ItemCount       int
}
