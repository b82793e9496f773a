package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known order statuses. The column is an open string set — new statuses
// may appear without a schema change, so nothing here is enforced as an enum.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
	StatusUnknown    = "Unknown"
)

// AllStatuses lists the well-known statuses in lifecycle order, used for
// stable ordering in summaries.
var AllStatuses = []string{
	StatusPending, StatusProcessing, StatusShipped,
	StatusCompleted, StatusCancelled, StatusUnknown,
}

// Order is a placed customer order. OrderDate is the placement timestamp and
// is nullable: legacy rows imported without one never appear in trend buckets.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index"`
	OrderDate       *time.Time      `gorm:"index"`
	ShippingAddress string          `gorm:"not null"`
	PhoneContact    string          `gorm:"not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Status may be NULL in the database; the repository maps missing values
	// to StatusUnknown before rows leave the data layer.
	Status    string     `gorm:"type:varchar(20)"`
	PaymentID *uuid.UUID `gorm:"type:uuid"`
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time

	User          *User                `gorm:"foreignKey:UserID"`
	Payment       *Payment             `gorm:"foreignKey:PaymentID"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID"`
}

// OrderItem is one purchased variant line.
type OrderItem struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID        `gorm:"type:uuid;index;not null"`
	VariantID uuid.UUID        `gorm:"type:uuid;not null"`
	Quantity  int              `gorm:"not null"`
	UnitPrice decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Discount  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}

// OrderStatusHistory is an append-only audit log entry. Rows are never
// updated or deleted; every status mutation appends exactly one entry in the
// same transaction as the order update.
type OrderStatusHistory struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status    string     `gorm:"type:varchar(20);not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time  `gorm:"not null"`
	Notes     *string

	Actor *User `gorm:"foreignKey:UpdatedBy"`
}

// Payment records how an order was (or will be) paid.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Method        string          `gorm:"type:varchar(30);not null"`
	PaymentStatus string          `gorm:"type:varchar(20);not null"`
	PaidAt        *time.Time
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TransactionID *string         `gorm:"type:varchar(64)"`
}
