package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Active=false soft-deletes it from the
// storefront; Featured promotes it in recommendation fallbacks.
type Product struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string           `gorm:"index;not null"`
	CategoryID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	Description     *string
	BasePrice       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	DiscountPercent *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Featured        bool             `gorm:"not null;default:false"`
	Active          bool             `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *Category        `gorm:"foreignKey:CategoryID"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID"`
}

// ProductVariant is a purchasable size/color/material combination with its
// own stock count and price adjustment over the product's base price.
type ProductVariant struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID       uuid.UUID        `gorm:"type:uuid;index;not null"`
	SKU             *string          `gorm:"type:varchar(40);uniqueIndex"`
	Size            string           `gorm:"type:varchar(20);not null"`
	Color           string           `gorm:"type:varchar(30);not null"`
	Material        *string          `gorm:"type:varchar(40)"`
	Stock           int              `gorm:"not null;default:0"`
	AdditionalPrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Image           *string

	Product *Product `gorm:"foreignKey:ProductID"`
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	ImageURL  string    `gorm:"not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// Category supports one level of nesting via ParentID.
type Category struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string     `gorm:"not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}
