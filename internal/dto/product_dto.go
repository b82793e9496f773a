package dto

import (
	"github.com/shopspring/decimal"
)

// ProductCard is the compact storefront projection used on listing pages and
// in the related-products strip.
type ProductCard struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	ImageURL        string          `json:"image_url"`
}

type VariantResponse struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku,omitempty"`
	Size            string          `json:"size"`
	Color           string          `json:"color"`
	Material        string          `json:"material,omitempty"`
	Stock           int             `json:"stock"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

// ProductDetailResponse is the full storefront product page payload,
// including the related-products fallback selection.
type ProductDetailResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	CategoryID      string            `json:"category_id"`
	CategoryName    string            `json:"category_name,omitempty"`
	BasePrice       decimal.Decimal   `json:"base_price"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	DiscountedPrice decimal.Decimal   `json:"discounted_price"`
	Featured        bool              `json:"featured"`
	PrimaryImage    string            `json:"primary_image,omitempty"`
	Images          []string          `json:"images"`
	Variants        []VariantResponse `json:"variants"`
	RelatedProducts []ProductCard     `json:"related_products"`
}

// SearchQuery is bound from the storefront search route.
type SearchQuery struct {
	Q          string `form:"q"`
	CategoryID string `form:"category_id"`
}

// ─── Admin catalog mutations ────────────────────────────────────────────────

type VariantRequest struct {
	SKU             string          `json:"sku"      validate:"max=40"`
	Size            string          `json:"size"     validate:"required,max=20"`
	Color           string          `json:"color"    validate:"required,max=30"`
	Material        string          `json:"material" validate:"max=40"`
	Stock           int             `json:"stock"    validate:"min=0"`
	AdditionalPrice decimal.Decimal `json:"additional_price" validate:"min=0"`
}

type SaveProductRequest struct {
	Name            string          `json:"name"        validate:"required,max=120"`
	CategoryID      string          `json:"category_id" validate:"required,uuid"`
	Description     string          `json:"description" validate:"max=2000"`
	BasePrice       decimal.Decimal `json:"base_price"  validate:"required,gt=0"`
	DiscountPercent decimal.Decimal `json:"discount_percent" validate:"min=0,max=100"`
	Featured        bool            `json:"featured"`
}
