package service

import (
	"context"
	"fmt"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/model"
	"clothingshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CatalogService serves storefront product reads and the related-products
// fallback selection, plus the admin catalog mutations.
type CatalogService interface {
	ProductDetail(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error)
	FeaturedProducts(ctx context.Context, count int) ([]dto.ProductCard, error)
	NewProducts(ctx context.Context, count int) ([]dto.ProductCard, error)
	SearchProducts(ctx context.Context, query string, categoryID *uuid.UUID) ([]dto.ProductCard, error)

	// RelatedProducts never returns an error: any storage failure is logged
	// and yields an empty list so the product page still renders.
	RelatedProducts(ctx context.Context, excludeID, categoryID uuid.UUID, count int) []dto.ProductCard

	CreateProduct(ctx context.Context, req dto.SaveProductRequest) (*dto.ProductCard, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.SaveProductRequest) error
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	SaveVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, req dto.VariantRequest) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

const defaultRelatedCount = 4

// RelatedProducts fills up to count cards in three tiers: same category,
// then active featured products, then any active product — each tier
// newest-first and excluding everything already picked.
func (s *catalogService) RelatedProducts(ctx context.Context, excludeID, categoryID uuid.UUID, count int) []dto.ProductCard {
	if count <= 0 {
		count = defaultRelatedCount
	}

	picked, err := s.repo.ActiveByCategory(ctx, categoryID, excludeID, count)
	if err != nil {
		log.Error().Err(err).Str("product_id", excludeID.String()).Msg("related products: category tier failed")
		return []dto.ProductCard{}
	}

	if len(picked) < count {
		featured, err := s.repo.ActiveFeatured(ctx, excludeIDs(excludeID, picked), count-len(picked))
		if err != nil {
			log.Error().Err(err).Str("product_id", excludeID.String()).Msg("related products: featured tier failed")
			return []dto.ProductCard{}
		}
		picked = append(picked, featured...)
	}

	if len(picked) < count {
		newest, err := s.repo.ActiveNewest(ctx, excludeIDs(excludeID, picked), count-len(picked))
		if err != nil {
			log.Error().Err(err).Str("product_id", excludeID.String()).Msg("related products: newest tier failed")
			return []dto.ProductCard{}
		}
		picked = append(picked, newest...)
	}

	cards := make([]dto.ProductCard, 0, len(picked))
	for i := range picked {
		cards = append(cards, productToCard(&picked[i]))
	}
	return cards
}

func excludeIDs(excludeID uuid.UUID, picked []model.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(picked)+1)
	ids = append(ids, excludeID)
	for _, p := range picked {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *catalogService) ProductDetail(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, apierror.ErrNotFound
	}

	resp := &dto.ProductDetailResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		CategoryID:      p.CategoryID.String(),
		BasePrice:       p.BasePrice,
		DiscountPercent: discountPercent(p),
		DiscountedPrice: discountedPrice(p),
		Featured:        p.Featured,
		Images:          []string{},
		Variants:        []dto.VariantResponse{},
	}
	if p.Description != nil {
		resp.Description = *p.Description
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	resp.PrimaryImage = primaryImage(p)
	for _, img := range p.Images {
		resp.Images = append(resp.Images, img.ImageURL)
	}
	for _, v := range p.Variants {
		vr := dto.VariantResponse{
			ID:              v.ID.String(),
			Size:            v.Size,
			Color:           v.Color,
			Stock:           v.Stock,
			AdditionalPrice: decimal.Zero,
		}
		if v.SKU != nil {
			vr.SKU = *v.SKU
		}
		if v.Material != nil {
			vr.Material = *v.Material
		}
		if v.AdditionalPrice != nil {
			vr.AdditionalPrice = *v.AdditionalPrice
		}
		resp.Variants = append(resp.Variants, vr)
	}

	resp.RelatedProducts = s.RelatedProducts(ctx, p.ID, p.CategoryID, defaultRelatedCount)
	return resp, nil
}

func (s *catalogService) FeaturedProducts(ctx context.Context, count int) ([]dto.ProductCard, error) {
	products, err := s.repo.FeaturedRandom(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("featured products: %w", err)
	}
	return productsToCards(products), nil
}

func (s *catalogService) NewProducts(ctx context.Context, count int) ([]dto.ProductCard, error) {
	products, err := s.repo.Newest(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("new products: %w", err)
	}
	return productsToCards(products), nil
}

func (s *catalogService) SearchProducts(ctx context.Context, query string, categoryID *uuid.UUID) ([]dto.ProductCard, error) {
	products, err := s.repo.Search(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return productsToCards(products), nil
}

// ── Admin mutations ─────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.SaveProductRequest) (*dto.ProductCard, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category id", apierror.ErrInvalidArgument)
	}
	p := &model.Product{
		Name:       req.Name,
		CategoryID: categoryID,
		BasePrice:  req.BasePrice,
		Featured:   req.Featured,
		Active:     true,
	}
	if req.Description != "" {
		desc := req.Description
		p.Description = &desc
	}
	if req.DiscountPercent.IsPositive() {
		dp := req.DiscountPercent
		p.DiscountPercent = &dp
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	card := productToCard(p)
	return &card, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.SaveProductRequest) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.ErrNotFound
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return fmt.Errorf("%w: invalid category id", apierror.ErrInvalidArgument)
	}
	p.Name = req.Name
	p.CategoryID = categoryID
	p.BasePrice = req.BasePrice
	p.Featured = req.Featured
	if req.Description != "" {
		desc := req.Description
		p.Description = &desc
	}
	if req.DiscountPercent.IsPositive() {
		dp := req.DiscountPercent
		p.DiscountPercent = &dp
	} else {
		p.DiscountPercent = nil
	}
	return s.repo.Update(ctx, p)
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.ErrNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *catalogService) SaveVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, req dto.VariantRequest) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return apierror.ErrNotFound
	}
	v := &model.ProductVariant{
		ProductID: productID,
		Size:      req.Size,
		Color:     req.Color,
		Stock:     req.Stock,
	}
	if variantID != nil {
		v.ID = *variantID
	}
	if req.SKU != "" {
		sku := req.SKU
		v.SKU = &sku
	}
	if req.Material != "" {
		m := req.Material
		v.Material = &m
	}
	if req.AdditionalPrice.IsPositive() {
		ap := req.AdditionalPrice
		v.AdditionalPrice = &ap
	}
	return s.repo.SaveVariant(ctx, v)
}

func (s *catalogService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVariant(ctx, id)
}

// ── Mapping helpers ─────────────────────────────────────────────────────────

const placeholderImage = "/images/no-image.png"

func productsToCards(products []model.Product) []dto.ProductCard {
	cards := make([]dto.ProductCard, 0, len(products))
	for i := range products {
		cards = append(cards, productToCard(&products[i]))
	}
	return cards
}

func productToCard(p *model.Product) dto.ProductCard {
	return dto.ProductCard{
		ID:              p.ID.String(),
		Name:            p.Name,
		BasePrice:       p.BasePrice,
		DiscountPercent: discountPercent(p),
		DiscountedPrice: discountedPrice(p),
		ImageURL:        primaryImage(p),
	}
}

func discountPercent(p *model.Product) decimal.Decimal {
	if p.DiscountPercent == nil {
		return decimal.Zero
	}
	return *p.DiscountPercent
}

func discountedPrice(p *model.Product) decimal.Decimal {
	pct := discountPercent(p)
	if pct.IsZero() {
		return p.BasePrice
	}
	return p.BasePrice.Sub(p.BasePrice.Mul(pct).Div(decimal.NewFromInt(100)))
}

func primaryImage(p *model.Product) string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].ImageURL
	}
	return placeholderImage
}
