package repository

import (
	"context"

	"clothingshop/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog. The
// three Active* queries back the related-products fallback chain; each keeps
// exclusion handling in SQL so tiers never return duplicates.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// FindActiveByID loads the full storefront projection (category, images,
	// variants) for an active product.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ActiveByCategory returns up to limit active products in the category,
	// excluding excludeID, ordered featured-first then newest-first.
	ActiveByCategory(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]model.Product, error)

	// ActiveFeatured returns up to limit active featured products excluding
	// the given ids, newest first.
	ActiveFeatured(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error)

	// ActiveNewest returns up to limit active products excluding the given
	// ids, newest first.
	ActiveNewest(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error)

	FeaturedRandom(ctx context.Context, limit int) ([]model.Product, error)
	Newest(ctx context.Context, limit int) ([]model.Product, error)
	Search(ctx context.Context, query string, categoryID *uuid.UUID) ([]model.Product, error)

	SaveVariant(ctx context.Context, v *model.ProductVariant) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		Preload("Variants").
		First(&p, "id = ? AND active = true", id).Error
	return &p, err
}

func (r *productRepo) ActiveByCategory(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true AND category_id = ? AND id <> ?", categoryID, excludeID).
		Order("featured DESC").Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) ActiveFeatured(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true AND featured = true")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) ActiveNewest(ctx context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) FeaturedRandom(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true AND featured = true").
		Order("RANDOM()").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Newest(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true").
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Search(ctx context.Context, query string, categoryID *uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).
		Preload("Images").
		Where("active = true")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) SaveVariant(ctx context.Context, v *model.ProductVariant) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *productRepo) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductVariant{}, "id = ?", id).Error
}
