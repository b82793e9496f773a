package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"clothingshop/internal/apierror"
	"clothingshop/internal/model"
	"clothingshop/internal/repository"
	"clothingshop/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory ProductRepository ──────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product

	failCategory bool
	failFeatured bool
	failNewest   bool
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("record not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || !p.Active {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductRepo) active(exclude map[uuid.UUID]bool) []model.Product {
	out := make([]model.Product, 0)
	for _, p := range r.products {
		if !p.Active || exclude[p.ID] {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (r *stubProductRepo) ActiveByCategory(_ context.Context, categoryID, excludeID uuid.UUID, limit int) ([]model.Product, error) {
	if r.failCategory {
		return nil, errors.New("storage down")
	}
	var out []model.Product
	for _, p := range r.active(map[uuid.UUID]bool{excludeID: true}) {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) ActiveFeatured(_ context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error) {
	if r.failFeatured {
		return nil, errors.New("storage down")
	}
	var out []model.Product
	for _, p := range r.active(toSet(excludeIDs)) {
		if p.Featured {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) ActiveNewest(_ context.Context, excludeIDs []uuid.UUID, limit int) ([]model.Product, error) {
	if r.failNewest {
		return nil, errors.New("storage down")
	}
	out := r.active(toSet(excludeIDs))
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) FeaturedRandom(_ context.Context, limit int) ([]model.Product, error) {
	return r.ActiveFeatured(context.Background(), nil, limit)
}

func (r *stubProductRepo) Newest(_ context.Context, limit int) ([]model.Product, error) {
	return r.ActiveNewest(context.Background(), nil, limit)
}

func (r *stubProductRepo) Search(_ context.Context, query string, categoryID *uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.active(nil) {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			continue
		}
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) SaveVariant(_ context.Context, _ *model.ProductVariant) error { return nil }
func (r *stubProductRepo) DeleteVariant(_ context.Context, _ uuid.UUID) error           { return nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

var productSeq int

func seedProduct(r *stubProductRepo, categoryID uuid.UUID, featured bool) *model.Product {
	productSeq++
	p := &model.Product{
		ID:         uuid.New(),
		Name:       "Product " + uuid.NewString()[:8],
		CategoryID: categoryID,
		BasePrice:  decimal.NewFromInt(100),
		Featured:   featured,
		Active:     true,
		CreatedAt:  time.Now().Add(time.Duration(productSeq) * time.Second),
	}
	r.products[p.ID] = p
	return p
}

// ── Related products ─────────────────────────────────────────────────────────

func TestRelatedProducts_SameCategoryPreferred(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	self := seedProduct(repo, category, false)
	for i := 0; i < 5; i++ {
		seedProduct(repo, category, false)
	}
	seedProduct(repo, uuid.New(), true) // featured in another category

	svc := service.NewCatalogService(repo)
	cards := svc.RelatedProducts(context.Background(), self.ID, category, 4)

	require.Len(t, cards, 4)
	for _, c := range cards {
		assert.NotEqual(t, self.ID.String(), c.ID, "the product itself never appears")
	}
}

func TestRelatedProducts_FallbackFillsWithoutDuplicates(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	self := seedProduct(repo, category, false)
	inCategory := seedProduct(repo, category, false)
	featured := seedProduct(repo, uuid.New(), true)
	other := seedProduct(repo, uuid.New(), false)

	svc := service.NewCatalogService(repo)
	cards := svc.RelatedProducts(context.Background(), self.ID, category, 4)

	require.Len(t, cards, 3, "one per tier: category, featured, newest")
	seen := make(map[string]bool)
	for _, c := range cards {
		assert.False(t, seen[c.ID], "no duplicates across tiers")
		seen[c.ID] = true
	}
	assert.True(t, seen[inCategory.ID.String()])
	assert.True(t, seen[featured.ID.String()])
	assert.True(t, seen[other.ID.String()])
}

func TestRelatedProducts_PartialResultIsNotAnError(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	self := seedProduct(repo, category, false)
	seedProduct(repo, category, false)
	seedProduct(repo, category, false)

	svc := service.NewCatalogService(repo)
	cards := svc.RelatedProducts(context.Background(), self.ID, category, 4)

	// Only two candidates exist in the whole catalog: return both, not an error.
	assert.Len(t, cards, 2)
}

func TestRelatedProducts_StorageFailureYieldsEmptyList(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	self := seedProduct(repo, category, false)
	seedProduct(repo, category, false)

	svc := service.NewCatalogService(repo)

	for _, fail := range []func(){
		func() { repo.failCategory = true },
		func() { repo.failCategory = false; repo.failFeatured = true },
		func() { repo.failFeatured = false; repo.failNewest = true },
	} {
		fail()
		cards := svc.RelatedProducts(context.Background(), self.ID, category, 4)
		assert.NotNil(t, cards)
		assert.Empty(t, cards, "any tier failure degrades to an empty strip")
	}
}

func TestRelatedProducts_NonPositiveCountUsesDefault(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	self := seedProduct(repo, category, false)
	for i := 0; i < 8; i++ {
		seedProduct(repo, category, false)
	}

	svc := service.NewCatalogService(repo)
	cards := svc.RelatedProducts(context.Background(), self.ID, category, 0)
	assert.Len(t, cards, 4)
}

// ── Detail / search ──────────────────────────────────────────────────────────

func TestProductDetail_NotFound(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewCatalogService(repo)

	_, err := svc.ProductDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestProductDetail_InactiveIsHidden(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, uuid.New(), false)
	p.Active = false

	svc := service.NewCatalogService(repo)
	_, err := svc.ProductDetail(context.Background(), p.ID)
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestProductDetail_IncludesRelatedAndDiscount(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	p := seedProduct(repo, category, false)
	dp := decimal.NewFromInt(20)
	p.DiscountPercent = &dp
	seedProduct(repo, category, false)

	svc := service.NewCatalogService(repo)
	resp, err := svc.ProductDetail(context.Background(), p.ID)
	require.NoError(t, err)

	// 100 - 20% = 80
	assert.True(t, resp.DiscountedPrice.Equal(decimal.NewFromInt(80)), "discounted price = %s", resp.DiscountedPrice)
	assert.Len(t, resp.RelatedProducts, 1)
}

func TestSearchProducts_FiltersByNameAndCategory(t *testing.T) {
	repo := newStubProductRepo()
	category := uuid.New()
	shirt := seedProduct(repo, category, false)
	shirt.Name = "Linen Shirt"
	jacket := seedProduct(repo, uuid.New(), false)
	jacket.Name = "Denim Jacket"

	svc := service.NewCatalogService(repo)

	cards, err := svc.SearchProducts(context.Background(), "shirt", nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Linen Shirt", cards[0].Name)

	cards, err = svc.SearchProducts(context.Background(), "", &category)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, shirt.ID.String(), cards[0].ID)
}
