package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductsHandler struct{ svc service.CatalogService }

func NewProductsHandler(svc service.CatalogService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// ── Storefront (public) ──────────────────────────────────────────────────────

// Detail godoc
// @Summary      Product page
// @Description  Full product detail plus the related-products strip.
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product UUID"
// @Success      200 {object} dto.ProductDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/catalog/products/{id} [get]
func (h *ProductsHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	resp, err := h.svc.ProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load product"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Featured(c *gin.Context) {
	count := queryCount(c, 8)
	resp, err := h.svc.FeaturedProducts(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load featured products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) New(c *gin.Context) {
	count := queryCount(c, 8)
	resp, err := h.svc.NewProducts(c.Request.Context(), count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load new products"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	var categoryID *uuid.UUID
	if q.CategoryID != "" {
		id, err := uuid.Parse(q.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid category id"))
			return
		}
		categoryID = &id
	}
	resp, err := h.svc.SearchProducts(c.Request.Context(), q.Q, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Search failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Related serves only the related-products strip; degradation is handled in
// the service, so this endpoint always answers 200.
func (h *ProductsHandler) Related(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	categoryID := uuid.Nil
	if raw := c.Query("category_id"); raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			categoryID = parsed
		}
	}
	count := queryCount(c, 4)
	c.JSON(http.StatusOK, h.svc.RelatedProducts(c.Request.Context(), id, categoryID, count))
}

// ── Admin catalog ────────────────────────────────────────────────────────────

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.SaveProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	var req dto.SaveProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateProduct(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *ProductsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	if err := h.svc.DeactivateProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to deactivate product"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) SaveVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid product id"))
		return
	}
	var variantID *uuid.UUID
	if raw := c.Param("variantId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid variant id"))
			return
		}
		variantID = &id
	}
	var req dto.VariantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SaveVariant(c.Request.Context(), productID, variantID, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Variant saved"})
}

func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid variant id"))
		return
	}
	if err := h.svc.DeleteVariant(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to delete variant"))
		return
	}
	c.Status(http.StatusNoContent)
}

func queryCount(c *gin.Context, fallback int) int {
	raw := c.Query("count")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
