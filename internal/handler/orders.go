package handler

import (
	"errors"
	"net/http"
	"time"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/export"
	"clothingshop/internal/infra"
	"clothingshop/internal/middleware"
	"clothingshop/internal/repository"
	"clothingshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	svc       service.SaleService
	orderRepo repository.OrderRepository
	shopName  string
	pdfDir    string
}

func NewOrdersHandler(svc service.SaleService, orderRepo repository.OrderRepository, shopName, pdfDir string) *OrdersHandler {
	return &OrdersHandler{svc: svc, orderRepo: orderRepo, shopName: shopName, pdfDir: pdfDir}
}

// List godoc
// @Summary      List orders
// @Description  Paginated order listing with substring search, status filter, date window and sorting.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        search     query string false "Matches order id, customer name, address or phone"
// @Param        status     query string false "Status filter; empty or 'all' disables it"
// @Param        start_date query string false "YYYY-MM-DD"
// @Param        end_date   query string false "YYYY-MM-DD"
// @Param        sort_by    query string false "newest | oldest | highest | lowest"
// @Param        page       query int    false "1-based page (default 1)"
// @Param        page_size  query int    false "Rows per page (default 10)"
// @Success      200 {object} dto.OrderListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/admin/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var q dto.OrderListQuery
	if !bindAndValidateQuery(c, &q) {
		return
	}
	start, ok := parseDate(c, "start_date", q.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", q.EndDate)
	if !ok {
		return
	}

	filter := dto.OrderFilter{
		Search:    q.Search,
		Status:    q.Status,
		StartDate: start,
		EndDate:   end,
		SortBy:    q.SortBy,
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, apierror.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail returns the full order page payload including the status history.
func (h *OrdersHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order id"))
		return
	}
	resp, err := h.svc.OrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load order"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Update order status
// @Description  Sets the new status and appends an audit history entry in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Order UUID"
// @Param        body body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} map[string]string
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/admin/orders/{id}/status [put]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order id"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var actorID *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			actorID = &uid
		}
	}

	if err := h.svc.UpdateOrderStatus(c.Request.Context(), id, req, actorID); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Order not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New("Failed to update order status"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}

// ExportXLSX streams the filtered order listing as an Excel attachment.
func (h *OrdersHandler) ExportXLSX(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	start, ok := parseDate(c, "start_date", q.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, "end_date", q.EndDate)
	if !ok {
		return
	}

	rows, err := h.svc.ExportRows(c.Request.Context(), q.Status, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to export orders"))
		return
	}

	fileName := export.FileName(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := export.WriteOrders(c.Writer, rows); err != nil {
		// Headers are already out; all we can do is log via the error chain.
		_ = c.Error(err)
	}
}

// Invoice generates (or regenerates) the order's PDF invoice and serves it.
func (h *OrdersHandler) Invoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order id"))
		return
	}
	order, err := h.orderRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Order not found"))
		return
	}
	path, err := infra.GenerateInvoicePDF(order, h.shopName, h.pdfDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to generate invoice"))
		return
	}
	c.FileAttachment(path, "invoice_"+order.ID.String()+".pdf")
}
