package handler

import (
	"net/http"
	"time"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.SaleService }

func NewDashboardHandler(svc service.SaleService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Back-office dashboard
// @Description  Aggregated statistics, recent orders, status distribution and sales trend for the requested window.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "YYYY-MM-DD"
// @Param        end_date   query string false "YYYY-MM-DD"
// @Param        period     query string false "week | month (default week)"
// @Success      200 {object} dto.DashboardResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/admin/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	q, ok := h.bindWindow(c)
	if !ok {
		return
	}
	resp, err := h.svc.Dashboard(c.Request.Context(), q.start, q.end, q.period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Statistics returns the window summary with growth against the prior window.
func (h *DashboardHandler) Statistics(c *gin.Context) {
	q, ok := h.bindWindow(c)
	if !ok {
		return
	}
	resp, err := h.svc.Statistics(c.Request.Context(), q.start, q.end, q.period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute statistics"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StatusDistribution returns order counts grouped by status for the window.
func (h *DashboardHandler) StatusDistribution(c *gin.Context) {
	q, ok := h.bindWindow(c)
	if !ok {
		return
	}
	resp, err := h.svc.StatusDistribution(c.Request.Context(), q.start, q.end, q.period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute status distribution"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalesTrend returns daily buckets for the week view or ISO-week buckets for
// the month view.
func (h *DashboardHandler) SalesTrend(c *gin.Context) {
	q, ok := h.bindWindow(c)
	if !ok {
		return
	}
	resp, err := h.svc.SalesTrend(c.Request.Context(), q.start, q.end, q.period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute sales trend"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

type boundWindow struct {
	start, end *time.Time
	period     string
}

func (h *DashboardHandler) bindWindow(c *gin.Context) (boundWindow, bool) {
	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return boundWindow{}, false
	}
	start, ok := parseDate(c, "start_date", q.StartDate)
	if !ok {
		return boundWindow{}, false
	}
	end, ok := parseDate(c, "end_date", q.EndDate)
	if !ok {
		return boundWindow{}, false
	}
	return boundWindow{start: start, end: end, period: q.Period}, true
}
