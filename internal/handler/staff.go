package handler

import (
	"errors"
	"net/http"

	"clothingshop/internal/apierror"
	"clothingshop/internal/dto"
	"clothingshop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffHandler struct{ svc service.StaffService }

func NewStaffHandler(svc service.StaffService) *StaffHandler { return &StaffHandler{svc: svc} }

func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateStaff(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StaffHandler) List(c *gin.Context) {
	resp, err := h.svc.ListStaff(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list staff"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid staff id"))
		return
	}
	var req dto.UpdateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStaff(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Staff member not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid staff id"))
		return
	}
	if err := h.svc.DeactivateStaff(c.Request.Context(), id); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Staff member not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to deactivate staff member"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StaffHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid staff id"))
		return
	}
	if err := h.svc.ReactivateStaff(c.Request.Context(), id); err != nil {
		if errors.Is(err, apierror.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Staff member not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to reactivate staff member"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member reactivated"})
}

func (h *StaffHandler) Roles(c *gin.Context) {
	resp, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list roles"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
