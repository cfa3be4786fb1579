package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	supplierapp "github.com/stemkits/backend/internal/application/supplier"
)

// SupplierHandler handles the supplier portal profile and supplier review
// in the back office
type SupplierHandler struct {
	BaseHandler
	supplierService *supplierapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *supplierapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// GetProfile returns the current supplier's profile
func (h *SupplierHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.supplierService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile updates the current supplier's profile
func (h *SupplierHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req supplierapp.UpdateSupplierProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.supplierService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// List lists suppliers for the back office
func (h *SupplierHandler) List(c *gin.Context) {
	var filter supplierapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Get returns a supplier by ID for the back office
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Approve approves a pending supplier
func (h *SupplierHandler) Approve(c *gin.Context) {
	h.review(c, h.supplierService.Approve)
}

// Reject rejects a pending supplier
func (h *SupplierHandler) Reject(c *gin.Context) {
	h.review(c, h.supplierService.Reject)
}

// Suspend suspends an approved supplier
func (h *SupplierHandler) Suspend(c *gin.Context) {
	h.review(c, h.supplierService.Suspend)
}

// Reinstate reactivates a suspended supplier
func (h *SupplierHandler) Reinstate(c *gin.Context) {
	h.review(c, h.supplierService.Reinstate)
}

func (h *SupplierHandler) review(
	c *gin.Context,
	op func(context.Context, uuid.UUID, uuid.UUID, supplierapp.ReviewSupplierRequest) (*supplierapp.SupplierResponse, error),
) {
	reviewerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := bindID(c)
	if !ok {
		return
	}

	// The review note is optional so an empty body is accepted.
	var req supplierapp.ReviewSupplierRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	supplier, err := op(c.Request.Context(), id, reviewerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}
