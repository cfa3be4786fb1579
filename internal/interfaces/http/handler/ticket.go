package handler

import (
	"github.com/gin-gonic/gin"
	supplierapp "github.com/stemkits/backend/internal/application/supplier"
)

// TicketHandler handles support tickets for the supplier portal and the
// back office
type TicketHandler struct {
	BaseHandler
	ticketService *supplierapp.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService *supplierapp.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Create opens a ticket for the current supplier
func (h *TicketHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req supplierapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// ListOwn lists the current supplier's tickets
func (h *TicketHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter supplierapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	tickets, total, err := h.ticketService.ListOwn(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tickets, total, filter.Page, filter.PageSize)
}

// GetOwn returns one of the current supplier's tickets
func (h *TicketHandler) GetOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetOwn(c.Request.Context(), userID, ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Respond adds a supplier response to one of the supplier's tickets
func (h *TicketHandler) Respond(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	var req supplierapp.RespondTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ticket, err := h.ticketService.RespondAsSupplier(c.Request.Context(), userID, ticketID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Reopen reopens one of the current supplier's closed tickets
func (h *TicketHandler) Reopen(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Reopen(c.Request.Context(), userID, ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// InitiateAttachmentUpload returns a presigned URL for a ticket attachment
func (h *TicketHandler) InitiateAttachmentUpload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	var req supplierapp.InitiateAttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.ticketService.InitiateAttachmentUpload(c.Request.Context(), userID, ticketID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AttachmentDownloadURL returns a presigned download URL for the supplier's
// own ticket attachment
func (h *TicketHandler) AttachmentDownloadURL(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}
	attachmentID, ok := parseParamUUID(c, "attachment_id")
	if !ok {
		return
	}

	resp, err := h.ticketService.AttachmentDownloadURL(c.Request.Context(), userID, ticketID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists all tickets for the back office
func (h *TicketHandler) List(c *gin.Context) {
	var filter supplierapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	tickets, total, err := h.ticketService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tickets, total, filter.Page, filter.PageSize)
}

// Get returns any ticket by ID for the back office
func (h *TicketHandler) Get(c *gin.Context) {
	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// RespondAsAdmin adds an admin response to a ticket
func (h *TicketHandler) RespondAsAdmin(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	var req supplierapp.RespondTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ticket, err := h.ticketService.RespondAsAdmin(c.Request.Context(), adminID, ticketID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Close resolves a ticket
func (h *TicketHandler) Close(c *gin.Context) {
	ticketID, ok := bindID(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Close(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// AdminAttachmentDownloadURL returns a presigned download URL for any
// ticket attachment
func (h *TicketHandler) AdminAttachmentDownloadURL(c *gin.Context) {
	ticketID, ok := bindID(c)
	if !ok {
		return
	}
	attachmentID, ok := parseParamUUID(c, "attachment_id")
	if !ok {
		return
	}

	resp, err := h.ticketService.AdminAttachmentDownloadURL(c.Request.Context(), ticketID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
