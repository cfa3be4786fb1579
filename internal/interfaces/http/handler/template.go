package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	messagingapp "github.com/stemkits/backend/internal/application/messaging"
)

// TemplateHandler handles email template management in the back office
type TemplateHandler struct {
	BaseHandler
	templateService *messagingapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *messagingapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List lists email templates
func (h *TemplateHandler) List(c *gin.Context) {
	var filter messagingapp.TemplateListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	templates, total, err := h.templateService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, templates, total, filter.Page, filter.PageSize)
}

// Get returns a template by ID
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// Create creates an email template
func (h *TemplateHandler) Create(c *gin.Context) {
	var req messagingapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, template)
}

// Update updates a template's name, subject and body
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req messagingapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}

// Activate enables a template for sending
func (h *TemplateHandler) Activate(c *gin.Context) {
	h.toggle(c, h.templateService.Activate)
}

// Deactivate disables a template
func (h *TemplateHandler) Deactivate(c *gin.Context) {
	h.toggle(c, h.templateService.Deactivate)
}

// Delete removes a template
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TestRender renders a template with sample variables without sending
func (h *TemplateHandler) TestRender(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req messagingapp.TestRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rendered, err := h.templateService.TestRender(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rendered)
}

func (h *TemplateHandler) toggle(c *gin.Context, op func(context.Context, uuid.UUID) (*messagingapp.TemplateResponse, error)) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	template, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, template)
}
