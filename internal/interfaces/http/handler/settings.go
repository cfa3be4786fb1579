package handler

import (
	"github.com/gin-gonic/gin"
	settingsapp "github.com/stemkits/backend/internal/application/settings"
)

// SettingsHandler handles store settings for the back office and the public
// storefront settings endpoint
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetStorefront returns the public subset of store settings
func (h *SettingsHandler) GetStorefront(c *gin.Context) {
	settings, err := h.settingsService.GetStorefront(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Get returns the full store settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Update replaces the store settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// SetAnnouncement sets or clears the storefront announcement banner
func (h *SettingsHandler) SetAnnouncement(c *gin.Context) {
	var req settingsapp.SetAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	settings, err := h.settingsService.SetAnnouncement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// PauseOrders stops new checkouts
func (h *SettingsHandler) PauseOrders(c *gin.Context) {
	settings, err := h.settingsService.PauseOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// ResumeOrders re-enables checkouts
func (h *SettingsHandler) ResumeOrders(c *gin.Context) {
	settings, err := h.settingsService.ResumeOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}
