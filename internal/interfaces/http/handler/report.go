package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	reportapp "github.com/stemkits/backend/internal/application/report"
)

// ReportHandler handles back-office reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary returns revenue and order totals for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// OrdersByStatus returns order counts per status
func (h *ReportHandler) OrdersByStatus(c *gin.Context) {
	report, err := h.reportService.OrdersByStatus(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// RevenueTrend returns daily revenue for a period
func (h *ReportHandler) RevenueTrend(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	trend, err := h.reportService.RevenueTrend(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trend)
}

// TopProducts returns best sellers for a period
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var filter reportapp.TopFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.reportService.TopProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// TopCustomers returns the highest-spending customers
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	report, err := h.reportService.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// LowStock returns products at or below their low stock threshold
func (h *ReportHandler) LowStock(c *gin.Context) {
	report, err := h.reportService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Refresh invalidates cached report data
func (h *ReportHandler) Refresh(c *gin.Context) {
	if err := h.reportService.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
