package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/stemkits/backend/internal/application/order"
)

// OrderHandler handles checkout, the customer's own orders and order
// management in the back office
type OrderHandler struct {
	BaseHandler
	checkoutService *orderapp.CheckoutService
	orderService    *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkoutService *orderapp.CheckoutService, orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// Checkout converts the customer's cart into a paid order
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListOwn lists the current customer's orders
func (h *OrderHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.ListOwn(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetOwn returns one of the current customer's orders
func (h *OrderHandler) GetOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := bindID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOwn(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Track returns one of the current customer's orders by order number
func (h *OrderHandler) Track(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderNumber := c.Param("number")
	if orderNumber == "" {
		h.BadRequest(c, "Missing order number")
		return
	}

	order, err := h.orderService.Track(c.Request.Context(), userID, orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelOwn cancels one of the current customer's orders while it is still
// cancellable
func (h *OrderHandler) CancelOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := bindID(c)
	if !ok {
		return
	}

	// The cancellation reason is optional so an empty body is accepted.
	var req orderapp.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	order, err := h.orderService.CancelOwn(c.Request.Context(), userID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List lists all orders for the back office
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns any order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// StartProcessing moves a paid order into processing
func (h *OrderHandler) StartProcessing(c *gin.Context) {
	h.transition(c, h.orderService.StartProcessing)
}

// Ship marks an order shipped with a tracking number
func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req orderapp.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Ship(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// MarkDelivered marks a shipped order as delivered
func (h *OrderHandler) MarkDelivered(c *gin.Context) {
	h.transition(c, h.orderService.MarkDelivered)
}

// Cancel cancels an order and restocks its items
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req orderapp.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Refund refunds a delivered or cancelled-after-payment order
func (h *OrderHandler) Refund(c *gin.Context) {
	h.transition(c, h.orderService.Refund)
}

func (h *OrderHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID) (*orderapp.OrderResponse, error)) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	order, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
