package handler

import (
	"github.com/gin-gonic/gin"
	shoppingapp "github.com/stemkits/backend/internal/application/shopping"
)

// CartHandler handles the authenticated customer's shopping cart
type CartHandler struct {
	BaseHandler
	cartService *shoppingapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *shoppingapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current customer's cart
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a product to the cart or increases its quantity
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem sets the quantity of a cart line. Quantity zero removes it.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseParamUUID(c, "product_id")
	if !ok {
		return
	}

	var req shoppingapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseParamUUID(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
