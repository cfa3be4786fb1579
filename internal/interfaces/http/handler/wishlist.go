package handler

import (
	"github.com/gin-gonic/gin"
	shoppingapp "github.com/stemkits/backend/internal/application/shopping"
)

// WishlistHandler handles the authenticated customer's wishlist
type WishlistHandler struct {
	BaseHandler
	wishlistService *shoppingapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *shoppingapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// Get returns the current customer's wishlist
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	wishlist, err := h.wishlistService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wishlist)
}

// AddItem adds a product to the wishlist
func (h *WishlistHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	wishlist, err := h.wishlistService.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wishlist)
}

// RemoveItem removes a product from the wishlist
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseParamUUID(c, "product_id")
	if !ok {
		return
	}

	wishlist, err := h.wishlistService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wishlist)
}

// MoveToCart moves a wishlist item into the cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, ok := parseParamUUID(c, "product_id")
	if !ok {
		return
	}

	cart, err := h.wishlistService.MoveToCart(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}
