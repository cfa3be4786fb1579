package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shopping"
)

// AddCartItemRequest represents adding a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=99"`
}

// UpdateCartItemRequest represents a quantity change. Zero removes the
// line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=99"`
}

// AddWishlistItemRequest represents saving a product for later
type AddWishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`

	// Set during revalidation against the live catalog.
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	PriceChanged bool             `json:"price_changed"`
	Unavailable  bool             `json:"unavailable"`
	InStock      bool             `json:"in_stock"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// WishlistItemResponse represents one saved product
type WishlistItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	SavedAt   time.Time `json:"saved_at"`
}

// WishlistResponse represents the wishlist in API responses
type WishlistResponse struct {
	ID    uuid.UUID              `json:"id"`
	Items []WishlistItemResponse `json:"items"`
}

// ToCartResponse converts a domain cart to a response
func ToCartResponse(c *shopping.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		items[i] = CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal(),
			InStock:     true,
		}
	}
	return CartResponse{
		ID:        c.ID,
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  c.Subtotal(),
		UpdatedAt: c.UpdatedAt,
	}
}

// ToWishlistResponse converts a domain wishlist to a response
func ToWishlistResponse(w *shopping.Wishlist) WishlistResponse {
	items := make([]WishlistItemResponse, len(w.Items))
	for i := range w.Items {
		items[i] = WishlistItemResponse{
			ProductID: w.Items[i].ProductID,
			SavedAt:   w.Items[i].CreatedAt,
		}
	}
	return WishlistResponse{
		ID:    w.ID,
		Items: items,
	}
}
