package shopping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// Wishlist is a customer's saved-for-later product list. Unlike cart
// lines, wishlist entries carry no price snapshot.
type Wishlist struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Items      []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

// WishlistItem is a single saved product.
type WishlistItem struct {
	shared.BaseEntity
	WishlistID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Wishlist) TableName() string {
	return "wishlists"
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// NewWishlist creates an empty wishlist for a customer.
func NewWishlist(customerID uuid.UUID) (*Wishlist, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	return &Wishlist{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
	}, nil
}

// AddItem saves a product. Adding a product that is already saved is a
// no-op, not an error.
func (w *Wishlist) AddItem(productID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if w.Contains(productID) {
		return nil
	}
	w.Items = append(w.Items, WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		WishlistID: w.ID,
		ProductID:  productID,
	})
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// RemoveItem deletes a saved product.
func (w *Wishlist) RemoveItem(productID uuid.UUID) error {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = time.Now()
			w.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not in the wishlist")
}

// Contains reports whether the product is saved.
func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	// FindByCustomer finds the customer's wishlist with items loaded
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Wishlist, error)

	// Save creates or updates a wishlist and its items
	Save(ctx context.Context, wishlist *Wishlist) error

	// Delete removes a wishlist and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
