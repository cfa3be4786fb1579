package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormWishlistRepository implements shopping.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByCustomer finds the customer's wishlist with items loaded
func (r *GormWishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*shopping.Wishlist, error) {
	var wishlist shopping.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&wishlist, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wishlist, nil
}

// Save creates or updates a wishlist and its items. Items are replaced
// wholesale so removed entries are removed from the table as well.
func (r *GormWishlistRepository) Save(ctx context.Context, wishlist *shopping.Wishlist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", wishlist.ID).Delete(&shopping.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Save(wishlist).Error
	})
}

// Delete removes a wishlist and its items
func (r *GormWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&shopping.WishlistItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&shopping.Wishlist{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ shopping.WishlistRepository = (*GormWishlistRepository)(nil)
