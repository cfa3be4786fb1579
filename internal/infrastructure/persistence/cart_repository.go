package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"gorm.io/gorm"
)

// GormCartRepository implements shopping.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID with items loaded
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindByCustomer finds the customer's cart with items loaded
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates a cart and its items. Items are replaced wholesale
// so lines removed from the aggregate are removed from the table as well.
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Save(cart).Error
	})
}

// Delete removes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&shopping.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&shopping.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ shopping.CartRepository = (*GormCartRepository)(nil)
