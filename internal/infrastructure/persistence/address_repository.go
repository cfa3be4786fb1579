package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAddressRepository implements account.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Address, error) {
	var address account.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// FindByCustomer returns all addresses for a customer
func (r *GormAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]account.Address, error) {
	var addresses []account.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefaultShipping returns the customer's default shipping address
func (r *GormAddressRepository) FindDefaultShipping(ctx context.Context, customerID uuid.UUID) (*account.Address, error) {
	return r.findDefault(ctx, customerID, "is_default_shipping")
}

// FindDefaultBilling returns the customer's default billing address
func (r *GormAddressRepository) FindDefaultBilling(ctx context.Context, customerID uuid.UUID) (*account.Address, error) {
	return r.findDefault(ctx, customerID, "is_default_billing")
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *account.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

// SetDefaultShipping atomically makes the address the customer's only
// default shipping address
func (r *GormAddressRepository) SetDefaultShipping(ctx context.Context, customerID, addressID uuid.UUID) error {
	return r.swapDefault(ctx, customerID, addressID, "is_default_shipping")
}

// SetDefaultBilling atomically makes the address the customer's only
// default billing address
func (r *GormAddressRepository) SetDefaultBilling(ctx context.Context, customerID, addressID uuid.UUID) error {
	return r.swapDefault(ctx, customerID, addressID, "is_default_billing")
}

// Delete removes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&account.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormAddressRepository) findDefault(ctx context.Context, customerID uuid.UUID, column string) (*account.Address, error) {
	var address account.Address
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND "+column+" = ?", customerID, true).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &address, nil
}

// swapDefault unsets the previous default and sets the new one inside a
// transaction so there is never more than one default per customer.
func (r *GormAddressRepository) swapDefault(ctx context.Context, customerID, addressID uuid.UUID, column string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&account.Address{}).
			Where("customer_id = ? AND "+column+" = ?", customerID, true).
			Update(column, false).Error; err != nil {
			return err
		}
		result := tx.Model(&account.Address{}).
			Where("id = ? AND customer_id = ?", addressID, customerID).
			Update(column, true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ account.AddressRepository = (*GormAddressRepository)(nil)
