package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPaymentCardRepository implements account.PaymentCardRepository using GORM
type GormPaymentCardRepository struct {
	db *gorm.DB
}

// NewGormPaymentCardRepository creates a new GormPaymentCardRepository
func NewGormPaymentCardRepository(db *gorm.DB) *GormPaymentCardRepository {
	return &GormPaymentCardRepository{db: db}
}

// FindByID finds a card by its ID
func (r *GormPaymentCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.PaymentCard, error) {
	var card account.PaymentCard
	if err := r.db.WithContext(ctx).First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// FindByCustomer returns all cards for a customer
func (r *GormPaymentCardRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]account.PaymentCard, error) {
	var cards []account.PaymentCard
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindDefault returns the customer's default card
func (r *GormPaymentCardRepository) FindDefault(ctx context.Context, customerID uuid.UUID) (*account.PaymentCard, error) {
	var card account.PaymentCard
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND is_default = ?", customerID, true).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &card, nil
}

// Save creates or updates a card record
func (r *GormPaymentCardRepository) Save(ctx context.Context, card *account.PaymentCard) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// SetDefault atomically makes the card the customer's only default
func (r *GormPaymentCardRepository) SetDefault(ctx context.Context, customerID, cardID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&account.PaymentCard{}).
			Where("customer_id = ? AND is_default = ?", customerID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&account.PaymentCard{}).
			Where("id = ? AND customer_id = ?", cardID, customerID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Delete removes a card record
func (r *GormPaymentCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&account.PaymentCard{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ account.PaymentCardRepository = (*GormPaymentCardRepository)(nil)
