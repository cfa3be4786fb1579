package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// PaymentCard stores a masked reference to a customer's card. Only the
// brand, last four digits, and expiry are kept; the full PAN never enters
// the system.
type PaymentCard struct {
	shared.BaseEntity
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Brand       string    `gorm:"type:varchar(20);not null"`
	LastFour    string    `gorm:"type:varchar(4);not null"`
	ExpiryMonth int       `gorm:"not null"`
	ExpiryYear  int       `gorm:"not null"`
	HolderName  string    `gorm:"type:varchar(200);not null"`
	IsDefault   bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentCard) TableName() string {
	return "payment_cards"
}

var allowedCardBrands = map[string]bool{
	"visa":       true,
	"mastercard": true,
	"amex":       true,
	"discover":   true,
}

// NewPaymentCard creates a masked card record.
func NewPaymentCard(customerID uuid.UUID, brand, lastFour, holderName string, expiryMonth, expiryYear int) (*PaymentCard, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	brand = strings.ToLower(strings.TrimSpace(brand))
	if !allowedCardBrands[brand] {
		return nil, shared.NewDomainError("INVALID_CARD", "Unsupported card brand")
	}
	if len(lastFour) != 4 || strings.Trim(lastFour, "0123456789") != "" {
		return nil, shared.NewDomainError("INVALID_CARD", "Last four must be exactly 4 digits")
	}
	if strings.TrimSpace(holderName) == "" {
		return nil, shared.NewDomainError("INVALID_CARD", "Cardholder name cannot be empty")
	}
	if expiryMonth < 1 || expiryMonth > 12 {
		return nil, shared.NewDomainError("INVALID_CARD", "Expiry month must be between 1 and 12")
	}
	if expiryYear < 2000 || expiryYear > 2100 {
		return nil, shared.NewDomainError("INVALID_CARD", "Expiry year is out of range")
	}

	return &PaymentCard{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customerID,
		Brand:       brand,
		LastFour:    lastFour,
		ExpiryMonth: expiryMonth,
		ExpiryYear:  expiryYear,
		HolderName:  holderName,
	}, nil
}

// IsExpired reports whether the card has passed its expiry month.
func (p *PaymentCard) IsExpired(now time.Time) bool {
	if p.ExpiryYear < now.Year() {
		return true
	}
	if p.ExpiryYear == now.Year() && p.ExpiryMonth < int(now.Month()) {
		return true
	}
	return false
}

// MaskedNumber returns the display form of the card number.
func (p *PaymentCard) MaskedNumber() string {
	return fmt.Sprintf("**** **** **** %s", p.LastFour)
}

// PaymentCardRepository defines the interface for payment card persistence
type PaymentCardRepository interface {
	// FindByID finds a card by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentCard, error)

	// FindByCustomer returns all cards for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]PaymentCard, error)

	// FindDefault returns the customer's default card
	FindDefault(ctx context.Context, customerID uuid.UUID) (*PaymentCard, error)

	// Save creates or updates a card record
	Save(ctx context.Context, card *PaymentCard) error

	// SetDefault atomically makes the card the customer's only default
	SetDefault(ctx context.Context, customerID, cardID uuid.UUID) error

	// Delete removes a card record
	Delete(ctx context.Context, id uuid.UUID) error
}
