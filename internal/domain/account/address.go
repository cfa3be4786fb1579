package account

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// Address is an entry in a customer's address book. A customer has at
// most one default shipping and one default billing address; swapping a
// default is done transactionally at the repository level.
type Address struct {
	shared.BaseEntity
	CustomerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Label             string    `gorm:"type:varchar(50)"`
	RecipientName     string    `gorm:"type:varchar(200);not null"`
	Line1             string    `gorm:"type:varchar(255);not null"`
	Line2             string    `gorm:"type:varchar(255)"`
	City              string    `gorm:"type:varchar(100);not null"`
	Region            string    `gorm:"type:varchar(100)"`
	PostalCode        string    `gorm:"type:varchar(20);not null"`
	CountryCode       string    `gorm:"type:varchar(2);not null"`
	Phone             string    `gorm:"type:varchar(50)"`
	IsDefaultShipping bool      `gorm:"not null;default:false"`
	IsDefaultBilling  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates an address book entry.
func NewAddress(customerID uuid.UUID, recipientName, line1, city, postalCode, countryCode string) (*Address, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if strings.TrimSpace(recipientName) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Recipient name cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if len(countryCode) != 2 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Country code must be a 2-letter ISO code")
	}

	return &Address{
		BaseEntity:    shared.NewBaseEntity(),
		CustomerID:    customerID,
		RecipientName: recipientName,
		Line1:         line1,
		City:          city,
		PostalCode:    postalCode,
		CountryCode:   countryCode,
	}, nil
}

// Update replaces the editable address fields.
func (a *Address) Update(recipientName, line1, line2, city, region, postalCode, countryCode, phone string) error {
	if strings.TrimSpace(recipientName) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Recipient name cannot be empty")
	}
	if strings.TrimSpace(line1) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City cannot be empty")
	}
	if strings.TrimSpace(postalCode) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Postal code cannot be empty")
	}
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if len(countryCode) != 2 {
		return shared.NewDomainError("INVALID_ADDRESS", "Country code must be a 2-letter ISO code")
	}

	a.RecipientName = recipientName
	a.Line1 = line1
	a.Line2 = line2
	a.City = city
	a.Region = region
	a.PostalCode = postalCode
	a.CountryCode = countryCode
	a.Phone = phone
	a.UpdatedAt = time.Now()
	return nil
}

// SetLabel sets a short display label such as "Home" or "Office".
func (a *Address) SetLabel(label string) error {
	if len(label) > 50 {
		return shared.NewDomainError("INVALID_ADDRESS", "Label cannot exceed 50 characters")
	}
	a.Label = label
	a.UpdatedAt = time.Now()
	return nil
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)

	// FindByCustomer returns all addresses for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)

	// FindDefaultShipping returns the customer's default shipping address
	FindDefaultShipping(ctx context.Context, customerID uuid.UUID) (*Address, error)

	// FindDefaultBilling returns the customer's default billing address
	FindDefaultBilling(ctx context.Context, customerID uuid.UUID) (*Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error

	// SetDefaultShipping atomically makes the address the customer's only
	// default shipping address
	SetDefaultShipping(ctx context.Context, customerID, addressID uuid.UUID) error

	// SetDefaultBilling atomically makes the address the customer's only
	// default billing address
	SetDefaultBilling(ctx context.Context, customerID, addressID uuid.UUID) error

	// Delete removes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
