package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

// CustomerStatus represents the lifecycle state of a customer account.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusDisabled CustomerStatus = "disabled"
)

// Customer is the storefront profile tied 1:1 to an identity user.
// Loyalty level is derived from LifetimeSpend and never persisted.
type Customer struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Email          string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName      string          `gorm:"type:varchar(100);not null"`
	LastName       string          `gorm:"type:varchar(100);not null"`
	Phone          string          `gorm:"type:varchar(50)"`
	MarketingOptIn bool            `gorm:"not null;default:false"`
	LifetimeSpend  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	LoyaltyPoints  int             `gorm:"not null;default:0"`
	Status         CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer profile for an identity user.
func NewCustomer(userID uuid.UUID, email, firstName, lastName string) (*Customer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePersonName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return nil, err
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
		LifetimeSpend:     decimal.Zero,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerRegisteredEvent(customer.ID, userID, email))
	return customer, nil
}

// UpdateProfile updates the customer's editable profile fields.
func (c *Customer) UpdateProfile(firstName, lastName, phone string) error {
	if err := validatePersonName(firstName, "First name"); err != nil {
		return err
	}
	if err := validatePersonName(lastName, "Last name"); err != nil {
		return err
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	c.FirstName = firstName
	c.LastName = lastName
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetMarketingOptIn records the customer's marketing email preference.
func (c *Customer) SetMarketingOptIn(optIn bool) {
	c.MarketingOptIn = optIn
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// RecordOrderSpend adds a paid order total to the lifetime spend and awards
// loyalty points. A LevelUp event is emitted when the spend crosses a
// threshold.
func (c *Customer) RecordOrderSpend(total decimal.Decimal) error {
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Order total cannot be negative")
	}

	before := LevelForSpend(c.LifetimeSpend)
	c.LifetimeSpend = c.LifetimeSpend.Add(total)
	c.LoyaltyPoints += PointsForOrder(total)
	after := LevelForSpend(c.LifetimeSpend)

	if after != before {
		c.AddDomainEvent(NewCustomerLevelUpEvent(c.ID, string(before), string(after)))
	}

	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Level returns the loyalty level derived from the lifetime spend.
func (c *Customer) Level() AccountLevel {
	return LevelForSpend(c.LifetimeSpend)
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Disable blocks the customer from placing orders.
func (c *Customer) Disable() error {
	if c.Status == CustomerStatusDisabled {
		return shared.NewDomainError("INVALID_STATUS", "Customer is already disabled")
	}
	c.Status = CustomerStatusDisabled
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Enable reactivates a disabled customer.
func (c *Customer) Enable() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("INVALID_STATUS", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsActive returns true when the customer may sign in and place orders.
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// validateEmail performs a light structural check; full validation happens
// at the transport layer.
func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	return nil
}

func validatePersonName(name, label string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", label+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", label+" cannot exceed 100 characters")
	}
	return nil
}
