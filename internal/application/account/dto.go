package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/account"
)

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"required,min=1,max=100"`
	Phone          string `json:"phone" binding:"omitempty,max=50"`
	MarketingOptIn *bool  `json:"marketing_opt_in"`
}

// CreateAddressRequest represents a new address book entry
type CreateAddressRequest struct {
	Label         string `json:"label" binding:"omitempty,max=50"`
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=200"`
	Line1         string `json:"line1" binding:"required,min=1,max=255"`
	Line2         string `json:"line2" binding:"omitempty,max=255"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	Region        string `json:"region" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	CountryCode   string `json:"country_code" binding:"required,len=2"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
}

// UpdateAddressRequest represents an address update
type UpdateAddressRequest struct {
	Label         string `json:"label" binding:"omitempty,max=50"`
	RecipientName string `json:"recipient_name" binding:"required,min=1,max=200"`
	Line1         string `json:"line1" binding:"required,min=1,max=255"`
	Line2         string `json:"line2" binding:"omitempty,max=255"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	Region        string `json:"region" binding:"omitempty,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	CountryCode   string `json:"country_code" binding:"required,len=2"`
	Phone         string `json:"phone" binding:"omitempty,max=50"`
}

// CreatePaymentCardRequest represents a new stored card. Only masked
// details are ever accepted.
type CreatePaymentCardRequest struct {
	Brand       string `json:"brand" binding:"required"`
	LastFour    string `json:"last_four" binding:"required,len=4,numeric"`
	HolderName  string `json:"holder_name" binding:"required,min=1,max=200"`
	ExpiryMonth int    `json:"expiry_month" binding:"required,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"required,min=2000,max=2100"`
}

// CustomerResponse represents a customer profile in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Phone          string          `json:"phone"`
	MarketingOptIn bool            `json:"marketing_opt_in"`
	Status         string          `json:"status"`
	Level          string          `json:"level"`
	LoyaltyPoints  int             `json:"loyalty_points"`
	LifetimeSpend  decimal.Decimal `json:"lifetime_spend"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LoyaltyResponse describes the customer's loyalty standing
type LoyaltyResponse struct {
	Level          string           `json:"level"`
	Points         int              `json:"points"`
	LifetimeSpend  decimal.Decimal  `json:"lifetime_spend"`
	NextLevel      *string          `json:"next_level,omitempty"`
	NextLevelSpend *decimal.Decimal `json:"next_level_spend,omitempty"`
	Progress       decimal.Decimal  `json:"progress"`
}

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID                uuid.UUID `json:"id"`
	Label             string    `json:"label"`
	RecipientName     string    `json:"recipient_name"`
	Line1             string    `json:"line1"`
	Line2             string    `json:"line2"`
	City              string    `json:"city"`
	Region            string    `json:"region"`
	PostalCode        string    `json:"postal_code"`
	CountryCode       string    `json:"country_code"`
	Phone             string    `json:"phone"`
	IsDefaultShipping bool      `json:"is_default_shipping"`
	IsDefaultBilling  bool      `json:"is_default_billing"`
}

// PaymentCardResponse represents a stored card in API responses
type PaymentCardResponse struct {
	ID           uuid.UUID `json:"id"`
	Brand        string    `json:"brand"`
	MaskedNumber string    `json:"masked_number"`
	HolderName   string    `json:"holder_name"`
	ExpiryMonth  int       `json:"expiry_month"`
	ExpiryYear   int       `json:"expiry_year"`
	IsDefault    bool      `json:"is_default"`
	IsExpired    bool      `json:"is_expired"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *account.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		Email:          c.Email,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		MarketingOptIn: c.MarketingOptIn,
		Status:         string(c.Status),
		Level:          string(c.Level()),
		LoyaltyPoints:  c.LoyaltyPoints,
		LifetimeSpend:  c.LifetimeSpend,
		CreatedAt:      c.CreatedAt,
	}
}

// ToLoyaltyResponse builds the loyalty standing for a customer
func ToLoyaltyResponse(c *account.Customer) LoyaltyResponse {
	resp := LoyaltyResponse{
		Level:         string(c.Level()),
		Points:        c.LoyaltyPoints,
		LifetimeSpend: c.LifetimeSpend,
		Progress:      account.ProgressToNext(c.LifetimeSpend),
	}
	if next, minSpend, ok := account.NextThreshold(c.Level()); ok {
		nextName := string(next)
		resp.NextLevel = &nextName
		resp.NextLevelSpend = &minSpend
	}
	return resp
}

// ToAddressResponse converts a domain address to a response
func ToAddressResponse(a *account.Address) AddressResponse {
	return AddressResponse{
		ID:                a.ID,
		Label:             a.Label,
		RecipientName:     a.RecipientName,
		Line1:             a.Line1,
		Line2:             a.Line2,
		City:              a.City,
		Region:            a.Region,
		PostalCode:        a.PostalCode,
		CountryCode:       a.CountryCode,
		Phone:             a.Phone,
		IsDefaultShipping: a.IsDefaultShipping,
		IsDefaultBilling:  a.IsDefaultBilling,
	}
}

// ToAddressResponses converts a slice of addresses
func ToAddressResponses(addresses []account.Address) []AddressResponse {
	responses := make([]AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToAddressResponse(&addresses[i])
	}
	return responses
}

// ToPaymentCardResponse converts a domain card to a response
func ToPaymentCardResponse(card *account.PaymentCard, now time.Time) PaymentCardResponse {
	return PaymentCardResponse{
		ID:           card.ID,
		Brand:        card.Brand,
		MaskedNumber: card.MaskedNumber(),
		HolderName:   card.HolderName,
		ExpiryMonth:  card.ExpiryMonth,
		ExpiryYear:   card.ExpiryYear,
		IsDefault:    card.IsDefault,
		IsExpired:    card.IsExpired(now),
	}
}

// ToPaymentCardResponses converts a slice of cards
func ToPaymentCardResponses(cards []account.PaymentCard, now time.Time) []PaymentCardResponse {
	responses := make([]PaymentCardResponse, len(cards))
	for i := range cards {
		responses[i] = ToPaymentCardResponse(&cards[i], now)
	}
	return responses
}
