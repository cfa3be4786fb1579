package settings

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
	"golang.org/x/text/currency"
)

// StoreSettings is the single-row store configuration edited from the
// back office. There is exactly one settings record per deployment.
type StoreSettings struct {
	shared.BaseAggregateRoot
	StoreName         string          `gorm:"type:varchar(200);not null"`
	SupportEmail      string          `gorm:"type:varchar(255);not null"`
	CurrencyCode      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	FlatShippingFee   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FreeShippingOver  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OrdersPaused      bool            `gorm:"not null;default:false"`
	AnnouncementText  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultStoreSettings returns the record created on first boot.
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreName:         "STEM Kits",
		SupportEmail:      "support@stemkits.example",
		CurrencyCode:      "USD",
		FlatShippingFee:   decimal.NewFromFloat(4.99),
		FreeShippingOver:  decimal.NewFromInt(75),
	}
}

// Update replaces the editable settings fields.
func (s *StoreSettings) Update(storeName, supportEmail, currencyCode string, flatShippingFee, freeShippingOver decimal.Decimal) error {
	if strings.TrimSpace(storeName) == "" {
		return shared.NewDomainError("INVALID_SETTINGS", "Store name cannot be empty")
	}
	if supportEmail == "" || !strings.Contains(supportEmail, "@") {
		return shared.NewDomainError("INVALID_SETTINGS", "Support email is invalid")
	}
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if _, err := currency.ParseISO(currencyCode); err != nil {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a valid ISO 4217 code")
	}
	if flatShippingFee.IsNegative() {
		return shared.NewDomainError("INVALID_SETTINGS", "Shipping fee cannot be negative")
	}
	if freeShippingOver.IsNegative() {
		return shared.NewDomainError("INVALID_SETTINGS", "Free shipping threshold cannot be negative")
	}

	s.StoreName = storeName
	s.SupportEmail = supportEmail
	s.CurrencyCode = currencyCode
	s.FlatShippingFee = flatShippingFee
	s.FreeShippingOver = freeShippingOver
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetAnnouncement sets the storefront banner text; empty clears it.
func (s *StoreSettings) SetAnnouncement(text string) error {
	if len(text) > 500 {
		return shared.NewDomainError("INVALID_SETTINGS", "Announcement cannot exceed 500 characters")
	}
	s.AnnouncementText = text
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// PauseOrders stops checkout across the storefront.
func (s *StoreSettings) PauseOrders() {
	s.OrdersPaused = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ResumeOrders re-enables checkout.
func (s *StoreSettings) ResumeOrders() {
	s.OrdersPaused = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ShippingFeeFor returns the shipping fee for an order subtotal,
// honoring the free-shipping threshold when one is set.
func (s *StoreSettings) ShippingFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if s.FreeShippingOver.IsPositive() && subtotal.GreaterThanOrEqual(s.FreeShippingOver) {
		return decimal.Zero
	}
	return s.FlatShippingFee
}

// StoreSettingsRepository defines the interface for settings persistence
type StoreSettingsRepository interface {
	// Get returns the settings record, creating the default on first use
	Get(ctx context.Context) (*StoreSettings, error)

	// Save persists the settings record
	Save(ctx context.Context, settings *StoreSettings) error
}
