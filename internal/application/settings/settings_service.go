package settings

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// UpdateSettingsRequest represents an admin editing store configuration
type UpdateSettingsRequest struct {
	StoreName        string          `json:"store_name" binding:"required,min=1,max=200"`
	SupportEmail     string          `json:"support_email" binding:"required,email"`
	CurrencyCode     string          `json:"currency_code" binding:"required,len=3"`
	FlatShippingFee  decimal.Decimal `json:"flat_shipping_fee" binding:"required"`
	FreeShippingOver decimal.Decimal `json:"free_shipping_over" binding:"required"`
}

// SetAnnouncementRequest represents setting the storefront banner
type SetAnnouncementRequest struct {
	Text string `json:"text" binding:"max=500"`
}

// SettingsResponse represents store settings in API responses
type SettingsResponse struct {
	StoreName        string          `json:"store_name"`
	SupportEmail     string          `json:"support_email"`
	CurrencyCode     string          `json:"currency_code"`
	FlatShippingFee  decimal.Decimal `json:"flat_shipping_fee"`
	FreeShippingOver decimal.Decimal `json:"free_shipping_over"`
	OrdersPaused     bool            `json:"orders_paused"`
	AnnouncementText string          `json:"announcement_text"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StorefrontSettingsResponse is the public subset shown to shoppers
type StorefrontSettingsResponse struct {
	StoreName        string          `json:"store_name"`
	CurrencyCode     string          `json:"currency_code"`
	FlatShippingFee  decimal.Decimal `json:"flat_shipping_fee"`
	FreeShippingOver decimal.Decimal `json:"free_shipping_over"`
	OrdersPaused     bool            `json:"orders_paused"`
	AnnouncementText string          `json:"announcement_text"`
}

// ToSettingsResponse converts domain settings to the admin response
func ToSettingsResponse(s *settings.StoreSettings) SettingsResponse {
	return SettingsResponse{
		StoreName:        s.StoreName,
		SupportEmail:     s.SupportEmail,
		CurrencyCode:     s.CurrencyCode,
		FlatShippingFee:  s.FlatShippingFee,
		FreeShippingOver: s.FreeShippingOver,
		OrdersPaused:     s.OrdersPaused,
		AnnouncementText: s.AnnouncementText,
		UpdatedAt:        s.UpdatedAt,
	}
}

// ToStorefrontSettingsResponse converts domain settings to the public view
func ToStorefrontSettingsResponse(s *settings.StoreSettings) StorefrontSettingsResponse {
	return StorefrontSettingsResponse{
		StoreName:        s.StoreName,
		CurrencyCode:     s.CurrencyCode,
		FlatShippingFee:  s.FlatShippingFee,
		FreeShippingOver: s.FreeShippingOver,
		OrdersPaused:     s.OrdersPaused,
		AnnouncementText: s.AnnouncementText,
	}
}

// SettingsService handles store configuration
type SettingsService struct {
	settingsRepo settings.StoreSettingsRepository
	logger       *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo settings.StoreSettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get returns the settings record for the back office
func (s *SettingsService) Get(ctx context.Context) (*SettingsResponse, error) {
	record, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToSettingsResponse(record)
	return &response, nil
}

// GetStorefront returns the public settings subset
func (s *SettingsService) GetStorefront(ctx context.Context) (*StorefrontSettingsResponse, error) {
	record, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	response := ToStorefrontSettingsResponse(record)
	return &response, nil
}

// Update replaces the editable settings fields
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*SettingsResponse, error) {
	return s.modify(ctx, func(record *settings.StoreSettings) error {
		return record.Update(req.StoreName, req.SupportEmail, req.CurrencyCode, req.FlatShippingFee, req.FreeShippingOver)
	})
}

// SetAnnouncement sets or clears the storefront banner
func (s *SettingsService) SetAnnouncement(ctx context.Context, req SetAnnouncementRequest) (*SettingsResponse, error) {
	return s.modify(ctx, func(record *settings.StoreSettings) error {
		return record.SetAnnouncement(req.Text)
	})
}

// PauseOrders stops checkout across the storefront
func (s *SettingsService) PauseOrders(ctx context.Context) (*SettingsResponse, error) {
	return s.modify(ctx, func(record *settings.StoreSettings) error {
		record.PauseOrders()
		return nil
	})
}

// ResumeOrders re-enables checkout
func (s *SettingsService) ResumeOrders(ctx context.Context) (*SettingsResponse, error) {
	return s.modify(ctx, func(record *settings.StoreSettings) error {
		record.ResumeOrders()
		return nil
	})
}

func (s *SettingsService) modify(ctx context.Context, op func(*settings.StoreSettings) error) (*SettingsResponse, error) {
	record, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := op(record); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("Store settings updated",
		zap.Bool("orders_paused", record.OrdersPaused))

	response := ToSettingsResponse(record)
	return &response, nil
}
