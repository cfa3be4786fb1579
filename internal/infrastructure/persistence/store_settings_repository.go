package persistence

import (
	"context"
	"errors"

	"github.com/stemkits/backend/internal/domain/settings"
	"gorm.io/gorm"
)

// GormStoreSettingsRepository implements settings.StoreSettingsRepository
// using GORM. The store settings table holds a single row.
type GormStoreSettingsRepository struct {
	db *gorm.DB
}

// NewGormStoreSettingsRepository creates a new GormStoreSettingsRepository
func NewGormStoreSettingsRepository(db *gorm.DB) *GormStoreSettingsRepository {
	return &GormStoreSettingsRepository{db: db}
}

// Get returns the settings record, creating the default on first use
func (r *GormStoreSettingsRepository) Get(ctx context.Context) (*settings.StoreSettings, error) {
	var s settings.StoreSettings
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&s).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := settings.DefaultStoreSettings()
	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, err
	}
	return defaults, nil
}

// Save persists the settings record
func (r *GormStoreSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ settings.StoreSettingsRepository = (*GormStoreSettingsRepository)(nil)
