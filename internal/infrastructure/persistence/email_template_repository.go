package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/messaging"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmailTemplateRepository implements messaging.EmailTemplateRepository
// using GORM
type GormEmailTemplateRepository struct {
	db *gorm.DB
}

// NewGormEmailTemplateRepository creates a new GormEmailTemplateRepository
func NewGormEmailTemplateRepository(db *gorm.DB) *GormEmailTemplateRepository {
	return &GormEmailTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormEmailTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.EmailTemplate, error) {
	var template messaging.EmailTemplate
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByCode finds a template by its unique code
func (r *GormEmailTemplateRepository) FindByCode(ctx context.Context, code string) (*messaging.EmailTemplate, error) {
	var template messaging.EmailTemplate
	if err := r.db.WithContext(ctx).First(&template, "code = ?", strings.ToLower(code)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAll returns templates matching the filter
func (r *GormEmailTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]messaging.EmailTemplate, error) {
	var templates []messaging.EmailTemplate
	query := r.applyFilter(r.db.WithContext(ctx).Model(&messaging.EmailTemplate{}), filter)
	query = applyOrdering(query, filter, templateSortFields, "code")
	query = applyPagination(query, filter)

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save creates or updates a template
func (r *GormEmailTemplateRepository) Save(ctx context.Context, template *messaging.EmailTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete removes a template
func (r *GormEmailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&messaging.EmailTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of templates matching the filter
func (r *GormEmailTemplateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&messaging.EmailTemplate{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks whether a template with the code exists
func (r *GormEmailTemplateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.EmailTemplate{}).
		Where("code = ?", strings.ToLower(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormEmailTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ? OR subject ILIKE ?", pattern, pattern, pattern)
	}
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}

var _ messaging.EmailTemplateRepository = (*GormEmailTemplateRepository)(nil)
