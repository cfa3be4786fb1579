package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// GormSupplierRepository implements supplier.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Supplier, error) {
	var s supplier.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByUserID finds the supplier account for an identity user
func (r *GormSupplierRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*supplier.Supplier, error) {
	var s supplier.Supplier
	if err := r.db.WithContext(ctx).First(&s, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll returns suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Supplier, error) {
	var suppliers []supplier.Supplier
	query := r.applyFilter(r.db.WithContext(ctx).Model(&supplier.Supplier{}), filter)
	query = applyOrdering(query, filter, supplierSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindByStatus returns suppliers in a given status
func (r *GormSupplierRepository) FindByStatus(ctx context.Context, status supplier.SupplierStatus, filter shared.Filter) ([]supplier.Supplier, error) {
	var suppliers []supplier.Supplier
	query := r.db.WithContext(ctx).
		Model(&supplier.Supplier{}).
		Where("status = ?", status)
	query = applyOrdering(query, filter, supplierSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, s *supplier.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// SaveWithLock updates a supplier with optimistic concurrency control.
// Columns are listed explicitly so zero values (a cleared review note or
// website) are written instead of skipped.
func (r *GormSupplierRepository) SaveWithLock(ctx context.Context, s *supplier.Supplier) error {
	result := r.db.WithContext(ctx).
		Model(s).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(map[string]interface{}{
			"company_name":  s.CompanyName,
			"contact_name":  s.ContactName,
			"contact_email": s.ContactEmail,
			"contact_phone": s.ContactPhone,
			"website":       s.Website,
			"description":   s.Description,
			"status":        s.Status,
			"review_note":   s.ReviewNote,
			"reviewed_by":   s.ReviewedBy,
			"reviewed_at":   s.ReviewedAt,
			"version":       s.Version,
			"updated_at":    s.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a supplier account
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&supplier.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&supplier.Supplier{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns how many suppliers hold the status
func (r *GormSupplierRepository) CountByStatus(ctx context.Context, status supplier.SupplierStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supplier.Supplier{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks whether a supplier with the contact email exists
func (r *GormSupplierRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supplier.Supplier{}).
		Where("contact_email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ? OR contact_email ILIKE ?", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

var _ supplier.SupplierRepository = (*GormSupplierRepository)(nil)
