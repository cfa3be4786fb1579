package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements account.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by their ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByUserID finds the customer profile for an identity user
func (r *GormCustomerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, email string) (*account.Customer, error) {
	var customer account.Customer
	if err := r.db.WithContext(ctx).First(&customer, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll returns customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]account.Customer, error) {
	var customers []account.Customer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&account.Customer{}), filter)
	query = applyOrdering(query, filter, customerSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// SaveWithLock updates a customer with optimistic concurrency control.
// Columns are listed explicitly so zero values (a marketing opt-out,
// points spent down to 0) are written instead of skipped.
func (r *GormCustomerRepository) SaveWithLock(ctx context.Context, customer *account.Customer) error {
	result := r.db.WithContext(ctx).
		Model(customer).
		Where("id = ? AND version = ?", customer.ID, customer.Version-1).
		Updates(map[string]interface{}{
			"email":            customer.Email,
			"first_name":       customer.FirstName,
			"last_name":        customer.LastName,
			"phone":            customer.Phone,
			"marketing_opt_in": customer.MarketingOptIn,
			"lifetime_spend":   customer.LifetimeSpend,
			"loyalty_points":   customer.LoyaltyPoints,
			"status":           customer.Status,
			"version":          customer.Version,
			"updated_at":       customer.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a customer profile
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&account.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&account.Customer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks whether a customer with the email exists
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&account.Customer{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

var _ account.CustomerRepository = (*GormCustomerRepository)(nil)
