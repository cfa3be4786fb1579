package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", strings.ToUpper(sku)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySlug finds a product by its storefront slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "slug = ?", strings.ToLower(slug)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	query = applyOrdering(query, filter, productSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindStorefront finds active products matching the storefront query
func (r *GormProductRepository) FindStorefront(ctx context.Context, query catalog.StorefrontQuery, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	q := r.applyStorefrontQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query)
	q = applyOrdering(q, filter, productSortFields, "created_at")
	q = applyPagination(q, filter)

	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByStatus finds products by lifecycle status
func (r *GormProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("status = ?", status)
	query = applyOrdering(query, filter, productSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindLowStock finds active products at or below their low-stock threshold
func (r *GormProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("status = ? AND stock_quantity <= low_stock_threshold", catalog.ProductStatusActive)
	query = applyOrdering(query, filter, productSortFields, "stock_quantity")
	query = applyPagination(query, filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves a product with optimistic locking (version check).
// Columns are listed explicitly so zero values (stock hitting 0, a cleared
// featured flag) are written instead of skipped.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"sku":                 product.SKU,
			"slug":                product.Slug,
			"name":                product.Name,
			"description":         product.Description,
			"brand":               product.Brand,
			"category_id":         product.CategoryID,
			"price":               product.Price,
			"compare_at_price":    product.CompareAtPrice,
			"age_min":             product.AgeMin,
			"age_max":             product.AgeMax,
			"stock_quantity":      product.StockQuantity,
			"low_stock_threshold": product.LowStockThreshold,
			"status":              product.Status,
			"featured":            product.Featured,
			"sort_order":          product.SortOrder,
			"version":             product.Version,
			"updated_at":          product.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountStorefront counts active products matching the storefront query
func (r *GormProductRepository) CountStorefront(ctx context.Context, query catalog.StorefrontQuery) (int64, error) {
	var count int64
	q := r.applyStorefrontQuery(r.db.WithContext(ctx).Model(&catalog.Product{}), query)
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts products by lifecycle status
func (r *GormProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySKU checks if a product with the given SKU exists
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("sku = ?", strings.ToUpper(sku)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsBySlug checks if a product with the given slug exists
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "featured":
			query = query.Where("featured = ?", value)
		}
	}
	return query
}

func (r *GormProductRepository) applyStorefrontQuery(q *gorm.DB, query catalog.StorefrontQuery) *gorm.DB {
	q = q.Where("status = ?", catalog.ProductStatusActive)

	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}
	if query.Age != nil {
		q = q.Where("age_min <= ? AND age_max >= ?", *query.Age, *query.Age)
	}
	if query.PriceMin != nil {
		q = q.Where("price >= ?", *query.PriceMin)
	}
	if query.PriceMax != nil {
		q = q.Where("price <= ?", *query.PriceMax)
	}
	if query.Featured != nil {
		q = q.Where("featured = ?", *query.Featured)
	}
	if query.InStock {
		q = q.Where("stock_quantity > 0")
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return q
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
