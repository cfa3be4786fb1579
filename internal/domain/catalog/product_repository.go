package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

// StorefrontQuery holds storefront-facing browse filters.
// Only active products are ever returned for a storefront query.
type StorefrontQuery struct {
	CategoryID *uuid.UUID
	Age        *int // Child age in years; matches products whose range covers it
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	Featured   *bool
	InStock    bool
	Search     string
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindBySlug finds a product by its storefront slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll finds all products matching the filter (admin listing)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindStorefront finds active products matching the storefront query
	FindStorefront(ctx context.Context, query StorefrontQuery, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products by lifecycle status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// FindLowStock finds active products at or below their low-stock threshold
	FindLowStock(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves a product with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountStorefront counts active products matching the storefront query
	CountStorefront(ctx context.Context, query StorefrontQuery) (int64, error)

	// CountByStatus counts products by lifecycle status
	CountByStatus(ctx context.Context, status ProductStatus) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// ExistsBySlug checks if a product with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
