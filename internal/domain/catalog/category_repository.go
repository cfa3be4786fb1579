package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindRoots finds all root categories (no parent)
	FindRoots(ctx context.Context) ([]Category, error)

	// FindChildren finds all direct children of a category
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// FindActive finds all active categories
	FindActive(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountProducts counts products assigned to a category
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ExistsBySlug checks if a category with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
