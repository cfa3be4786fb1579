package supplier

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByUserID finds the supplier account for an identity user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Supplier, error)

	// FindAll returns suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// FindByStatus returns suppliers in a given status
	FindByStatus(ctx context.Context, status SupplierStatus, filter shared.Filter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// SaveWithLock updates a supplier with optimistic concurrency control
	SaveWithLock(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier account
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns how many suppliers hold the status
	CountByStatus(ctx context.Context, status SupplierStatus) (int64, error)

	// ExistsByEmail checks whether a supplier with the contact email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
