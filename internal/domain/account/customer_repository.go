package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by their ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByUserID finds the customer profile for an identity user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll returns customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock updates a customer with optimistic concurrency control
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Delete removes a customer profile
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks whether a customer with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
