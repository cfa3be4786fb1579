package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByCustomer finds the customer's cart with items loaded
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and its items
	Save(ctx context.Context, cart *Cart) error

	// Delete removes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
