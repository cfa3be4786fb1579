package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by their ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete removes a user account
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks whether a user with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CountByRole returns how many users hold the role
	CountByRole(ctx context.Context, role Role) (int64, error)
}
