package identity

import (
	"strings"
	"time"

	"github.com/stemkits/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse access role attached to a user account. Each user
// holds exactly one role.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

// UserStatus represents whether an account may sign in.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

const minPasswordLength = 8

// User is an authentication account. Profile data lives on the Customer
// or Supplier aggregate keyed by UserID.
type User struct {
	shared.BaseAggregateRoot
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         Role       `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active account with a bcrypt-hashed password.
func NewUser(email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	switch role {
	case RoleCustomer, RoleSupplier, RoleAdmin:
	default:
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Role:              role,
		Status:            UserStatusActive,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword hashes and stores a new password.
func (u *User) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_FAILED", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful sign-in.
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Disable blocks the account from signing in.
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("INVALID_STATUS", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Enable reactivates a disabled account.
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("INVALID_STATUS", "User is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
