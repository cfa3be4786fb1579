package account

import (
	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

const (
	EventTypeCustomerRegistered = "account.customer.registered"
	EventTypeCustomerLevelUp    = "account.customer.level_up"
)

// CustomerRegisteredEvent is emitted when a storefront profile is created.
type CustomerRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

func NewCustomerRegisteredEvent(customerID, userID uuid.UUID, email string) *CustomerRegisteredEvent {
	return &CustomerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerRegistered, "Customer", customerID),
		UserID:          userID,
		Email:           email,
	}
}

// CustomerLevelUpEvent is emitted when lifetime spend crosses a loyalty
// threshold.
type CustomerLevelUpEvent struct {
	shared.BaseDomainEvent
	FromLevel string `json:"from_level"`
	ToLevel   string `json:"to_level"`
}

func NewCustomerLevelUpEvent(customerID uuid.UUID, from, to string) *CustomerLevelUpEvent {
	return &CustomerLevelUpEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerLevelUp, "Customer", customerID),
		FromLevel:       from,
		ToLevel:         to,
	}
}
