package supplier

import (
	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

const (
	EventTypeSupplierRegistered = "supplier.registered"
	EventTypeSupplierReviewed   = "supplier.reviewed"
)

// SupplierRegisteredEvent is emitted when a vendor signs up.
type SupplierRegisteredEvent struct {
	shared.BaseDomainEvent
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
}

func NewSupplierRegisteredEvent(supplierID uuid.UUID, companyName, contactEmail string) *SupplierRegisteredEvent {
	return &SupplierRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierRegistered, "Supplier", supplierID),
		CompanyName:     companyName,
		ContactEmail:    contactEmail,
	}
}

// SupplierReviewedEvent is emitted when an admin approves or rejects an
// application.
type SupplierReviewedEvent struct {
	shared.BaseDomainEvent
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
	Outcome      string `json:"outcome"`
}

func NewSupplierReviewedEvent(supplierID uuid.UUID, companyName, contactEmail, outcome string) *SupplierReviewedEvent {
	return &SupplierReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierReviewed, "Supplier", supplierID),
		CompanyName:     companyName,
		ContactEmail:    contactEmail,
		Outcome:         outcome,
	}
}
