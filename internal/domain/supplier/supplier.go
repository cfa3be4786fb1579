package supplier

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
)

// SupplierStatus represents where a supplier sits in the onboarding and
// partnership lifecycle.
type SupplierStatus string

const (
	SupplierStatusPending   SupplierStatus = "pending"
	SupplierStatusApproved  SupplierStatus = "approved"
	SupplierStatusRejected  SupplierStatus = "rejected"
	SupplierStatusSuspended SupplierStatus = "suspended"
)

// Supplier is a vendor account on the supplier portal. A supplier signs
// up pending and gains portal access once an admin approves them.
type Supplier struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyName   string         `gorm:"type:varchar(200);not null"`
	ContactName   string         `gorm:"type:varchar(200);not null"`
	ContactEmail  string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	ContactPhone  string         `gorm:"type:varchar(50)"`
	Website       string         `gorm:"type:varchar(255)"`
	Description   string         `gorm:"type:text"`
	Status        SupplierStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ReviewNote    string         `gorm:"type:text"`
	ReviewedBy    *uuid.UUID     `gorm:"type:uuid"`
	ReviewedAt    *time.Time
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier registers a pending supplier account.
func NewSupplier(userID uuid.UUID, companyName, contactName, contactEmail string) (*Supplier, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID is required")
	}
	if strings.TrimSpace(companyName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Company name cannot exceed 200 characters")
	}
	if strings.TrimSpace(contactName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Contact name cannot be empty")
	}
	contactEmail = strings.ToLower(strings.TrimSpace(contactEmail))
	if contactEmail == "" || !strings.Contains(contactEmail, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Contact email is invalid")
	}

	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		CompanyName:       companyName,
		ContactName:       contactName,
		ContactEmail:      contactEmail,
		Status:            SupplierStatusPending,
	}
	s.AddDomainEvent(NewSupplierRegisteredEvent(s.ID, companyName, contactEmail))
	return s, nil
}

// UpdateProfile updates the supplier's editable company details.
func (s *Supplier) UpdateProfile(companyName, contactName, contactPhone, website, description string) error {
	if strings.TrimSpace(companyName) == "" {
		return shared.NewDomainError("INVALID_SUPPLIER", "Company name cannot be empty")
	}
	if strings.TrimSpace(contactName) == "" {
		return shared.NewDomainError("INVALID_SUPPLIER", "Contact name cannot be empty")
	}

	s.CompanyName = companyName
	s.ContactName = contactName
	s.ContactPhone = contactPhone
	s.Website = website
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Approve grants portal access. Only pending suppliers can be approved.
func (s *Supplier) Approve(reviewerID uuid.UUID, note string) error {
	if s.Status != SupplierStatusPending {
		return shared.NewDomainError("INVALID_STATUS", "Only pending suppliers can be approved")
	}
	s.review(SupplierStatusApproved, reviewerID, note)
	s.AddDomainEvent(NewSupplierReviewedEvent(s.ID, s.CompanyName, s.ContactEmail, string(SupplierStatusApproved)))
	return nil
}

// Reject declines a pending application.
func (s *Supplier) Reject(reviewerID uuid.UUID, note string) error {
	if s.Status != SupplierStatusPending {
		return shared.NewDomainError("INVALID_STATUS", "Only pending suppliers can be rejected")
	}
	s.review(SupplierStatusRejected, reviewerID, note)
	s.AddDomainEvent(NewSupplierReviewedEvent(s.ID, s.CompanyName, s.ContactEmail, string(SupplierStatusRejected)))
	return nil
}

// Suspend blocks an approved supplier from the portal.
func (s *Supplier) Suspend(reviewerID uuid.UUID, note string) error {
	if s.Status != SupplierStatusApproved {
		return shared.NewDomainError("INVALID_STATUS", "Only approved suppliers can be suspended")
	}
	s.review(SupplierStatusSuspended, reviewerID, note)
	return nil
}

// Reinstate restores a suspended supplier to approved.
func (s *Supplier) Reinstate(reviewerID uuid.UUID, note string) error {
	if s.Status != SupplierStatusSuspended {
		return shared.NewDomainError("INVALID_STATUS", "Only suspended suppliers can be reinstated")
	}
	s.review(SupplierStatusApproved, reviewerID, note)
	return nil
}

func (s *Supplier) review(status SupplierStatus, reviewerID uuid.UUID, note string) {
	now := time.Now()
	s.Status = status
	s.ReviewNote = note
	s.ReviewedBy = &reviewerID
	s.ReviewedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
}

// IsApproved reports whether the supplier may use the portal.
func (s *Supplier) IsApproved() bool {
	return s.Status == SupplierStatusApproved
}
