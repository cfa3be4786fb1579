package supplier

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"go.uber.org/zap"
)

// SupplierService handles supplier profiles and admin review
type SupplierService struct {
	supplierRepo supplier.SupplierRepository
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo supplier.SupplierRepository, publisher shared.EventPublisher, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetByUserID returns the supplier account for an identity user
func (s *SupplierService) GetByUserID(ctx context.Context, userID uuid.UUID) (*SupplierResponse, error) {
	vendor, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(vendor)
	return &response, nil
}

// GetByID returns a supplier account for the back office
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	vendor, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(vendor)
	return &response, nil
}

// UpdateProfile lets a supplier edit their company details
func (s *SupplierService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateSupplierProfileRequest) (*SupplierResponse, error) {
	vendor, err := s.supplierRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := vendor.UpdateProfile(req.CompanyName, req.ContactName, req.ContactPhone, req.Website, req.Description); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.SaveWithLock(ctx, vendor); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(vendor)
	return &response, nil
}

// List returns suppliers for the back office
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := buildSupplierFilter(filter)

	var vendors []supplier.Supplier
	var err error
	if filter.Status != "" {
		vendors, err = s.supplierRepo.FindByStatus(ctx, supplier.SupplierStatus(filter.Status), domainFilter)
	} else {
		vendors, err = s.supplierRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(vendors))
	for i := range vendors {
		responses = append(responses, ToSupplierResponse(&vendors[i]))
	}
	return responses, total, nil
}

// Approve grants a pending supplier portal access
func (s *SupplierService) Approve(ctx context.Context, id, reviewerID uuid.UUID, req ReviewSupplierRequest) (*SupplierResponse, error) {
	return s.review(ctx, id, func(v *supplier.Supplier) error {
		return v.Approve(reviewerID, req.Note)
	})
}

// Reject declines a pending application
func (s *SupplierService) Reject(ctx context.Context, id, reviewerID uuid.UUID, req ReviewSupplierRequest) (*SupplierResponse, error) {
	return s.review(ctx, id, func(v *supplier.Supplier) error {
		return v.Reject(reviewerID, req.Note)
	})
}

// Suspend blocks an approved supplier from the portal
func (s *SupplierService) Suspend(ctx context.Context, id, reviewerID uuid.UUID, req ReviewSupplierRequest) (*SupplierResponse, error) {
	return s.review(ctx, id, func(v *supplier.Supplier) error {
		return v.Suspend(reviewerID, req.Note)
	})
}

// Reinstate restores a suspended supplier to approved
func (s *SupplierService) Reinstate(ctx context.Context, id, reviewerID uuid.UUID, req ReviewSupplierRequest) (*SupplierResponse, error) {
	return s.review(ctx, id, func(v *supplier.Supplier) error {
		return v.Reinstate(reviewerID, req.Note)
	})
}

func (s *SupplierService) review(ctx context.Context, id uuid.UUID, op func(*supplier.Supplier) error) (*SupplierResponse, error) {
	vendor, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := op(vendor); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.SaveWithLock(ctx, vendor); err != nil {
		return nil, err
	}

	if events := vendor.GetDomainEvents(); len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("Failed to publish supplier events",
				zap.String("supplier_id", vendor.ID.String()), zap.Error(err))
		}
		vendor.ClearDomainEvents()
	}

	s.logger.Info("Supplier reviewed",
		zap.String("supplier_id", vendor.ID.String()),
		zap.String("status", string(vendor.Status)))

	response := ToSupplierResponse(vendor)
	return &response, nil
}

func buildSupplierFilter(filter SupplierListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
}
