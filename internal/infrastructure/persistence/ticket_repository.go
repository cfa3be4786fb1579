package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/supplier"
	"gorm.io/gorm"
)

// GormTicketRepository implements supplier.TicketRepository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// FindByID finds a ticket with responses and attachments loaded
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*supplier.Ticket, error) {
	var ticket supplier.Ticket
	if err := r.db.WithContext(ctx).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Attachments").
		First(&ticket, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// FindBySupplier returns a supplier's tickets, newest first
func (r *GormTicketRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]supplier.Ticket, error) {
	var tickets []supplier.Ticket
	query := r.db.WithContext(ctx).
		Model(&supplier.Ticket{}).
		Where("supplier_id = ?", supplierID)
	query = applyOrdering(query, filter, ticketSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindAll returns tickets matching the filter
func (r *GormTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]supplier.Ticket, error) {
	var tickets []supplier.Ticket
	query := r.applyFilter(r.db.WithContext(ctx).Model(&supplier.Ticket{}), filter)
	query = applyOrdering(query, filter, ticketSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindByStatus returns tickets in a given status
func (r *GormTicketRepository) FindByStatus(ctx context.Context, status supplier.TicketStatus, filter shared.Filter) ([]supplier.Ticket, error) {
	var tickets []supplier.Ticket
	query := r.db.WithContext(ctx).
		Model(&supplier.Ticket{}).
		Where("status = ?", status)
	query = applyOrdering(query, filter, ticketSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Save creates or updates a ticket and its children. Responses are
// append-only so a plain save is enough; attachment removals are handled
// through their own delete path.
func (r *GormTicketRepository) Save(ctx context.Context, ticket *supplier.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// Delete removes a ticket and its children
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&supplier.TicketResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ticket_id = ?", id).Delete(&supplier.TicketAttachment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&supplier.Ticket{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of tickets matching the filter
func (r *GormTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&supplier.Ticket{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns how many tickets hold the status
func (r *GormTicketRepository) CountByStatus(ctx context.Context, status supplier.TicketStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&supplier.Ticket{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTicketRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR body ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}
	return query
}

var _ supplier.TicketRepository = (*GormTicketRepository)(nil)
