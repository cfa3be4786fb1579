package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/order"
	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// revenueStatuses are the order states that count towards revenue figures.
var revenueStatuses = []order.OrderStatus{
	order.OrderStatusPaid,
	order.OrderStatusProcessing,
	order.OrderStatusShipped,
	order.OrderStatusDelivered,
}

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its public number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer returns a customer's orders, newest first
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Preload("Items").
		Where("customer_id = ?", customerID)
	query = applyOrdering(query, filter, orderSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll returns orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}).Preload("Items"), filter)
	query = applyOrdering(query, filter, orderSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus returns orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Preload("Items").
		Where("status = ?", status)
	query = applyOrdering(query, filter, orderSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// SaveWithLock updates an order with optimistic concurrency control. Only
// the mutable columns are written; line items and checkout snapshots never
// change after placement. Columns are listed explicitly so zero values are
// written instead of skipped.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(o).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":          o.Status,
			"notes":           o.Notes,
			"tracking_number": o.TrackingNumber,
			"paid_at":         o.PaidAt,
			"shipped_at":      o.ShippedAt,
			"delivered_at":    o.DeliveredAt,
			"cancelled_at":    o.CancelledAt,
			"version":         o.Version,
			"updated_at":      o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// NextOrderNumber reserves the next sequential order number
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var next int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT nextval('order_number_seq')").
		Scan(&next).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%06d", next), nil
}

// Count returns the number of orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomer returns how many orders a customer has placed
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns order counts grouped by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) ([]order.StatusCount, error) {
	var counts []order.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// RevenueByDay aggregates paid-or-later order revenue per day
func (r *GormOrderRepository) RevenueByDay(ctx context.Context, from, to time.Time) ([]order.DailyRevenue, error) {
	var rows []order.DailyRevenue
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("DATE_TRUNC('day', created_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total), 0) AS revenue").
		Where("status IN ? AND created_at >= ? AND created_at < ?", revenueStatuses, from, to).
		Group("DATE_TRUNC('day', created_at)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopProducts aggregates unit sales per product over a period
func (r *GormOrderRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]order.ProductSales, error) {
	var rows []order.ProductSales
	if err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, order_items.product_name, "+
			"SUM(order_items.quantity) AS units_sold, "+
			"COALESCE(SUM(order_items.unit_price * order_items.quantity), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ? AND orders.created_at >= ? AND orders.created_at < ?", revenueStatuses, from, to).
		Group("order_items.product_id, order_items.product_name").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR shipping_name ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
