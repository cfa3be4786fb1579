package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
)

// StatusCount pairs an order status with how many orders hold it.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}

// DailyRevenue is an aggregated revenue figure for one calendar day.
type DailyRevenue struct {
	Day     time.Time
	Orders  int64
	Revenue decimal.Decimal
}

// ProductSales is an aggregated unit count per product.
type ProductSales struct {
	ProductID   uuid.UUID
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its public number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByCustomer returns a customer's orders, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByStatus returns orders in a given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock updates an order with optimistic concurrency control
	SaveWithLock(ctx context.Context, order *Order) error

	// NextOrderNumber reserves the next sequential order number
	NextOrderNumber(ctx context.Context) (string, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByCustomer returns how many orders a customer has placed
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// CountByStatus returns order counts grouped by status
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	// RevenueByDay aggregates paid-or-later order revenue per day
	RevenueByDay(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)

	// TopProducts aggregates unit sales per product over a period
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
}
