package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRangeFilter bounds an aggregation to a period. Zero values default
// to the trailing 30 days.
type DateRangeFilter struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// TopFilter bounds a ranking query.
type TopFilter struct {
	DateRangeFilter
	Limit int `form:"limit"`
}

// SalesSummaryResponse is the headline revenue figure for a period
type SalesSummaryResponse struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	TotalOrders      int64           `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AvgOrderValue    decimal.Decimal `json:"avg_order_value"`
	FormattedRevenue string          `json:"formatted_revenue"`
	ComputedAt       time.Time       `json:"computed_at"`
}

// StatusCountEntry pairs an order status with its count
type StatusCountEntry struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// OrdersByStatusResponse groups order counts by lifecycle status
type OrdersByStatusResponse struct {
	Counts     []StatusCountEntry `json:"counts"`
	Total      int64              `json:"total"`
	ComputedAt time.Time          `json:"computed_at"`
}

// DailyRevenueEntry is one day of the revenue trend
type DailyRevenueEntry struct {
	Day     time.Time       `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueTrendResponse is the daily revenue series for a period
type RevenueTrendResponse struct {
	From       time.Time           `json:"from"`
	To         time.Time           `json:"to"`
	Days       []DailyRevenueEntry `json:"days"`
	ComputedAt time.Time           `json:"computed_at"`
}

// TopProductEntry is one row of the product ranking
type TopProductEntry struct {
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	UnitsSold        int64           `json:"units_sold"`
	Revenue          decimal.Decimal `json:"revenue"`
	FormattedRevenue string          `json:"formatted_revenue"`
}

// TopProductsResponse ranks products by unit sales over a period
type TopProductsResponse struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Products   []TopProductEntry `json:"products"`
	ComputedAt time.Time         `json:"computed_at"`
}

// TopCustomerEntry is one row of the customer ranking
type TopCustomerEntry struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Orders         int64           `json:"orders"`
	LifetimeSpend  decimal.Decimal `json:"lifetime_spend"`
	FormattedSpend string          `json:"formatted_spend"`
}

// TopCustomersResponse ranks customers by lifetime spend
type TopCustomersResponse struct {
	Customers  []TopCustomerEntry `json:"customers"`
	ComputedAt time.Time          `json:"computed_at"`
}

// LowStockEntry is one product at or below its reorder threshold
type LowStockEntry struct {
	ProductID         uuid.UUID `json:"product_id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

// LowStockResponse lists active products that need restocking
type LowStockResponse struct {
	Products   []LowStockEntry `json:"products"`
	ComputedAt time.Time       `json:"computed_at"`
}
