package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/order"
	"github.com/stemkits/backend/internal/domain/settings"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ReportCache stores serialized report payloads with a TTL. A nil-safe
// miss is signaled with found=false rather than an error.
type ReportCache interface {
	// Get returns the cached payload for a key
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores a payload under a key with an expiry
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes every key sharing the prefix
	DeletePrefix(ctx context.Context, prefix string) error
}

const (
	cacheKeyPrefix   = "report:"
	defaultRangeDays = 30
	defaultTopLimit  = 10
	maxTopLimit      = 50
	lowStockPageSize = 100
)

// ReportService computes back-office aggregations over orders, customers,
// and products, caching results between refreshes.
type ReportService struct {
	orderRepo    order.OrderRepository
	productRepo  catalog.ProductRepository
	customerRepo account.CustomerRepository
	settingsRepo settings.StoreSettingsRepository
	cache        ReportCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo account.CustomerRepository,
	settingsRepo settings.StoreSettingsRepository,
	cache ReportCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ReportService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ReportService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// SalesSummary returns the headline revenue figures for a period
func (s *ReportService) SalesSummary(ctx context.Context, filter DateRangeFilter) (*SalesSummaryResponse, error) {
	from, to := normalizeRange(filter)
	key := rangeKey("sales_summary", from, to)

	return cached(ctx, s, key, func(ctx context.Context) (*SalesSummaryResponse, error) {
		days, err := s.orderRepo.RevenueByDay(ctx, from, to)
		if err != nil {
			return nil, err
		}

		var orders int64
		revenue := decimal.Zero
		for _, day := range days {
			orders += day.Orders
			revenue = revenue.Add(day.Revenue)
		}

		avg := decimal.Zero
		if orders > 0 {
			avg = revenue.Div(decimal.NewFromInt(orders)).Round(2)
		}

		return &SalesSummaryResponse{
			From:             from,
			To:               to,
			TotalOrders:      orders,
			TotalRevenue:     revenue,
			AvgOrderValue:    avg,
			FormattedRevenue: s.formatAmount(ctx, revenue),
			ComputedAt:       time.Now(),
		}, nil
	})
}

// OrdersByStatus returns order counts grouped by lifecycle status
func (s *ReportService) OrdersByStatus(ctx context.Context) (*OrdersByStatusResponse, error) {
	key := cacheKeyPrefix + "orders_by_status"

	return cached(ctx, s, key, func(ctx context.Context) (*OrdersByStatusResponse, error) {
		counts, err := s.orderRepo.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}

		entries := make([]StatusCountEntry, 0, len(counts))
		var total int64
		for _, count := range counts {
			entries = append(entries, StatusCountEntry{
				Status: string(count.Status),
				Count:  count.Count,
			})
			total += count.Count
		}

		return &OrdersByStatusResponse{
			Counts:     entries,
			Total:      total,
			ComputedAt: time.Now(),
		}, nil
	})
}

// RevenueTrend returns the daily revenue series for a period
func (s *ReportService) RevenueTrend(ctx context.Context, filter DateRangeFilter) (*RevenueTrendResponse, error) {
	from, to := normalizeRange(filter)
	key := rangeKey("revenue_trend", from, to)

	return cached(ctx, s, key, func(ctx context.Context) (*RevenueTrendResponse, error) {
		days, err := s.orderRepo.RevenueByDay(ctx, from, to)
		if err != nil {
			return nil, err
		}

		entries := make([]DailyRevenueEntry, 0, len(days))
		for _, day := range days {
			entries = append(entries, DailyRevenueEntry{
				Day:     day.Day,
				Orders:  day.Orders,
				Revenue: day.Revenue,
			})
		}

		return &RevenueTrendResponse{
			From:       from,
			To:         to,
			Days:       entries,
			ComputedAt: time.Now(),
		}, nil
	})
}

// TopProducts ranks products by unit sales over a period
func (s *ReportService) TopProducts(ctx context.Context, filter TopFilter) (*TopProductsResponse, error) {
	from, to := normalizeRange(filter.DateRangeFilter)
	limit := normalizeLimit(filter.Limit)
	key := fmt.Sprintf("%s:%d", rangeKey("top_products", from, to), limit)

	return cached(ctx, s, key, func(ctx context.Context) (*TopProductsResponse, error) {
		sales, err := s.orderRepo.TopProducts(ctx, from, to, limit)
		if err != nil {
			return nil, err
		}

		entries := make([]TopProductEntry, 0, len(sales))
		for _, sale := range sales {
			entries = append(entries, TopProductEntry{
				ProductID:        sale.ProductID,
				ProductName:      sale.ProductName,
				UnitsSold:        sale.UnitsSold,
				Revenue:          sale.Revenue,
				FormattedRevenue: s.formatAmount(ctx, sale.Revenue),
			})
		}

		return &TopProductsResponse{
			From:       from,
			To:         to,
			Products:   entries,
			ComputedAt: time.Now(),
		}, nil
	})
}

// TopCustomers ranks customers by lifetime spend
func (s *ReportService) TopCustomers(ctx context.Context, limit int) (*TopCustomersResponse, error) {
	limit = normalizeLimit(limit)
	key := fmt.Sprintf("%stop_customers:%d", cacheKeyPrefix, limit)

	return cached(ctx, s, key, func(ctx context.Context) (*TopCustomersResponse, error) {
		customers, err := s.customerRepo.FindAll(ctx, shared.Filter{
			Page:     1,
			PageSize: limit,
			OrderBy:  "lifetime_spend",
			OrderDir: "desc",
			Filters:  make(map[string]interface{}),
		})
		if err != nil {
			return nil, err
		}

		entries := make([]TopCustomerEntry, 0, len(customers))
		for i := range customers {
			c := &customers[i]
			orders, err := s.orderRepo.CountByCustomer(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			entries = append(entries, TopCustomerEntry{
				CustomerID:     c.ID,
				Name:           c.FullName(),
				Email:          c.Email,
				Orders:         orders,
				LifetimeSpend:  c.LifetimeSpend,
				FormattedSpend: s.formatAmount(ctx, c.LifetimeSpend),
			})
		}

		return &TopCustomersResponse{
			Customers:  entries,
			ComputedAt: time.Now(),
		}, nil
	})
}

// LowStock lists active products at or below their reorder threshold
func (s *ReportService) LowStock(ctx context.Context) (*LowStockResponse, error) {
	key := cacheKeyPrefix + "low_stock"

	return cached(ctx, s, key, func(ctx context.Context) (*LowStockResponse, error) {
		products, err := s.productRepo.FindLowStock(ctx, shared.Filter{
			Page:     1,
			PageSize: lowStockPageSize,
			OrderBy:  "stock_quantity",
			OrderDir: "asc",
			Filters:  make(map[string]interface{}),
		})
		if err != nil {
			return nil, err
		}

		entries := make([]LowStockEntry, 0, len(products))
		for i := range products {
			p := &products[i]
			entries = append(entries, LowStockEntry{
				ProductID:         p.ID,
				SKU:               p.SKU,
				Name:              p.Name,
				StockQuantity:     p.StockQuantity,
				LowStockThreshold: p.LowStockThreshold,
			})
		}

		return &LowStockResponse{
			Products:   entries,
			ComputedAt: time.Now(),
		}, nil
	})
}

// Refresh drops every cached report so the next read recomputes
func (s *ReportService) Refresh(ctx context.Context) error {
	if err := s.cache.DeletePrefix(ctx, cacheKeyPrefix); err != nil {
		return err
	}
	s.logger.Info("Report cache invalidated")
	return nil
}

// cached runs the cache-aside path for one report key. Cache failures are
// logged and fall through to a fresh computation.
func cached[T any](ctx context.Context, s *ReportService, key string, compute func(context.Context) (*T, error)) (*T, error) {
	if payload, found, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		var result T
		if err := json.Unmarshal(payload, &result); err == nil {
			return &result, nil
		}
		s.logger.Warn("Discarding malformed report cache entry", zap.String("key", key))
	}

	result, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return result, nil
}

// formatAmount renders a money figure in the store currency for display.
func (s *ReportService) formatAmount(ctx context.Context, amount decimal.Decimal) string {
	code := "USD"
	if record, err := s.settingsRepo.Get(ctx); err == nil {
		code = record.CurrencyCode
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(amount.InexactFloat64())))
}

func normalizeRange(filter DateRangeFilter) (time.Time, time.Time) {
	to := filter.To
	if to.IsZero() {
		to = time.Now()
	}
	from := filter.From
	if from.IsZero() || from.After(to) {
		from = to.AddDate(0, 0, -defaultRangeDays)
	}
	return from, to
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}

func rangeKey(name string, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%s:%s", cacheKeyPrefix, name, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
