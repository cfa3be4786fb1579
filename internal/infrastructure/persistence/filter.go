package persistence

import (
	"strings"

	"github.com/stemkits/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// validateSortOrder normalizes the sort order to ASC or DESC, defaulting
// to DESC.
func validateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// validateSortField checks the sort field against a whitelist. Sort fields
// reach raw SQL, so anything outside the whitelist falls back to the
// default.
func validateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyOrdering applies whitelisted ordering to a query
func applyOrdering(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := validateSortField(filter.OrderBy, allowed, defaultField)
	return query.Order(field + " " + validateSortOrder(filter.OrderDir))
}

// applyPagination applies offset/limit from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	return query
}

// commonSortFields are present on every aggregate
var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

var categorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"slug":       true,
	"name":       true,
	"sort_order": true,
}

var productSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"sku":            true,
	"slug":           true,
	"name":           true,
	"price":          true,
	"stock_quantity": true,
	"status":         true,
}

var customerSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"email":          true,
	"last_name":      true,
	"lifetime_spend": true,
	"loyalty_points": true,
	"status":         true,
}

var orderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total":        true,
	"paid_at":      true,
}

var supplierSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"company_name": true,
	"status":       true,
	"reviewed_at":  true,
}

var ticketSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"subject":    true,
	"status":     true,
	"priority":   true,
}

var userSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"role":          true,
	"last_login_at": true,
}

var templateSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}
