package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Invalid or empty input falls back to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist of column
// names. Anything not whitelisted falls back to defaultField. Sort
// columns are interpolated into ORDER BY, so only whitelisted values
// may pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// OrderSortFields contains allowed sort columns for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"status":         true,
	"payment_status": true,
	"summary_total":  true,
}

// PaymentSortFields contains allowed sort columns for payments
var PaymentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"payment_number": true,
	"status":         true,
	"amount":         true,
}

// ProductSortFields contains allowed sort columns for products
var ProductSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"name":            true,
	"sku":             true,
	"status":          true,
	"price_regular":   true,
	"inventory_stock": true,
}

// CategorySortFields contains allowed sort columns for categories
var CategorySortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"slug":          true,
	"display_order": true,
}

// CustomerSortFields contains allowed sort columns for customers
var CustomerSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email":         true,
	"status":        true,
	"last_order_at": true,
}
