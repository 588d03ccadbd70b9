package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "order_number", ValidateSortField("order_number", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", OrderSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password; DROP TABLE orders", OrderSortFields, "created_at"))
	assert.Equal(t, "inventory_stock", ValidateSortField("inventory_stock", ProductSortFields, "created_at"))
}
