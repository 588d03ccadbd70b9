package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReferenceNumber(t *testing.T) {
	n := NewReferenceNumber(OrderNumberPrefix)
	assert.True(t, strings.HasPrefix(n, "ORD-"))
}

func TestNewReferenceNumber_UniqueWithinProcess(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		n := NewReferenceNumber(PaymentNumberPrefix)
		assert.False(t, seen[n], "duplicate reference number %s", n)
		seen[n] = true
	}
}
