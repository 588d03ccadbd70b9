package shared

import (
	"fmt"
	"sync"
	"time"
)

// Reference number prefixes for human-facing identifiers
const (
	OrderNumberPrefix   = "ORD"
	PaymentNumberPrefix = "PAY"
	ProductSKUPrefix    = "PROD"
)

var (
	numberMu   sync.Mutex
	lastMillis int64
)

// NewReferenceNumber generates a time-based reference number such as
// "ORD-1735689600123". Uniqueness is practical, not guaranteed: a
// monotonic guard prevents two calls in the same process from sharing
// a timestamp, matching the storefront's order-id scheme.
func NewReferenceNumber(prefix string) string {
	numberMu.Lock()
	millis := time.Now().UnixMilli()
	if millis <= lastMillis {
		millis = lastMillis + 1
	}
	lastMillis = millis
	numberMu.Unlock()

	return fmt.Sprintf("%s-%d", prefix, millis)
}
