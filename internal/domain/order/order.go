package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/payment"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The storefront accepted any assignment; transitions are now validated
// against a closed table.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// CustomerInfo is the customer snapshot embedded in an order
type CustomerInfo struct {
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	Email      string     `gorm:"type:varchar(254);not null" json:"email"`
	Phone      string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
}

// ShippingAddress is the delivery address snapshot embedded in an order
type ShippingAddress struct {
	Name         string `gorm:"type:varchar(200)" json:"name,omitempty"`
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1,omitempty"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City         string `gorm:"type:varchar(100)" json:"city,omitempty"`
	State        string `gorm:"type:varchar(100)" json:"state,omitempty"`
	Country      string `gorm:"type:varchar(100);default:'India'" json:"country,omitempty"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code,omitempty"`
	Phone        string `gorm:"type:varchar(20)" json:"phone,omitempty"`
}

// PaymentInfo is the payment snapshot embedded in an order. The full
// payment ledger (refunds, transaction log) lives in the payment
// aggregate; this snapshot keeps dashboard queries on a single table.
type PaymentInfo struct {
	Method        payment.Method `gorm:"type:varchar(20)" json:"method"`
	Status        payment.Status `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	TransactionID string         `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	Gateway       string         `gorm:"type:varchar(50)" json:"gateway,omitempty"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
}

// ShippingInfo is the fulfilment detail embedded in an order
type ShippingInfo struct {
	Method            string     `gorm:"type:varchar(50)" json:"method,omitempty"`
	Carrier           string     `gorm:"type:varchar(100)" json:"carrier,omitempty"`
	TrackingNumber    string     `gorm:"type:varchar(100)" json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
}

// Summary is the computed totals block attached to an order.
// Total = Subtotal + Shipping + Tax - Discount.
type Summary struct {
	Subtotal decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"subtotal"`
	Shipping decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"shipping"`
	Tax      decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"tax"`
	Discount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	Total    decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0;index" json:"total"`
	Currency valueobject.Currency `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
}

// Item represents a line item in an order
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	SKU       string          `gorm:"type:varchar(100)" json:"sku"`
	Image     string          `gorm:"type:varchar(500)" json:"image,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates a new order line item. Total is always Price * Quantity.
func NewItem(orderID, productID uuid.UUID, name, sku, image string, price valueobject.Money, quantity int) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	now := time.Now()
	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Name:      name,
		SKU:       sku,
		Image:     image,
		Price:     price.Amount(),
		Quantity:  quantity,
		Total:     price.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateQuantity updates the item quantity and recalculates the total
func (i *Item) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.Total = i.Price.Mul(decimal.NewFromInt(int64(quantity)))
	i.UpdatedAt = time.Now()
	return nil
}

// StatusChange is an append-only entry in the order status history
type StatusChange struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    Status     `gorm:"type:varchar(20);not null" json:"status"`
	Note      string     `gorm:"type:varchar(500)" json:"note,omitempty"`
	ChangedBy *uuid.UUID `gorm:"type:uuid" json:"changed_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName returns the table name for GORM
func (StatusChange) TableName() string {
	return "order_status_history"
}

// Order represents a customer order aggregate root.
// The summary block is recomputed on every item or adjustment mutation.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Customer        CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_addr_"`
	Items           []Item          `gorm:"foreignKey:OrderID;references:ID"`
	Summary         Summary         `gorm:"embedded;embeddedPrefix:summary_"`
	Payment         PaymentInfo     `gorm:"embedded;embeddedPrefix:payment_"`
	Shipping        ShippingInfo    `gorm:"embedded;embeddedPrefix:shipping_"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	StatusHistory   []StatusChange  `gorm:"foreignKey:OrderID;references:ID"`
	Notes           string          `gorm:"type:text"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// New creates a new order in pending status. An order number is
// generated when none is supplied.
func New(orderNumber string, customer CustomerInfo, address ShippingAddress, method payment.Method) (*Order, error) {
	if customer.Name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if customer.Email == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if orderNumber == "" {
		orderNumber = shared.NewReferenceNumber(shared.OrderNumberPrefix)
	}
	if address.Country == "" {
		address.Country = "India"
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		Customer:          customer,
		ShippingAddress:   address,
		Items:             make([]Item, 0),
		Summary: Summary{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Discount: decimal.Zero,
			Total:    decimal.Zero,
			Currency: valueobject.DefaultCurrency,
		},
		Payment: PaymentInfo{
			Method: method,
			Status: payment.StatusPending,
		},
		Status: StatusPending,
	}
	o.appendStatusHistory(StatusPending, "Order created", nil)

	return o, nil
}

// AddItem adds a new line item to the order.
// Only allowed while the order is pending.
func (o *Order) AddItem(productID uuid.UUID, name, sku, image string, price valueobject.Money, quantity int) (*Item, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order, update quantity instead")
		}
	}

	item, err := NewItem(o.ID, productID, name, sku, image, price, quantity)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateSummary()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line item.
// Only allowed while the order is pending.
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-pending order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateSummary()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item from the order.
// Only allowed while the order is pending.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-pending order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateSummary()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetAdjustments sets the shipping, tax and discount amounts and
// recomputes the total. Only allowed while the order is pending.
func (o *Order) SetAdjustments(shipping, tax, discount valueobject.Money) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a non-pending order")
	}
	if shipping.IsNegative() || tax.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_ADJUSTMENT", "Adjustments cannot be negative")
	}

	o.Summary.Shipping = shipping.Amount()
	o.Summary.Tax = tax.Amount()
	o.Summary.Discount = discount.Amount()
	o.recalculateSummary()
	o.UpdatedAt = time.Now()

	return nil
}

// SetNotes sets the free-form order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// SetShippingInfo updates the fulfilment details
func (o *Order) SetShippingInfo(info ShippingInfo) {
	o.Shipping = info
	o.UpdatedAt = time.Now()
}

// ChangeStatus transitions the order to the target status and appends
// the change to the status history.
func (o *Order) ChangeStatus(target Status, note string, changedBy *uuid.UUID) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	if target == StatusShipped {
		o.Shipping.ShippedAt = &now
	}
	o.appendStatusHistory(target, note, changedBy)
	o.UpdatedAt = now

	return nil
}

// SyncPaymentStatus updates the embedded payment snapshot from the
// payment ledger. Called by the payment service after each transition.
func (o *Order) SyncPaymentStatus(status payment.Status, transactionID, gateway string) {
	o.Payment.Status = status
	if transactionID != "" {
		o.Payment.TransactionID = transactionID
	}
	if gateway != "" {
		o.Payment.Gateway = gateway
	}
	if status == payment.StatusPaid && o.Payment.PaidAt == nil {
		now := time.Now()
		o.Payment.PaidAt = &now
	}
	o.UpdatedAt = time.Now()
}

// recalculateSummary recomputes subtotal and total from the items and
// adjustments. Negative totals are not clamped.
func (o *Order) recalculateSummary() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Total)
	}
	o.Summary.Subtotal = subtotal
	o.Summary.Total = subtotal.
		Add(o.Summary.Shipping).
		Add(o.Summary.Tax).
		Sub(o.Summary.Discount)
}

func (o *Order) appendStatusHistory(status Status, note string, changedBy *uuid.UUID) {
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    status,
		Note:      note,
		ChangedBy: changedBy,
		CreatedAt: time.Now(),
	})
}

// GetTotalMoney returns the order total as Money
func (o *Order) GetTotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.Summary.Total, o.Summary.Currency)
	return m
}

// ItemCount returns the number of line items in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// IsPaid returns true if the embedded payment snapshot is paid
func (o *Order) IsPaid() bool {
	return o.Payment.Status == payment.StatusPaid
}

// IsTerminal returns true if the order is delivered or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// CanModify returns true if items and adjustments can still change
func (o *Order) CanModify() bool {
	return o.Status == StatusPending
}

// GetItem returns a line item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *Item {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}
