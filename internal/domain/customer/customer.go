package customer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/shared"
)

// Status represents the status of a customer account
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer represents a storefront customer. Orders keep their own
// snapshot of the customer contact details; this record is the live
// profile the dashboard counts.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(254);not null;uniqueIndex"`
	Phone       string `gorm:"type:varchar(20)"`
	Status      Status `gorm:"type:varchar(20);not null;default:'active';index"`
	LastOrderAt *time.Time
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// New creates a new active customer
func New(name, email, phone string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Status:            StatusActive,
	}, nil
}

// Update updates the customer's contact details
func (c *Customer) Update(name, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// RecordOrder marks the time of the customer's most recent order
func (c *Customer) RecordOrder(at time.Time) {
	c.LastOrderAt = &at
	c.UpdatedAt = time.Now()
}

// Activate marks the customer active
func (c *Customer) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Repository defines persistence operations for customers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, c *Customer) error
}
