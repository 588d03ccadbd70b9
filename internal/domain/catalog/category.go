package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/shared"
)

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category represents a product category. Categories form a tree via
// ParentID. ProductCount is denormalized and maintained by the catalog
// service whenever products are created, moved or change status.
type Category struct {
	shared.BaseAggregateRoot
	Name         string         `gorm:"type:varchar(100);not null"`
	Description  string         `gorm:"type:text"`
	ParentID     *uuid.UUID     `gorm:"type:uuid;index"`
	Slug         string         `gorm:"type:varchar(150);uniqueIndex"`
	Image        string         `gorm:"type:varchar(500)"`
	DisplayOrder int            `gorm:"not null;default:0"`
	ProductCount int            `gorm:"not null;default:0"`
	Status       CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
	CreatedBy    *uuid.UUID     `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new root category
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Slug:              Slugify(name),
		Status:            CategoryStatusActive,
	}, nil
}

// NewChildCategory creates a category under the given parent
func NewChildCategory(name, description string, parent *Category) (*Category, error) {
	category, err := NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}
	parentID := parent.ID
	category.ParentID = &parentID
	return category, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}

// SetSlug overrides the generated slug
func (c *Category) SetSlug(slug string) error {
	slug = Slugify(slug)
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Slug cannot be empty")
	}
	c.Slug = slug
	c.UpdatedAt = time.Now()
	return nil
}

// SetParent moves the category under a new parent. Passing nil makes
// it a root category. Self-parenting is rejected; deeper cycle checks
// belong to the service, which has repository access.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	return nil
}

// SetDisplayOrder sets the ordering hint for listings
func (c *Category) SetDisplayOrder(order int) {
	c.DisplayOrder = order
	c.UpdatedAt = time.Now()
}

// SetProductCount replaces the denormalized active-product count
func (c *Category) SetProductCount(count int) {
	if count < 0 {
		count = 0
	}
	c.ProductCount = count
	c.UpdatedAt = time.Now()
}

// CanDelete returns true when no products reference the category
func (c *Category) CanDelete() bool {
	return c.ProductCount == 0
}

// Activate marks the category active
func (c *Category) Activate() {
	c.Status = CategoryStatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate marks the category inactive
func (c *Category) Deactivate() {
	c.Status = CategoryStatusInactive
	c.UpdatedAt = time.Now()
}

// Slugify converts a name to a URL-safe slug
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
