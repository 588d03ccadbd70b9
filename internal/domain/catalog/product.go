package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDraft:
		return true
	}
	return false
}

// Price holds the regular and optional sale price of a product
type Price struct {
	Regular  decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0" json:"regular"`
	Sale     *decimal.Decimal     `gorm:"type:decimal(18,2)" json:"sale,omitempty"`
	Currency valueobject.Currency `gorm:"type:varchar(3);not null;default:'INR'" json:"currency"`
}

// Effective returns the sale price when set, otherwise the regular price
func (p Price) Effective() decimal.Decimal {
	if p.Sale != nil {
		return *p.Sale
	}
	return p.Regular
}

// Inventory holds the stock tracking settings of a product
type Inventory struct {
	Stock             int  `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int  `gorm:"not null;default:10" json:"low_stock_threshold"`
	TrackQuantity     bool `gorm:"not null;default:true" json:"track_quantity"`
	AllowBackorder    bool `gorm:"not null;default:false" json:"allow_backorder"`
}

// Product represents a product in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	SKU            string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name           string         `gorm:"type:varchar(200);not null"`
	Description    string         `gorm:"type:text"`
	Brand          string         `gorm:"type:varchar(100)"`
	CategoryID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Price          Price          `gorm:"embedded;embeddedPrefix:price_"`
	Inventory      Inventory      `gorm:"embedded;embeddedPrefix:inventory_"`
	Images         []string       `gorm:"type:text;serializer:json"`
	Specifications Specifications `gorm:"type:jsonb"`
	Tags           []string       `gorm:"type:text;serializer:json"`
	Status         ProductStatus  `gorm:"type:varchar(20);not null;default:'active';index"`
	Featured       bool           `gorm:"not null;default:false"`
	CreatedBy      *uuid.UUID     `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. A SKU is generated when none is
// supplied.
func NewProduct(sku, name string, categoryID uuid.UUID, regularPrice valueobject.Money) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if regularPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if sku == "" {
		sku = shared.NewReferenceNumber(shared.ProductSKUPrefix)
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		CategoryID:        categoryID,
		Price: Price{
			Regular:  regularPrice.Amount(),
			Currency: regularPrice.Currency(),
		},
		Inventory: Inventory{
			Stock:             0,
			LowStockThreshold: 10,
			TrackQuantity:     true,
			AllowBackorder:    false,
		},
		Status: ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, brand string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Brand = brand
	p.UpdatedAt = time.Now()

	return nil
}

// SetCategory moves the product to another category
func (p *Product) SetCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice sets the regular price and optional sale price.
// A sale price must not exceed the regular price.
func (p *Product) SetPrice(regular valueobject.Money, sale *valueobject.Money) error {
	if regular.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Regular price cannot be negative")
	}
	if sale != nil {
		if sale.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
		}
		if sale.Amount().GreaterThan(regular.Amount()) {
			return shared.NewDomainError("INVALID_PRICE", "Sale price cannot exceed regular price")
		}
	}

	p.Price.Regular = regular.Amount()
	p.Price.Currency = regular.Currency()
	if sale != nil {
		amount := sale.Amount()
		p.Price.Sale = &amount
	} else {
		p.Price.Sale = nil
	}
	p.UpdatedAt = time.Now()

	return nil
}

// SetStock replaces the stock count
func (p *Product) SetStock(stock int) error {
	if stock < 0 && !p.Inventory.AllowBackorder {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative unless backorder is allowed")
	}
	p.Inventory.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a delta to the stock count. A resulting negative
// stock is rejected unless backorder is allowed.
func (p *Product) AdjustStock(delta int) error {
	next := p.Inventory.Stock + delta
	if next < 0 && !p.Inventory.AllowBackorder {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Stock adjustment would go below zero")
	}
	p.Inventory.Stock = next
	p.UpdatedAt = time.Now()
	return nil
}

// ConfigureInventory updates the inventory tracking settings
func (p *Product) ConfigureInventory(lowStockThreshold int, trackQuantity, allowBackorder bool) error {
	if lowStockThreshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	p.Inventory.LowStockThreshold = lowStockThreshold
	p.Inventory.TrackQuantity = trackQuantity
	p.Inventory.AllowBackorder = allowBackorder
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock returns true for an active product whose stock is at or
// below its configured threshold
func (p *Product) IsLowStock() bool {
	return p.Status == ProductStatusActive && p.Inventory.Stock <= p.Inventory.LowStockThreshold
}

// SetSpecifications replaces the specification entries
func (p *Product) SetSpecifications(specs Specifications) {
	p.Specifications = specs
	p.UpdatedAt = time.Now()
}

// SetTags replaces the product tags
func (p *Product) SetTags(tags []string) {
	p.Tags = tags
	p.UpdatedAt = time.Now()
}

// SetImages replaces the product image URLs
func (p *Product) SetImages(images []string) {
	p.Images = images
	p.UpdatedAt = time.Now()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
}

// ChangeStatus moves the product between active, inactive and draft
func (p *Product) ChangeStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
