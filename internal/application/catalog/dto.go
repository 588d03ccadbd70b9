package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vastravibe/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU               string                 `json:"sku" binding:"max=100"`
	Name              string                 `json:"name" binding:"required,min=1,max=200"`
	Description       string                 `json:"description" binding:"max=5000"`
	Brand             string                 `json:"brand" binding:"max=100"`
	CategoryID        uuid.UUID              `json:"category_id" binding:"required"`
	RegularPrice      decimal.Decimal        `json:"regular_price" binding:"required"`
	SalePrice         *decimal.Decimal       `json:"sale_price"`
	Stock             *int                   `json:"stock"`
	LowStockThreshold *int                   `json:"low_stock_threshold"`
	TrackQuantity     *bool                  `json:"track_quantity"`
	AllowBackorder    *bool                  `json:"allow_backorder"`
	Images            []string               `json:"images"`
	Specifications    catalog.Specifications `json:"specifications"`
	Tags              []string               `json:"tags"`
	Featured          *bool                  `json:"featured"`
	CreatedBy         *uuid.UUID             `json:"-"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name           *string                 `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string                 `json:"description" binding:"omitempty,max=5000"`
	Brand          *string                 `json:"brand" binding:"omitempty,max=100"`
	CategoryID     *uuid.UUID              `json:"category_id"`
	RegularPrice   *decimal.Decimal        `json:"regular_price"`
	SalePrice      *decimal.Decimal        `json:"sale_price"`
	Images         []string                `json:"images"`
	Specifications *catalog.Specifications `json:"specifications"`
	Tags           []string                `json:"tags"`
	Featured       *bool                   `json:"featured"`
	Status         *string                 `json:"status" binding:"omitempty,oneof=active inactive draft"`
}

// UpdateInventoryRequest adjusts or replaces a product's stock level
type UpdateInventoryRequest struct {
	Stock             *int  `json:"stock"`
	Adjustment        *int  `json:"adjustment"`
	LowStockThreshold *int  `json:"low_stock_threshold"`
	TrackQuantity     *bool `json:"track_quantity"`
	AllowBackorder    *bool `json:"allow_backorder"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID              `json:"id"`
	SKU               string                 `json:"sku"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	Brand             string                 `json:"brand,omitempty"`
	CategoryID        uuid.UUID              `json:"category_id"`
	RegularPrice      decimal.Decimal        `json:"regular_price"`
	SalePrice         *decimal.Decimal       `json:"sale_price,omitempty"`
	EffectivePrice    decimal.Decimal        `json:"effective_price"`
	Currency          string                 `json:"currency"`
	Stock             int                    `json:"stock"`
	LowStockThreshold int                    `json:"low_stock_threshold"`
	TrackQuantity     bool                   `json:"track_quantity"`
	AllowBackorder    bool                   `json:"allow_backorder"`
	LowStock          bool                   `json:"low_stock"`
	Images            []string               `json:"images,omitempty"`
	Specifications    catalog.Specifications `json:"specifications,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
	Status            string                 `json:"status"`
	Featured          bool                   `json:"featured"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	Version           int                    `json:"version"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive draft"`
	CategoryID *uuid.UUID `form:"category_id"`
	LowStock   bool       `form:"low_stock"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy     string     `form:"sort_by"`
	SortDir    string     `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name         string     `json:"name" binding:"required,min=1,max=100"`
	Description  string     `json:"description" binding:"max=2000"`
	ParentID     *uuid.UUID `json:"parent_id"`
	Slug         string     `json:"slug" binding:"max=150"`
	Image        string     `json:"image" binding:"max=500"`
	DisplayOrder *int       `json:"display_order"`
	CreatedBy    *uuid.UUID `json:"-"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description  *string    `json:"description" binding:"omitempty,max=2000"`
	ParentID     *uuid.UUID `json:"parent_id"`
	Slug         *string    `json:"slug" binding:"omitempty,max=150"`
	Image        *string    `json:"image" binding:"omitempty,max=500"`
	DisplayOrder *int       `json:"display_order"`
	Status       *string    `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	Slug         string     `json:"slug"`
	Image        string     `json:"image,omitempty"`
	DisplayOrder int        `json:"display_order"`
	ProductCount int        `json:"product_count"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=active inactive"`
	ParentID *uuid.UUID `form:"parent_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy   string     `form:"sort_by"`
	SortDir  string     `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse maps a product aggregate to its API shape
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Brand:             p.Brand,
		CategoryID:        p.CategoryID,
		RegularPrice:      p.Price.Regular,
		SalePrice:         p.Price.Sale,
		EffectivePrice:    p.Price.Effective(),
		Currency:          string(p.Price.Currency),
		Stock:             p.Inventory.Stock,
		LowStockThreshold: p.Inventory.LowStockThreshold,
		TrackQuantity:     p.Inventory.TrackQuantity,
		AllowBackorder:    p.Inventory.AllowBackorder,
		LowStock:          p.IsLowStock(),
		Images:            p.Images,
		Specifications:    p.Specifications,
		Tags:              p.Tags,
		Status:            string(p.Status),
		Featured:          p.Featured,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		Version:           p.Version,
	}
}

// ToCategoryResponse maps a category to its API shape
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		ParentID:     c.ParentID,
		Slug:         c.Slug,
		Image:        c.Image,
		DisplayOrder: c.DisplayOrder,
		ProductCount: c.ProductCount,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
