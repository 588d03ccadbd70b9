package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/catalog"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

// ProductService handles product-related business operations. Creating
// or recategorizing a product keeps the denormalized product count on
// the owning category in step.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product in the given category
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if req.SKU != "" {
		exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}

	category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	regular, err := valueobject.NewMoney(req.RegularPrice, valueobject.INR)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, category.ID, regular)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Brand != "" {
		if err := product.Update(req.Name, req.Description, req.Brand); err != nil {
			return nil, err
		}
	}
	if req.SalePrice != nil {
		sale := valueobject.NewMoneyINR(*req.SalePrice)
		if err := product.SetPrice(regular, &sale); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil || req.TrackQuantity != nil || req.AllowBackorder != nil {
		threshold := product.Inventory.LowStockThreshold
		track := product.Inventory.TrackQuantity
		backorder := product.Inventory.AllowBackorder
		if req.LowStockThreshold != nil {
			threshold = *req.LowStockThreshold
		}
		if req.TrackQuantity != nil {
			track = *req.TrackQuantity
		}
		if req.AllowBackorder != nil {
			backorder = *req.AllowBackorder
		}
		if err := product.ConfigureInventory(threshold, track, backorder); err != nil {
			return nil, err
		}
	}
	if len(req.Images) > 0 {
		product.SetImages(req.Images)
	}
	if len(req.Specifications) > 0 {
		product.SetSpecifications(req.Specifications)
	}
	if len(req.Tags) > 0 {
		product.SetTags(req.Tags)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}
	product.CreatedBy = req.CreatedBy

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if err := s.refreshCategoryCount(ctx, category.ID); err != nil {
		return nil, err
	}

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products matching the filter, with the total count
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Search, filter.Page, filter.PageSize, filter.SortBy, filter.SortDir)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *ToProductResponse(&products[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldCategoryID := product.CategoryID

	name := product.Name
	description := product.Description
	brand := product.Brand
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Brand != nil {
		brand = *req.Brand
	}
	if err := product.Update(name, description, brand); err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != oldCategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		if err := product.SetCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if req.RegularPrice != nil || req.SalePrice != nil {
		regular := valueobject.NewMoneyINR(product.Price.Regular)
		if req.RegularPrice != nil {
			regular = valueobject.NewMoneyINR(*req.RegularPrice)
		}
		var sale *valueobject.Money
		if req.SalePrice != nil {
			m := valueobject.NewMoneyINR(*req.SalePrice)
			sale = &m
		} else if product.Price.Sale != nil {
			m := valueobject.NewMoneyINR(*product.Price.Sale)
			sale = &m
		}
		if err := product.SetPrice(regular, sale); err != nil {
			return nil, err
		}
	}

	if req.Images != nil {
		product.SetImages(req.Images)
	}
	if req.Specifications != nil {
		product.SetSpecifications(*req.Specifications)
	}
	if req.Tags != nil {
		product.SetTags(req.Tags)
	}
	if req.Featured != nil {
		product.SetFeatured(*req.Featured)
	}
	if req.Status != nil {
		if err := product.ChangeStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	product.IncrementVersion()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if err := s.refreshCategoryCount(ctx, oldCategoryID); err != nil {
		return nil, err
	}
	if product.CategoryID != oldCategoryID {
		if err := s.refreshCategoryCount(ctx, product.CategoryID); err != nil {
			return nil, err
		}
	}

	return ToProductResponse(product), nil
}

// UpdateInventory replaces or adjusts the stock level of a product
func (s *ProductService) UpdateInventory(ctx context.Context, id uuid.UUID, req UpdateInventoryRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stock != nil && req.Adjustment != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Provide either stock or adjustment, not both")
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.Adjustment != nil {
		if err := product.AdjustStock(*req.Adjustment); err != nil {
			return nil, err
		}
	}
	if req.LowStockThreshold != nil || req.TrackQuantity != nil || req.AllowBackorder != nil {
		threshold := product.Inventory.LowStockThreshold
		track := product.Inventory.TrackQuantity
		backorder := product.Inventory.AllowBackorder
		if req.LowStockThreshold != nil {
			threshold = *req.LowStockThreshold
		}
		if req.TrackQuantity != nil {
			track = *req.TrackQuantity
		}
		if req.AllowBackorder != nil {
			backorder = *req.AllowBackorder
		}
		if err := product.ConfigureInventory(threshold, track, backorder); err != nil {
			return nil, err
		}
	}

	product.IncrementVersion()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product and refreshes its category count
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.refreshCategoryCount(ctx, product.CategoryID)
}

// refreshCategoryCount recomputes the active product count denormalized
// on the category row
func (s *ProductService) refreshCategoryCount(ctx context.Context, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	count, err := s.productRepo.CountActiveByCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	category.SetProductCount(int(count))
	return s.categoryRepo.Save(ctx, category)
}

func toDomainFilter(search string, page, pageSize int, sortBy, sortDir string) shared.Filter {
	filter := shared.DefaultFilter()
	filter.Search = search
	if page > 0 && pageSize > 0 {
		filter.Page = page
		filter.PageSize = pageSize
	}
	if sortBy != "" {
		filter.OrderBy = sortBy
	}
	if sortDir != "" {
		filter.OrderDir = sortDir
	}
	return filter
}
