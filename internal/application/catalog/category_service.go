package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vastravibe/backend/internal/domain/catalog"
	"github.com/vastravibe/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category
	var err error

	if req.ParentID != nil {
		parent, findErr := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if findErr != nil {
			if errors.Is(findErr, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, findErr
		}
		category, err = catalog.NewChildCategory(req.Name, req.Description, parent)
	} else {
		category, err = catalog.NewCategory(req.Name, req.Description)
	}
	if err != nil {
		return nil, err
	}

	if req.Slug != "" {
		if err := category.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}

	if existing, err := s.categoryRepo.FindBySlug(ctx, category.Slug); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.Image != "" {
		category.Image = req.Image
	}
	if req.DisplayOrder != nil {
		category.SetDisplayOrder(*req.DisplayOrder)
	}
	category.CreatedBy = req.CreatedBy

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List retrieves categories matching the filter, with the total count
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Search, filter.Page, filter.PageSize, filter.SortBy, filter.SortDir)
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ParentID != nil {
		domainFilter.Filters["parent_id"] = *filter.ParentID
	}

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, total, nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	description := category.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}

	if req.Slug != nil {
		if err := category.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
		if existing, err := s.categoryRepo.FindBySlug(ctx, category.Slug); err == nil && existing != nil && existing.ID != category.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
		} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	if req.ParentID != nil {
		if *req.ParentID == category.ID {
			return nil, shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
		}
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if req.Image != nil {
		category.Image = *req.Image
	}
	if req.DisplayOrder != nil {
		category.SetDisplayOrder(*req.DisplayOrder)
	}
	if req.Status != nil {
		switch catalog.CategoryStatus(*req.Status) {
		case catalog.CategoryStatusActive:
			category.Activate()
		case catalog.CategoryStatusInactive:
			category.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown category status")
		}
	}

	category.IncrementVersion()
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes a category. A category that still has active products
// or child categories cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return err
	}
	category.SetProductCount(int(count))
	if !category.CanDelete() {
		return shared.ErrCategoryNotEmpty
	}

	children, err := s.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("CATEGORY_HAS_CHILDREN", "Category still has child categories")
	}

	return s.categoryRepo.Delete(ctx, id)
}
