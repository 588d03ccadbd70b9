package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vastravibe/backend/internal/domain/catalog"
	"github.com/vastravibe/backend/internal/domain/shared"
	"github.com/vastravibe/backend/internal/domain/shared/valueobject"
)

func newTestCategory(t *testing.T, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, "")
	require.NoError(t, err)
	return category
}

func newTestProduct(t *testing.T, categoryID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("", "Banarasi Silk Saree", categoryID,
		valueobject.NewMoneyINRFromFloat(4999))
	require.NoError(t, err)
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product and refreshes category count", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		category := newTestCategory(t, "Sarees")

		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		productRepo.On("CountActiveByCategory", mock.Anything, category.ID).Return(int64(1), nil)
		categoryRepo.On("Save", mock.Anything, category).Return(nil)

		stock := 25
		resp, err := svc.Create(context.Background(), CreateProductRequest{
			Name:         "Banarasi Silk Saree",
			CategoryID:   category.ID,
			RegularPrice: decimal.NewFromInt(4999),
			Stock:        &stock,
		})

		require.NoError(t, err)
		assert.Equal(t, "Banarasi Silk Saree", resp.Name)
		assert.Contains(t, resp.SKU, "PROD-")
		assert.Equal(t, 25, resp.Stock)
		assert.Equal(t, "active", resp.Status)
		assert.Equal(t, 1, category.ProductCount)
		productRepo.AssertExpectations(t)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		productRepo.On("ExistsBySKU", mock.Anything, "VV-SAREE-001").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateProductRequest{
			SKU:          "VV-SAREE-001",
			Name:         "Saree",
			CategoryID:   uuid.New(),
			RegularPrice: decimal.NewFromInt(100),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		categoryID := uuid.New()
		categoryRepo.On("FindByID", mock.Anything, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(context.Background(), CreateProductRequest{
			Name:         "Saree",
			CategoryID:   categoryID,
			RegularPrice: decimal.NewFromInt(100),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("moving category refreshes both counts", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		oldCategory := newTestCategory(t, "Sarees")
		newCategory := newTestCategory(t, "Lehengas")
		product := newTestProduct(t, oldCategory.ID)

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		categoryRepo.On("FindByID", mock.Anything, newCategory.ID).Return(newCategory, nil)
		categoryRepo.On("FindByID", mock.Anything, oldCategory.ID).Return(oldCategory, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)
		productRepo.On("CountActiveByCategory", mock.Anything, oldCategory.ID).Return(int64(0), nil)
		productRepo.On("CountActiveByCategory", mock.Anything, newCategory.ID).Return(int64(1), nil)
		categoryRepo.On("Save", mock.Anything, oldCategory).Return(nil)
		categoryRepo.On("Save", mock.Anything, newCategory).Return(nil)

		newID := newCategory.ID
		resp, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
			CategoryID: &newID,
		})

		require.NoError(t, err)
		assert.Equal(t, newCategory.ID, resp.CategoryID)
		assert.Equal(t, 0, oldCategory.ProductCount)
		assert.Equal(t, 1, newCategory.ProductCount)
	})

	t.Run("rejects sale price above regular", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		product := newTestProduct(t, uuid.New())
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		sale := decimal.NewFromInt(9999)
		_, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
			SalePrice: &sale,
		})

		assert.Error(t, err)
	})
}

func TestProductService_UpdateInventory(t *testing.T) {
	t.Run("adjusts stock by delta", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		product := newTestProduct(t, uuid.New())
		require.NoError(t, product.SetStock(10))

		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		delta := -4
		resp, err := svc.UpdateInventory(context.Background(), product.ID, UpdateInventoryRequest{
			Adjustment: &delta,
		})

		require.NoError(t, err)
		assert.Equal(t, 6, resp.Stock)
	})

	t.Run("rejects stock and adjustment together", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		svc := NewProductService(productRepo, categoryRepo)

		product := newTestProduct(t, uuid.New())
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		stock := 5
		delta := 3
		_, err := svc.UpdateInventory(context.Background(), product.ID, UpdateInventoryRequest{
			Stock:      &stock,
			Adjustment: &delta,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}

func TestProductService_Delete(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := NewProductService(productRepo, categoryRepo)

	category := newTestCategory(t, "Sarees")
	product := newTestProduct(t, category.ID)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)
	categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
	productRepo.On("CountActiveByCategory", mock.Anything, category.ID).Return(int64(0), nil)
	categoryRepo.On("Save", mock.Anything, category).Return(nil)

	err := svc.Delete(context.Background(), product.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, category.ProductCount)
	productRepo.AssertExpectations(t)
}

func TestProductService_List(t *testing.T) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	svc := NewProductService(productRepo, categoryRepo)

	product := newTestProduct(t, uuid.New())

	productRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["low_stock"] == true && f.Filters["status"] == "active"
	})).Return([]catalog.Product{*product}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	items, total, err := svc.List(context.Background(), ProductListFilter{
		Status:   "active",
		LowStock: true,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, product.SKU, items[0].SKU)
}
