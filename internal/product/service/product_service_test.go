package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/repository/mocks"
)

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"

	t.Run("Successful creation trims the name and tags the tenant", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		req := domain.CreateProductRequest{
			Name:     "  Corte de caballero ",
			Price:    decimal.NewFromInt(150),
			Stock:    10,
			Category: "corte",
		}
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := productService.CreateProduct(ctx, businessID, req)

		assert.NoError(t, err)
		assert.Equal(t, "mock-product-id", product.ID)
		assert.Equal(t, businessID, product.BusinessID)
		assert.Equal(t, "Corte de caballero", product.Name)
		assert.True(t, product.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown category is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		req := domain.CreateProductRequest{Name: "Algo", Price: decimal.NewFromInt(10), Category: "electronica"}

		product, err := productService.CreateProduct(ctx, businessID, req)

		assert.ErrorIs(t, err, ErrInvalidCategory)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Category comparison ignores case and padding", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		req := domain.CreateProductRequest{Name: "Spa facial", Price: decimal.NewFromInt(400), Category: " SPA "}
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()

		product, err := productService.CreateProduct(ctx, businessID, req)

		assert.NoError(t, err)
		assert.NotNil(t, product)
	})

	t.Run("Negative price is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		req := domain.CreateProductRequest{Name: "Algo", Price: decimal.NewFromInt(-1), Category: "producto"}

		product, err := productService.CreateProduct(ctx, businessID, req)

		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Nil(t, product)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"
	productID := "64b000000000000000000001"

	t.Run("Partial update passes through to the repository", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		newName := "Tinte premium"
		req := domain.UpdateProductRequest{Name: &newName}
		updated := &domain.Product{ID: productID, Name: newName}
		mockRepo.On("UpdateProduct", ctx, businessID, productID, req).Return(updated, nil).Once()

		product, err := productService.UpdateProduct(ctx, businessID, productID, req)

		assert.NoError(t, err)
		assert.Equal(t, updated, product)
	})

	t.Run("Invalid category on update is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		badCategory := "muebles"
		req := domain.UpdateProductRequest{Category: &badCategory}

		product, err := productService.UpdateProduct(ctx, businessID, productID, req)

		assert.ErrorIs(t, err, ErrInvalidCategory)
		assert.Nil(t, product)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Negative price on update is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		productService := NewProductService(mockRepo)

		badPrice := decimal.NewFromInt(-5)
		req := domain.UpdateProductRequest{Price: &badPrice}

		product, err := productService.UpdateProduct(ctx, businessID, productID, req)

		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Nil(t, product)
	})
}

func TestProductService_RemoveProduct(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"
	productID := "64b000000000000000000001"

	mockRepo := new(mocks.MockProductRepository)
	productService := NewProductService(mockRepo)

	deactivated := &domain.Product{ID: productID, IsActive: false}
	mockRepo.On("DeactivateProduct", ctx, businessID, productID).Return(deactivated, nil).Once()

	product, err := productService.RemoveProduct(ctx, businessID, productID)

	assert.NoError(t, err)
	assert.False(t, product.IsActive)
	mockRepo.AssertExpectations(t)
}
