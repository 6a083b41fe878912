package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = "mock-product-id"
		product.IsActive = true
	}
	return args.Error(0)
}

func (m *MockProductRepository) ListActiveProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	args := m.Called(ctx, businessID)
	if products := args.Get(0); products != nil {
		return products.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, businessID, productID, req)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) SetStock(ctx context.Context, businessID, productID string, stock int) (*domain.Product, error) {
	args := m.Called(ctx, businessID, productID, stock)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, businessID, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) FindActiveByIDs(ctx context.Context, businessID string, productIDs []string) ([]domain.Product, error) {
	args := m.Called(ctx, businessID, productIDs)
	if products := args.Get(0); products != nil {
		return products.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, businessID, productID string, quantity int) error {
	args := m.Called(ctx, businessID, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, businessID, productID string, quantity int) error {
	args := m.Called(ctx, businessID, productID, quantity)
	return args.Error(0)
}
