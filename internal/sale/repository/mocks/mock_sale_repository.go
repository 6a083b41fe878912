package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
)

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) InsertSale(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	if sale != nil && args.Error(0) == nil {
		sale.ID = "mock-sale-id"
	}
	return args.Error(0)
}

func (m *MockSaleRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Sale, error) {
	args := m.Called(ctx, businessID, limit)
	if sales := args.Get(0); sales != nil {
		return sales.([]domain.Sale), args.Error(1)
	}
	return nil, args.Error(1)
}
