package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	productDomain "github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
	productRepo "github.com/Adal612Git/miNegocioApp-backend/internal/product/repository"
	productMocks "github.com/Adal612Git/miNegocioApp-backend/internal/product/repository/mocks"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
	saleMocks "github.com/Adal612Git/miNegocioApp-backend/internal/sale/repository/mocks"
)

// passthroughTxRunner executes the callback directly; the flag controls which
// failure path (abort vs. compensation) the service takes.
type passthroughTxRunner struct {
	transactional bool
}

func (r passthroughTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r passthroughTxRunner) Transactional() bool { return r.transactional }

const businessID = "64a000000000000000000001"

func activeProduct(id string, price int64, stock int) productDomain.Product {
	return productDomain.Product{
		ID:         id,
		BusinessID: businessID,
		Name:       "Producto " + id,
		Price:      decimal.NewFromInt(price),
		Stock:      stock,
		Category:   "producto",
		IsActive:   true,
	}
}

func TestSaleService_CreateSale(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful sale freezes prices and computes total", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: true})

		req := domain.CreateSaleRequest{
			Items: []domain.CreateSaleItemRequest{
				{ProductID: "prod1", Quantity: 2},
				{ProductID: "prod2", Quantity: 1},
			},
			AmountPaid: decimal.NewFromInt(2000),
		}
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1", "prod2"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10), activeProduct("prod2", 300, 5)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 2).Return(nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod2", 1).Return(nil).Once()
		mockSaleRepo.On("InsertSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(nil).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.NoError(t, err)
		assert.NotNil(t, sale)
		assert.Equal(t, "mock-sale-id", sale.ID)
		assert.Equal(t, businessID, sale.BusinessID)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(1300)), "total = 2*500 + 1*300, got %s", sale.Total)
		assert.Len(t, sale.Items, 2)
		assert.True(t, sale.Items[0].Price.Equal(decimal.NewFromInt(500)))
		assert.True(t, sale.Items[1].Price.Equal(decimal.NewFromInt(300)))
		mockSaleRepo.AssertExpectations(t)
		mockProducts.AssertExpectations(t)
	})

	t.Run("Unknown product aborts before any stock mutation", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: true})

		req := domain.CreateSaleRequest{
			Items:      []domain.CreateSaleItemRequest{{ProductID: "prod1", Quantity: 1}, {ProductID: "ghost", Quantity: 1}},
			AmountPaid: decimal.NewFromInt(1000),
		}
		// only one of the two ids resolves
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1", "ghost"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10)}, nil).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrProductNotFound)
		mockProducts.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockSaleRepo.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)
	})

	t.Run("Out of stock surfaces the failing product", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: true})

		req := domain.CreateSaleRequest{
			Items:      []domain.CreateSaleItemRequest{{ProductID: "prod1", Quantity: 2}},
			AmountPaid: decimal.NewFromInt(1000),
		}
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1"}).
			Return([]productDomain.Product{activeProduct("prod1", 300, 1)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 2).Return(productRepo.ErrInsufficientStock).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Contains(t, err.Error(), "prod1")
		// transactional path: the aborted transaction restores stock, the
		// service must not compensate by hand
		mockProducts.AssertNotCalled(t, "IncrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockSaleRepo.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)
	})

	t.Run("Fallback mode restores earlier decrements on out of stock", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: false})

		req := domain.CreateSaleRequest{
			Items: []domain.CreateSaleItemRequest{
				{ProductID: "prod1", Quantity: 2},
				{ProductID: "prod2", Quantity: 3},
			},
			AmountPaid: decimal.NewFromInt(5000),
		}
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1", "prod2"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10), activeProduct("prod2", 300, 1)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 2).Return(nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod2", 3).Return(productRepo.ErrInsufficientStock).Once()
		// restore uses a fresh context, the request one may be gone
		mockProducts.On("IncrementStock", context.Background(), businessID, "prod1", 2).Return(nil).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Contains(t, err.Error(), "prod2")
		mockProducts.AssertExpectations(t)
		mockSaleRepo.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)
	})

	t.Run("Fallback mode restores stock on insufficient payment", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: false})

		req := domain.CreateSaleRequest{
			Items:      []domain.CreateSaleItemRequest{{ProductID: "prod1", Quantity: 2}},
			AmountPaid: decimal.NewFromInt(999),
		}
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 2).Return(nil).Once()
		mockProducts.On("IncrementStock", context.Background(), businessID, "prod1", 2).Return(nil).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, sale)
		assert.ErrorIs(t, err, ErrInsufficientPayment)
		mockProducts.AssertExpectations(t)
		mockSaleRepo.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)
	})

	t.Run("Insert failure propagates as infrastructure error", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: true})

		req := domain.CreateSaleRequest{
			Items:      []domain.CreateSaleItemRequest{{ProductID: "prod1", Quantity: 1}},
			AmountPaid: decimal.NewFromInt(500),
		}
		repoErr := errors.New("mongo: connection reset")
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 1).Return(nil).Once()
		mockSaleRepo.On("InsertSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(repoErr).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, sale)
		assert.NotErrorIs(t, err, ErrOutOfStock)
		assert.NotErrorIs(t, err, ErrInsufficientPayment)
		assert.Contains(t, err.Error(), repoErr.Error())
		mockSaleRepo.AssertExpectations(t)
	})

	t.Run("Duplicate product ids resolve once but decrement per line", func(t *testing.T) {
		mockSaleRepo := new(saleMocks.MockSaleRepository)
		mockProducts := new(productMocks.MockProductRepository)
		saleService := NewSaleService(mockSaleRepo, mockProducts, passthroughTxRunner{transactional: true})

		req := domain.CreateSaleRequest{
			Items: []domain.CreateSaleItemRequest{
				{ProductID: "prod1", Quantity: 1},
				{ProductID: "prod1", Quantity: 2},
			},
			AmountPaid: decimal.NewFromInt(2000),
		}
		mockProducts.On("FindActiveByIDs", ctx, businessID, []string{"prod1"}).
			Return([]productDomain.Product{activeProduct("prod1", 500, 10)}, nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 1).Return(nil).Once()
		mockProducts.On("DecrementStock", ctx, businessID, "prod1", 2).Return(nil).Once()
		mockSaleRepo.On("InsertSale", ctx, mock.AnythingOfType("*domain.Sale")).Return(nil).Once()

		sale, err := saleService.CreateSale(ctx, businessID, req)

		assert.NoError(t, err)
		assert.NotNil(t, sale)
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(1500)))
		mockProducts.AssertExpectations(t)
	})
}

func TestCalculateChange(t *testing.T) {
	t.Run("Returns difference when payment covers total", func(t *testing.T) {
		change, err := CalculateChange(decimal.NewFromInt(1000), decimal.NewFromInt(2000))
		assert.NoError(t, err)
		assert.True(t, change.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("Exact payment yields zero change", func(t *testing.T) {
		change, err := CalculateChange(decimal.NewFromInt(1000), decimal.NewFromInt(1000))
		assert.NoError(t, err)
		assert.True(t, change.IsZero())
	})

	t.Run("Insufficient payment fails", func(t *testing.T) {
		_, err := CalculateChange(decimal.NewFromInt(1000), decimal.NewFromInt(999))
		assert.ErrorIs(t, err, ErrInsufficientPayment)
	})

	t.Run("Decimal amounts do not drift", func(t *testing.T) {
		total, _ := decimal.NewFromString("10.10")
		paid, _ := decimal.NewFromString("20.30")
		change, err := CalculateChange(total, paid)
		assert.NoError(t, err)
		expected, _ := decimal.NewFromString("10.20")
		assert.True(t, change.Equal(expected), "got %s", change)
	})
}
