package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/report/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/report/repository/mocks"
)

func TestReportService_SalesSummary(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Range is extended to end of day", func(t *testing.T) {
		mockRepo := new(mocks.MockReportRepository)
		reportService := NewReportService(mockRepo)

		expected := &domain.SalesSummary{
			TotalIncome: decimal.NewFromInt(1500),
			TopProducts: []domain.TopProduct{{ProductID: "p1", Quantity: 3, Revenue: decimal.NewFromInt(1500)}},
		}
		endOfDay := time.Date(2026, 8, 31, 23, 59, 59, 999000000, time.UTC)
		mockRepo.On("SalesSummary", ctx, businessID, start, endOfDay).Return(expected, nil).Once()

		summary, err := reportService.SalesSummary(ctx, businessID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, expected, summary)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Inverted range is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockReportRepository)
		reportService := NewReportService(mockRepo)

		summary, err := reportService.SalesSummary(ctx, businessID, end, start)

		assert.Error(t, err)
		assert.Nil(t, summary)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
		mockRepo.AssertNotCalled(t, "SalesSummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
