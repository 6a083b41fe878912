package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/report/domain"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesSummary(ctx context.Context, businessID string, startDate, endDate time.Time) (*domain.SalesSummary, error) {
	args := m.Called(ctx, businessID, startDate, endDate)
	if summary := args.Get(0); summary != nil {
		return summary.(*domain.SalesSummary), args.Error(1)
	}
	return nil, args.Error(1)
}
