package service

import (
	"context"
	"errors"
	"time"

	"github.com/Adal612Git/miNegocioApp-backend/internal/report/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/report/repository"
)

var ErrInvalidDateRange = errors.New("end date must not be before start date")

type ReportService interface {
	SalesSummary(ctx context.Context, businessID string, startDate, endDate time.Time) (*domain.SalesSummary, error)
}

type reportServiceImpl struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportServiceImpl{repo: repo}
}

func (s *reportServiceImpl) SalesSummary(ctx context.Context, businessID string, startDate, endDate time.Time) (*domain.SalesSummary, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}

	// the range is inclusive of the whole end day
	endOfDay := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 999000000, endDate.Location())

	return s.repo.SalesSummary(ctx, businessID, startDate, endOfDay)
}
