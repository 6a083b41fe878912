package service

import (
	"context"
	"errors"
	"time"

	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/repository"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

var (
	ErrAppointmentOverlap = errors.New("an appointment already exists at this date and time")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)

type AppointmentService interface {
	CreateAppointment(ctx context.Context, businessID string, req domain.CreateAppointmentRequest) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, businessID string, startDate, endDate time.Time) ([]domain.Appointment, error)
}

type appointmentServiceImpl struct {
	repo repository.AppointmentRepository
}

func NewAppointmentService(repo repository.AppointmentRepository) AppointmentService {
	return &appointmentServiceImpl{repo: repo}
}

func (s *appointmentServiceImpl) CreateAppointment(ctx context.Context, businessID string, req domain.CreateAppointmentRequest) (*domain.Appointment, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, businessID, date, req.Time)
	if err != nil {
		logger.Error("Svc.CreateAppointment: overlap check failed", err)
		return nil, err
	}
	if hasOverlap {
		return nil, ErrAppointmentOverlap
	}

	status := domain.StatusScheduled
	if req.Status != "" {
		status = domain.AppointmentStatus(req.Status)
	}

	appointment := &domain.Appointment{
		BusinessID: businessID,
		Date:       date,
		Time:       req.Time,
		Notes:      req.Notes,
		Status:     status,
	}
	if err := s.repo.CreateAppointment(ctx, appointment); err != nil {
		logger.Error("Svc.CreateAppointment: repo error", err)
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentServiceImpl) ListAppointments(ctx context.Context, businessID string, startDate, endDate time.Time) ([]domain.Appointment, error) {
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.ListByDateRange(ctx, businessID, startDate, endDate)
}
