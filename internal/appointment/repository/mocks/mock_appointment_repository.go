package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateAppointment(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	if appointment != nil && args.Error(0) == nil {
		appointment.ID = "mock-appointment-id"
	}
	return args.Error(0)
}

func (m *MockAppointmentRepository) HasOverlap(ctx context.Context, businessID string, date time.Time, timeSlot string) (bool, error) {
	args := m.Called(ctx, businessID, date, timeSlot)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) ListByDateRange(ctx context.Context, businessID string, startDate, endDate time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, businessID, startDate, endDate)
	if appointments := args.Get(0); appointments != nil {
		return appointments.([]domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Appointment, error) {
	args := m.Called(ctx, businessID, limit)
	if appointments := args.Get(0); appointments != nil {
		return appointments.([]domain.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}
