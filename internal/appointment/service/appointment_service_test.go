package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/repository/mocks"
)

func TestAppointmentService_CreateAppointment(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Successful creation defaults to scheduled", func(t *testing.T) {
		mockRepo := new(mocks.MockAppointmentRepository)
		appointmentService := NewAppointmentService(mockRepo)

		req := domain.CreateAppointmentRequest{Date: "2026-09-15", Time: "10:30", Notes: "Corte de cabello"}
		mockRepo.On("HasOverlap", ctx, businessID, date, "10:30").Return(false, nil).Once()
		mockRepo.On("CreateAppointment", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.BusinessID == businessID && a.Time == "10:30" && a.Status == domain.StatusScheduled
		})).Return(nil).Once()

		appointment, err := appointmentService.CreateAppointment(ctx, businessID, req)

		assert.NoError(t, err)
		assert.NotNil(t, appointment)
		assert.Equal(t, "mock-appointment-id", appointment.ID)
		assert.Equal(t, date, appointment.Date)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Overlapping slot is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockAppointmentRepository)
		appointmentService := NewAppointmentService(mockRepo)

		req := domain.CreateAppointmentRequest{Date: "2026-09-15", Time: "10:30"}
		mockRepo.On("HasOverlap", ctx, businessID, date, "10:30").Return(true, nil).Once()

		appointment, err := appointmentService.CreateAppointment(ctx, businessID, req)

		assert.Error(t, err)
		assert.Nil(t, appointment)
		assert.ErrorIs(t, err, ErrAppointmentOverlap)
		mockRepo.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	})
}

func TestAppointmentService_ListAppointments(t *testing.T) {
	ctx := context.TODO()
	businessID := "64a000000000000000000001"
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	t.Run("Returns range from repository", func(t *testing.T) {
		mockRepo := new(mocks.MockAppointmentRepository)
		appointmentService := NewAppointmentService(mockRepo)

		expected := []domain.Appointment{{ID: "a1", BusinessID: businessID, Date: start, Time: "09:00", Status: domain.StatusScheduled}}
		mockRepo.On("ListByDateRange", ctx, businessID, start, end).Return(expected, nil).Once()

		appointments, err := appointmentService.ListAppointments(ctx, businessID, start, end)

		assert.NoError(t, err)
		assert.Equal(t, expected, appointments)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Inverted range is rejected", func(t *testing.T) {
		mockRepo := new(mocks.MockAppointmentRepository)
		appointmentService := NewAppointmentService(mockRepo)

		appointments, err := appointmentService.ListAppointments(ctx, businessID, end, start)

		assert.Error(t, err)
		assert.Nil(t, appointments)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
		mockRepo.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
