package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	appointmentdomain "github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/notification/domain"
	saledomain "github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
)

const (
	DefaultLimit = 6
	MaxLimit     = 20
)

// SaleFeed and AppointmentFeed are the slices of the sale and appointment
// repositories the notification service needs. Both are satisfied by the
// mongo repositories in their respective modules.
type SaleFeed interface {
	ListRecent(ctx context.Context, businessID string, limit int) ([]saledomain.Sale, error)
}

type AppointmentFeed interface {
	ListRecent(ctx context.Context, businessID string, limit int) ([]appointmentdomain.Appointment, error)
}

type NotificationService interface {
	ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Notification, error)
}

type notificationServiceImpl struct {
	sales        SaleFeed
	appointments AppointmentFeed
}

func NewNotificationService(sales SaleFeed, appointments AppointmentFeed) NotificationService {
	return &notificationServiceImpl{sales: sales, appointments: appointments}
}

func (s *notificationServiceImpl) ListRecent(ctx context.Context, businessID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var (
		wg              sync.WaitGroup
		sales           []saledomain.Sale
		appointments    []appointmentdomain.Appointment
		salesErr        error
		appointmentsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sales, salesErr = s.sales.ListRecent(ctx, businessID, limit)
	}()
	go func() {
		defer wg.Done()
		appointments, appointmentsErr = s.appointments.ListRecent(ctx, businessID, limit)
	}()
	wg.Wait()

	if salesErr != nil {
		return nil, salesErr
	}
	if appointmentsErr != nil {
		return nil, appointmentsErr
	}

	notifications := make([]domain.Notification, 0, len(sales)+len(appointments))
	for _, sale := range sales {
		notifications = append(notifications, domain.Notification{
			ID:      sale.ID,
			Type:    domain.TypeSale,
			Message: fmt.Sprintf("Venta registrada por %s", formatCurrency(sale.Total)),
			Date:    sale.Date,
		})
	}
	for _, appointment := range appointments {
		notifications = append(notifications, domain.Notification{
			ID:      appointment.ID,
			Type:    domain.TypeAppointment,
			Message: appointmentMessage(appointment),
			Date:    appointment.Date,
		})
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Date.After(notifications[j].Date)
	})
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}
	return notifications, nil
}

// formatCurrency renders amounts the way the cash-register UI shows MXN,
// e.g. "$350.00".
func formatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func appointmentMessage(appointment appointmentdomain.Appointment) string {
	message := "Cita programada"
	if appointment.Notes != "" {
		message = appointment.Notes
	}
	if appointment.Time != "" {
		message += " - " + appointment.Time
	}
	return message
}
