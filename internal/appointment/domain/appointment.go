package domain

import "time"

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	ID         string            `json:"id"`
	BusinessID string            `json:"business_id"`
	Date       time.Time         `json:"date"`
	Time       string            `json:"time"`
	Notes      string            `json:"notes,omitempty"`
	Status     AppointmentStatus `json:"status"`
}

type CreateAppointmentRequest struct {
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Time   string `json:"time" binding:"required,min=3,max=10"`
	Notes  string `json:"notes" binding:"max=500"`
	Status string `json:"status" binding:"omitempty,oneof=scheduled cancelled completed"`
}

type ListAppointmentsRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}
