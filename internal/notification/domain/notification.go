package domain

import "time"

const (
	TypeSale        = "sale"
	TypeAppointment = "appointment"
)

type Notification struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

type ListNotificationsRequest struct {
	Limit int `form:"limit" binding:"omitempty,gt=0,max=20"`
}
