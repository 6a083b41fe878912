package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/appointment/service"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(as service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: as}
}

func (h *AppointmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/appointments", h.Create)
	router.GET("/appointments", h.List)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req domain.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	appointment, err := h.appointmentService.CreateAppointment(c.Request.Context(), businessID, req)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentOverlap) {
			c.JSON(http.StatusConflict, gin.H{"error": "APPOINTMENT_OVERLAP"})
			return
		}
		logger.Error("CreateAppointment: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	var req domain.ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	appointments, err := h.appointmentService.ListAppointments(c.Request.Context(), businessID, startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_RANGE"})
			return
		}
		logger.Error("ListAppointments: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}
