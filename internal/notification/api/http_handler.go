package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adal612Git/miNegocioApp-backend/internal/notification/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/notification/service"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(ns service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", h.ListRecent)
}

func (h *NotificationHandler) ListRecent(c *gin.Context) {
	var req domain.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Límite inválido"})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	notifications, err := h.notificationService.ListRecent(c.Request.Context(), businessID, req.Limit)
	if err != nil {
		logger.Error("ListRecent: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
