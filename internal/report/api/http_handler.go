package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
	"github.com/Adal612Git/miNegocioApp-backend/internal/report/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/report/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(rs service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/sales", h.SalesSummary)
}

func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var req domain.SalesSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida"})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	summary, err := h.reportService.SalesSummary(c.Request.Context(), businessID, startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida"})
			return
		}
		logger.Error("SalesSummary: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
