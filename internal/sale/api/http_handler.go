package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/sale/service"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(ss service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sales", h.Create)
	router.POST("/sales/change", h.CalculateChange)
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req domain.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.AmountPaid.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monto inválido"})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	sale, err := h.saleService.CreateSale(c.Request.Context(), businessID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		case errors.Is(err, service.ErrOutOfStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Stock insuficiente"})
		case errors.Is(err, service.ErrInsufficientPayment):
			c.JSON(http.StatusConflict, gin.H{"error": "Monto insuficiente"})
		default:
			logger.Error("CreateSale: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) CalculateChange(c *gin.Context) {
	var req domain.ChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if req.Total.IsNegative() || req.AmountReceived.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monto inválido"})
		return
	}

	change, err := service.CalculateChange(req.Total, req.AmountReceived)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Monto insuficiente"})
		return
	}

	c.JSON(http.StatusOK, domain.ChangeResponse{Change: change})
}
