package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/middleware"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/domain"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/repository"
	"github.com/Adal612Git/miNegocioApp-backend/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.List)
	router.GET("/inventory", h.List) // legacy alias used by the UI
	router.POST("/products", h.Create)
	router.PATCH("/products/:id", h.Update)
	router.PATCH("/products/:id/stock", h.UpdateStock)
	router.DELETE("/products/:id", h.Remove)
}

func (h *ProductHandler) List(c *gin.Context) {
	businessID := c.GetString(middleware.ContextBusinessID)

	products, err := h.productService.ListProducts(c.Request.Context(), businessID)
	if err != nil {
		logger.Error("ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	product, err := h.productService.CreateProduct(c.Request.Context(), businessID, req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	product, err := h.productService.UpdateProduct(c.Request.Context(), businessID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req domain.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	businessID := c.GetString(middleware.ContextBusinessID)

	product, err := h.productService.UpdateStock(c.Request.Context(), businessID, c.Param("id"), *req.Stock)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update stock")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Remove(c *gin.Context) {
	businessID := c.GetString(middleware.ContextBusinessID)

	product, err := h.productService.RemoveProduct(c.Request.Context(), businessID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "Failed to remove product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
	case errors.Is(err, service.ErrInvalidCategory), errors.Is(err, service.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("ProductHandler: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
