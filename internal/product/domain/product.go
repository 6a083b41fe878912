package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Category   string          `json:"category"`
	IsActive   bool            `json:"is_active"`
}

// Categories the catalog accepts, compared case-insensitively.
var allowedCategories = map[string]bool{
	"servicio":    true,
	"paquete":     true,
	"otro":        true,
	"producto":    true,
	"insumo":      true,
	"accesorio":   true,
	"corte":       true,
	"color":       true,
	"tratamiento": true,
	"spa":         true,
}

func IsAllowedCategory(category string) bool {
	return allowedCategories[strings.ToLower(strings.TrimSpace(category))]
}

type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,max=120"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock" binding:"gte=0"`
	Category string          `json:"category" binding:"required,max=120"`
}

// Pointers distinguish "field absent" from zero values on partial updates.
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Stock    *int             `json:"stock,omitempty" binding:"omitempty,gte=0"`
	Category *string          `json:"category,omitempty" binding:"omitempty,min=1,max=120"`
}

type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}
