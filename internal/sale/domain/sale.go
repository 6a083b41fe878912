package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItem freezes the unit price at sale time. Later catalog price changes
// must not alter historical sales.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Sale struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	Date       time.Time       `json:"date"`
	Items      []SaleItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
}

type CreateSaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateSaleRequest struct {
	Items      []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
	AmountPaid decimal.Decimal         `json:"amount_paid"`
}

// Field names mirror the cash-register UI payload.
type ChangeRequest struct {
	Total          decimal.Decimal `json:"total"`
	AmountReceived decimal.Decimal `json:"monto_recibido"`
}

type ChangeResponse struct {
	Change decimal.Decimal `json:"cambio"`
}
