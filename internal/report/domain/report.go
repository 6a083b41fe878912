package domain

import "github.com/shopspring/decimal"

type TopProduct struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type SalesSummary struct {
	TotalIncome decimal.Decimal `json:"total_income"`
	TopProducts []TopProduct    `json:"top_products"`
}

type SalesSummaryRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}
