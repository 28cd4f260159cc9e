package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO producto en o bajo su stock mínimo.
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStock          decimal.Decimal `json:"min_stock"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // MinStock * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

// NearExpiryItemDTO producto con existencias cuyo lote vence pronto.
type NearExpiryItemDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ExpiresAt    time.Time       `json:"expires_at"`
	DaysLeft     int             `json:"days_left"` // negativo si ya venció
}
