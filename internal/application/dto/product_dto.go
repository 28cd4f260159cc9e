package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	MinStock  decimal.Decimal `json:"min_stock"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

// ProductResponse producto del catálogo. El saldo se consulta aparte.
type ProductResponse struct {
	ID           string                `json:"id"`
	SKU          string                `json:"sku"`
	Name         string                `json:"name"`
	Active       bool                  `json:"active"`
	MinStock     decimal.Decimal       `json:"min_stock"`
	ExpiresAt    *time.Time            `json:"expires_at,omitempty"`
	Presentation *PresentationResponse `json:"presentation,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// NewProductResponse convierte la entidad a respuesta.
func NewProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Active:    p.Active,
		MinStock:  p.MinStock,
		ExpiresAt: p.ExpiresAt,
		CreatedAt: p.CreatedAt,
	}
}
