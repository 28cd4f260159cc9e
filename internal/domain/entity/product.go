package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la farmacia.
// El stock no se guarda aquí: siempre se obtiene plegando los movimientos del kardex.
type Product struct {
	ID        string
	SKU       string
	Name      string
	Active    bool
	MinStock  decimal.Decimal // umbral para el reporte de stock bajo (0 = sin umbral)
	ExpiresAt *time.Time      // vencimiento del lote vigente; lo administra el catálogo
	CreatedAt time.Time
	UpdatedAt time.Time
}
