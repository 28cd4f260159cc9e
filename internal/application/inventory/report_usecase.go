package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

// KardexReport kardex de un producto listo para mostrar o exportar.
type KardexReport struct {
	Product     entity.Product
	From        *time.Time
	To          *time.Time
	Opening     decimal.Decimal
	Closing     decimal.Decimal
	Entries     []entity.KardexEntry
	GeneratedAt time.Time
}

// ReportUseCase reportes de solo lectura sobre el kardex.
type ReportUseCase struct {
	projector *Projector
	products  repository.ProductRepository
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(projector *Projector, products repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{projector: projector, products: products, now: time.Now}
}

// LowStock productos activos cuyo saldo está en o bajo MinStock, con la cantidad sugerida
// para volver a MinStock * 1.5. Ordena por mayor déficit relativo.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	products, err := uc.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	factor := decimal.NewFromFloat(1.5)
	items := make([]dto.LowStockItemDTO, 0)
	for _, p := range products {
		if !p.MinStock.IsPositive() {
			continue
		}
		balance, err := uc.projector.CurrentBalance(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if balance.GreaterThan(p.MinStock) {
			continue
		}
		ideal := p.MinStock.Mul(factor)
		suggested := ideal.Sub(balance)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      balance,
			MinStock:          p.MinStock,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		})
	}

	// Mayor déficit relativo primero; a igualdad, mayor cantidad sugerida y luego SKU.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		ra := a.MinStock.Sub(a.CurrentStock).Div(a.MinStock)
		rb := b.MinStock.Sub(b.CurrentStock).Div(b.MinStock)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		if !a.SuggestedOrderQty.Equal(b.SuggestedOrderQty) {
			return a.SuggestedOrderQty.GreaterThan(b.SuggestedOrderQty)
		}
		return a.SKU < b.SKU
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

// NearExpiry productos activos con existencias cuyo vencimiento cae antes de now+within.
// Incluye los ya vencidos. Ordena por fecha de vencimiento.
func (uc *ReportUseCase) NearExpiry(ctx context.Context, within time.Duration) ([]dto.NearExpiryItemDTO, error) {
	if within < 0 {
		return nil, fmt.Errorf("%w: ventana negativa", domain.ErrInvalidInput)
	}
	products, err := uc.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	limit := now.Add(within)

	items := make([]dto.NearExpiryItemDTO, 0)
	for _, p := range products {
		if p.ExpiresAt == nil || p.ExpiresAt.After(limit) {
			continue
		}
		balance, err := uc.projector.CurrentBalance(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if !balance.IsPositive() {
			continue
		}
		items = append(items, dto.NearExpiryItemDTO{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			CurrentStock: balance,
			ExpiresAt:    *p.ExpiresAt,
			DaysLeft:     int(p.ExpiresAt.Sub(now).Hours() / 24),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExpiresAt.Before(items[j].ExpiresAt)
	})
	return items, nil
}

// KardexReport arma el kardex del producto con sus datos de catálogo.
func (uc *ReportUseCase) KardexReport(ctx context.Context, productID string, from, to *time.Time) (*KardexReport, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	t, err := uc.projector.Trace(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}
	return &KardexReport{
		Product:     *p,
		From:        from,
		To:          to,
		Opening:     t.Opening,
		Closing:     t.Closing,
		Entries:     t.Entries,
		GeneratedAt: uc.now(),
	}, nil
}
