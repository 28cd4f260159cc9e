package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// AppendMovementRequest body para POST /api/inventory/movements.
type AppendMovementRequest struct {
	ProductID  string          `json:"product_id"`
	Kind       string          `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reference  string          `json:"reference,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	Direction string          `json:"direction"` // in | out
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
	Reference string          `json:"reference,omitempty"`
}

// ConversionRequest body para POST /api/inventory/conversions.
type ConversionRequest struct {
	SourceProductID string          `json:"source_product_id"`
	TargetProductID string          `json:"target_product_id"`
	SourceQuantity  decimal.Decimal `json:"source_quantity"`
	TargetQuantity  decimal.Decimal `json:"target_quantity"`
}

// ReceiptLineRequest línea de recepción.
type ReceiptLineRequest struct {
	ProductID string          `json:"product_id"`
	Received  decimal.Decimal `json:"received"`
	Rejected  decimal.Decimal `json:"rejected"`
}

// ReceiptRequest body para POST /api/purchases/receipts.
type ReceiptRequest struct {
	OrderRef   string               `json:"order_ref"`
	ReceivedAt *time.Time           `json:"received_at,omitempty"`
	Lines      []ReceiptLineRequest `json:"lines"`
}

// SaleLineRequest línea de venta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SaleRequest body para POST /api/sales.
type SaleRequest struct {
	SaleRef string            `json:"sale_ref"`
	Lines   []SaleLineRequest `json:"lines"`
}

// VoidSaleRequest body opcional para POST /api/sales/:ref/void.
type VoidSaleRequest struct {
	Reason string `json:"reason,omitempty"`
}

// MovementResponse movimiento del kardex.
type MovementResponse struct {
	ID         int64           `json:"id"`
	ProductID  string          `json:"product_id"`
	Kind       string          `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	Sign       int             `json:"sign"`
	Reference  string          `json:"reference,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by,omitempty"`
}

// NewMovementResponse convierte la entidad a respuesta.
func NewMovementResponse(m entity.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Kind:       m.Kind.String(),
		Quantity:   m.Quantity,
		Sign:       m.Sign,
		Reference:  m.Reference,
		OccurredAt: m.OccurredAt,
		Note:       m.Note,
		CreatedAt:  m.CreatedAt,
		CreatedBy:  m.CreatedBy,
	}
}

// NewMovementList convierte una lista de entidades.
func NewMovementList(ms []entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMovementResponse(m))
	}
	return out
}

// BalanceResponse saldo de un producto.
type BalanceResponse struct {
	ProductID string          `json:"product_id"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"as_of,omitempty"`
}

// KardexEntryResponse fila del kardex.
type KardexEntryResponse struct {
	MovementResponse
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// KardexResponse kardex de un producto en una ventana.
type KardexResponse struct {
	ProductID      string                `json:"product_id"`
	SKU            string                `json:"sku"`
	ProductName    string                `json:"product_name"`
	From           *time.Time            `json:"from,omitempty"`
	To             *time.Time            `json:"to,omitempty"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
	Entries        []KardexEntryResponse `json:"entries"`
}

// ConversionResponse resultado de una conversión.
type ConversionResponse struct {
	Reference string           `json:"reference"`
	Out       MovementResponse `json:"out"`
	In        MovementResponse `json:"in"`
}
