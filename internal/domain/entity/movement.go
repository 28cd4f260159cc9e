package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
)

// MovementKind tipo cerrado de movimiento de inventario.
type MovementKind string

// Tipos de movimiento del kardex.
const (
	MovementPurchaseIn         MovementKind = "PURCHASE_IN"          // recepción de orden de compra
	MovementSaleOut            MovementKind = "SALE_OUT"             // venta
	MovementAdjustIn           MovementKind = "ADJUST_IN"            // ajuste manual positivo
	MovementAdjustOut          MovementKind = "ADJUST_OUT"           // ajuste manual negativo
	MovementReturnFromPurchase MovementKind = "RETURN_FROM_PURCHASE" // devolución al proveedor
	MovementReturnFromCustomer MovementKind = "RETURN_FROM_CUSTOMER" // devolución o anulación de venta
	MovementConversionIn       MovementKind = "CONVERSION_IN"        // unidades derivadas (ej. blister desarmado)
	MovementConversionOut      MovementKind = "CONVERSION_OUT"       // origen de la conversión
)

var movementSigns = map[MovementKind]int{
	MovementPurchaseIn:         1,
	MovementAdjustIn:           1,
	MovementConversionIn:       1,
	MovementReturnFromCustomer: 1,
	MovementSaleOut:            -1,
	MovementAdjustOut:          -1,
	MovementConversionOut:      -1,
	MovementReturnFromPurchase: -1,
}

// MovementKinds devuelve todos los tipos válidos en orden estable.
func MovementKinds() []MovementKind {
	return []MovementKind{
		MovementPurchaseIn, MovementSaleOut,
		MovementAdjustIn, MovementAdjustOut,
		MovementReturnFromPurchase, MovementReturnFromCustomer,
		MovementConversionIn, MovementConversionOut,
	}
}

// ParseMovementKind convierte el texto recibido (API, BD) en un tipo válido.
func ParseMovementKind(s string) (MovementKind, error) {
	k := MovementKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMovementKind, s)
	}
	return k, nil
}

func (k MovementKind) String() string { return string(k) }

// IsValid indica si el tipo pertenece al conjunto cerrado.
func (k MovementKind) IsValid() bool {
	_, ok := movementSigns[k]
	return ok
}

// Sign es +1 para entradas y -1 para salidas; 0 si el tipo no es válido.
func (k MovementKind) Sign() int {
	return movementSigns[k]
}

// IsOutgoing indica si el movimiento descuenta stock.
func (k MovementKind) IsOutgoing() bool {
	return k.Sign() < 0
}

// Movement es un hecho inmutable del kardex. Las correcciones se hacen con movimientos compensatorios.
type Movement struct {
	ID         int64 // asignado al insertar, estrictamente creciente
	ProductID  string
	Kind       MovementKind
	Quantity   decimal.Decimal // magnitud siempre positiva
	Sign       int             // redundante con Kind; siempre Kind.Sign()
	Reference  string          // orden de compra, venta, conversión...
	OccurredAt time.Time
	Note       string
	CreatedAt  time.Time
	CreatedBy  string
}

// QuantityScale decimales que admite una cantidad; la columna es numeric(18,4).
const QuantityScale = 4

func checkQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if !q.Equal(q.Truncate(QuantityScale)) {
		return fmt.Errorf("%w: máximo %d decimales", domain.ErrInvalidQuantity, QuantityScale)
	}
	return nil
}

// NewMovement construye un movimiento válido derivando el signo del tipo.
func NewMovement(productID string, kind MovementKind, quantity decimal.Decimal, reference string, occurredAt time.Time, note string) (Movement, error) {
	if !kind.IsValid() {
		return Movement{}, fmt.Errorf("%w: %q", domain.ErrUnknownMovementKind, string(kind))
	}
	if err := checkQuantity(quantity); err != nil {
		return Movement{}, err
	}
	if productID == "" {
		return Movement{}, domain.ErrUnknownProduct
	}
	return Movement{
		ProductID:  productID,
		Kind:       kind,
		Quantity:   quantity,
		Sign:       kind.Sign(),
		Reference:  reference,
		OccurredAt: occurredAt,
		Note:       note,
	}, nil
}

// Validate revisa los invariantes antes de persistir.
func (m Movement) Validate() error {
	if !m.Kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMovementKind, string(m.Kind))
	}
	if err := checkQuantity(m.Quantity); err != nil {
		return err
	}
	if m.Sign != m.Kind.Sign() {
		return domain.ErrSignMismatch
	}
	return nil
}

// Delta es la cantidad con signo que aporta al saldo.
func (m Movement) Delta() decimal.Decimal {
	if m.Sign < 0 {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// Before ordena por (OccurredAt, ID).
func (m Movement) Before(o Movement) bool {
	if !m.OccurredAt.Equal(o.OccurredAt) {
		return m.OccurredAt.Before(o.OccurredAt)
	}
	return m.ID < o.ID
}

// KardexEntry fila del kardex: el movimiento con el saldo antes y después de aplicarlo.
type KardexEntry struct {
	Movement      Movement
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}
