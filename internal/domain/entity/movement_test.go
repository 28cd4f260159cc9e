package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

func TestMovementKind_Signos(t *testing.T) {
	entradas := []entity.MovementKind{
		entity.MovementPurchaseIn, entity.MovementAdjustIn,
		entity.MovementConversionIn, entity.MovementReturnFromCustomer,
	}
	salidas := []entity.MovementKind{
		entity.MovementSaleOut, entity.MovementAdjustOut,
		entity.MovementConversionOut, entity.MovementReturnFromPurchase,
	}
	for _, k := range entradas {
		assert.Equal(t, 1, k.Sign(), k.String())
		assert.False(t, k.IsOutgoing(), k.String())
	}
	for _, k := range salidas {
		assert.Equal(t, -1, k.Sign(), k.String())
		assert.True(t, k.IsOutgoing(), k.String())
	}
	assert.Len(t, entity.MovementKinds(), len(entradas)+len(salidas))
}

func TestParseMovementKind(t *testing.T) {
	k, err := entity.ParseMovementKind("SALE_OUT")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementSaleOut, k)

	_, err = entity.ParseMovementKind("sale_out")
	assert.ErrorIs(t, err, domain.ErrUnknownMovementKind)
	_, err = entity.ParseMovementKind("")
	assert.ErrorIs(t, err, domain.ErrUnknownMovementKind)
}

func TestNewMovement_Validaciones(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		product string
		kind    entity.MovementKind
		qty     decimal.Decimal
		wantErr error
	}{
		{"cantidad cero", "p1", entity.MovementPurchaseIn, decimal.Zero, domain.ErrInvalidQuantity},
		{"cantidad negativa", "p1", entity.MovementSaleOut, decimal.NewFromInt(-3), domain.ErrInvalidQuantity},
		{"tipo desconocido", "p1", entity.MovementKind("GIFT"), decimal.NewFromInt(1), domain.ErrUnknownMovementKind},
		{"sin producto", "", entity.MovementPurchaseIn, decimal.NewFromInt(1), domain.ErrUnknownProduct},
		{"cinco decimales", "p1", entity.MovementPurchaseIn, decimal.RequireFromString("1.23454"), domain.ErrInvalidQuantity},
		{"menor que la escala", "p1", entity.MovementSaleOut, decimal.RequireFromString("0.00001"), domain.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := entity.NewMovement(tt.product, tt.kind, tt.qty, "", now, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewMovement_EscalaDeCantidad(t *testing.T) {
	for _, q := range []string{"1.2345", "0.0001", "2.50000", "100"} {
		m, err := entity.NewMovement("p1", entity.MovementPurchaseIn, decimal.RequireFromString(q), "", time.Now(), "")
		require.NoError(t, err, q)
		require.NoError(t, m.Validate(), q)
	}

	m := entity.Movement{ProductID: "p1", Kind: entity.MovementSaleOut, Sign: -1, Quantity: decimal.RequireFromString("1.23456")}
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidQuantity)
}

func TestMovement_DeltaYSigno(t *testing.T) {
	m, err := entity.NewMovement("p1", entity.MovementSaleOut, decimal.RequireFromString("2.5"), "V-1", time.Now(), "")
	require.NoError(t, err)
	assert.Equal(t, -1, m.Sign)
	assert.Equal(t, "-2.5", m.Delta().String())
	require.NoError(t, m.Validate())

	m.Sign = 1
	assert.ErrorIs(t, m.Validate(), domain.ErrSignMismatch)
}

func TestMovement_Before(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := entity.Movement{ID: 2, OccurredAt: at}
	b := entity.Movement{ID: 1, OccurredAt: at.Add(time.Second)}
	c := entity.Movement{ID: 3, OccurredAt: at}
	assert.True(t, a.Before(b))
	assert.True(t, a.Before(c))
	assert.False(t, c.Before(a))
}

func TestInsufficientStockError_Unwrap(t *testing.T) {
	var err error = &domain.InsufficientStockError{
		ProductID: "p1",
		Available: decimal.NewFromInt(10),
		Requested: decimal.NewFromInt(11),
	}
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 10")
	assert.False(t, domain.IsRetryable(err))
	assert.True(t, domain.IsRetryable(domain.ErrConcurrentModification))
}
