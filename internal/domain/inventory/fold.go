package inventory

import (
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// Fold acumula de izquierda a derecha las cantidades con signo de una secuencia ordenada
// por (OccurredAt, ID). Si asOf no es nil se detiene en el primer movimiento posterior.
func Fold(movements iter.Seq2[entity.Movement, error], asOf *time.Time) (decimal.Decimal, error) {
	balance := decimal.Zero
	for m, err := range movements {
		if err != nil {
			return decimal.Zero, err
		}
		if asOf != nil && m.OccurredAt.After(*asOf) {
			break
		}
		balance = balance.Add(m.Delta())
	}
	return balance, nil
}

// Trace es el kardex de una ventana: saldo de apertura, filas y saldo de cierre.
type Trace struct {
	Opening decimal.Decimal
	Entries []entity.KardexEntry
	Closing decimal.Decimal
}

// BuildTrace recorre la secuencia completa hasta to. Los movimientos anteriores a from solo
// alimentan el saldo de apertura, así que la ventana cambia las filas visibles pero nunca el saldo.
func BuildTrace(movements iter.Seq2[entity.Movement, error], from, to *time.Time) (Trace, error) {
	var t Trace
	balance := decimal.Zero
	for m, err := range movements {
		if err != nil {
			return Trace{}, err
		}
		if to != nil && m.OccurredAt.After(*to) {
			break
		}
		if from != nil && m.OccurredAt.Before(*from) {
			balance = balance.Add(m.Delta())
			t.Opening = balance
			continue
		}
		before := balance
		balance = balance.Add(m.Delta())
		t.Entries = append(t.Entries, entity.KardexEntry{
			Movement:      m,
			BalanceBefore: before,
			BalanceAfter:  balance,
		})
	}
	t.Closing = balance
	return t, nil
}

// Slice adapta un slice ya ordenado a secuencia; útil para pruebas y datos en memoria.
func Slice(movements []entity.Movement) iter.Seq2[entity.Movement, error] {
	return func(yield func(entity.Movement, error) bool) {
		for _, m := range movements {
			if !yield(m, nil) {
				return
			}
		}
	}
}
