package inventory_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/inventory"
)

var base = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func mov(id int64, kind entity.MovementKind, qty string, at time.Time) entity.Movement {
	m, err := entity.NewMovement("p1", kind, decimal.RequireFromString(qty), "REF", at, "")
	if err != nil {
		panic(err)
	}
	m.ID = id
	return m
}

// randomLedger genera una secuencia ordenada que nunca queda en negativo.
func randomLedger(r *rand.Rand, n int) []entity.Movement {
	out := make([]entity.Movement, 0, n)
	balance := decimal.Zero
	at := base
	kinds := entity.MovementKinds()
	for i := 0; i < n; i++ {
		at = at.Add(time.Duration(r.IntN(3)) * time.Hour) // a veces el mismo instante
		kind := kinds[r.IntN(len(kinds))]
		qty := decimal.NewFromInt(int64(r.IntN(20) + 1))
		if kind.IsOutgoing() && balance.LessThan(qty) {
			kind = entity.MovementPurchaseIn
		}
		m := mov(int64(i+1), kind, qty.String(), at)
		balance = balance.Add(m.Delta())
		out = append(out, m)
	}
	return out
}

func naiveSum(ms []entity.Movement, asOf *time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, m := range ms {
		if asOf != nil && m.OccurredAt.After(*asOf) {
			continue
		}
		total = total.Add(m.Quantity.Mul(decimal.NewFromInt(int64(m.Sign))))
	}
	return total
}

func TestFold_SinMovimientosEsCero(t *testing.T) {
	got, err := inventory.Fold(inventory.Slice(nil), nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestFold_EscenarioCompraVentaDevolucion(t *testing.T) {
	ms := []entity.Movement{
		mov(1, entity.MovementPurchaseIn, "100", base),
		mov(2, entity.MovementSaleOut, "30", base.Add(time.Hour)),
		mov(3, entity.MovementReturnFromCustomer, "5", base.Add(2*time.Hour)),
	}
	got, err := inventory.Fold(inventory.Slice(ms), nil)
	require.NoError(t, err)
	assert.Equal(t, "75", got.String())

	asOf := base.Add(time.Hour)
	got, err = inventory.Fold(inventory.Slice(ms), &asOf)
	require.NoError(t, err)
	assert.Equal(t, "70", got.String())
}

func TestFold_PropagaErrorDeLectura(t *testing.T) {
	boom := assert.AnError
	seq := func(yield func(entity.Movement, error) bool) {
		if !yield(mov(1, entity.MovementPurchaseIn, "1", base), nil) {
			return
		}
		yield(entity.Movement{}, boom)
	}
	_, err := inventory.Fold(seq, nil)
	assert.ErrorIs(t, err, boom)
}

func TestFold_CoincideConSumaIngenua(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))
	for i := 0; i < 200; i++ {
		ms := randomLedger(r, r.IntN(60))
		got, err := inventory.Fold(inventory.Slice(ms), nil)
		require.NoError(t, err)
		assert.True(t, naiveSum(ms, nil).Equal(got), "iteración %d", i)

		if len(ms) > 0 {
			cut := ms[r.IntN(len(ms))].OccurredAt
			got, err = inventory.Fold(inventory.Slice(ms), &cut)
			require.NoError(t, err)
			assert.True(t, naiveSum(ms, &cut).Equal(got), "iteración %d corte", i)
		}
	}
}

func TestBuildTrace_FilasEncadenadas(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		ms := randomLedger(r, r.IntN(40)+1)
		tr, err := inventory.BuildTrace(inventory.Slice(ms), nil, nil)
		require.NoError(t, err)
		require.Len(t, tr.Entries, len(ms))

		assert.True(t, tr.Entries[0].BalanceBefore.IsZero())
		for j, e := range tr.Entries {
			assert.True(t, e.BalanceBefore.Add(e.Movement.Delta()).Equal(e.BalanceAfter))
			if j > 0 {
				assert.True(t, tr.Entries[j-1].BalanceAfter.Equal(e.BalanceBefore))
			}
		}
		assert.True(t, tr.Closing.Equal(naiveSum(ms, nil)))
	}
}

func TestBuildTrace_VentanaAditiva(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	for i := 0; i < 100; i++ {
		ms := randomLedger(r, r.IntN(40)+2)
		from := ms[r.IntN(len(ms))].OccurredAt
		to := from.Add(time.Duration(r.IntN(10)) * time.Hour)

		tr, err := inventory.BuildTrace(inventory.Slice(ms), &from, &to)
		require.NoError(t, err)

		beforeFrom := from.Add(-time.Nanosecond)
		assert.True(t, naiveSum(ms, &beforeFrom).Equal(tr.Opening), "apertura %d", i)

		inWindow := decimal.Zero
		for _, e := range tr.Entries {
			assert.False(t, e.Movement.OccurredAt.Before(from))
			assert.False(t, e.Movement.OccurredAt.After(to))
			inWindow = inWindow.Add(e.Movement.Delta())
		}
		assert.True(t, tr.Opening.Add(inWindow).Equal(tr.Closing))
		assert.True(t, naiveSum(ms, &to).Equal(tr.Closing), "cierre %d", i)
		if len(tr.Entries) > 0 {
			assert.True(t, tr.Entries[0].BalanceBefore.Equal(tr.Opening))
		}
	}
}

func TestBuildTrace_VentanaVaciaConservaSaldo(t *testing.T) {
	ms := []entity.Movement{
		mov(1, entity.MovementPurchaseIn, "10", base),
		mov(2, entity.MovementSaleOut, "4", base.Add(time.Hour)),
	}
	from := base.Add(48 * time.Hour)
	tr, err := inventory.BuildTrace(inventory.Slice(ms), &from, nil)
	require.NoError(t, err)
	assert.Empty(t, tr.Entries)
	assert.Equal(t, "6", tr.Opening.String())
	assert.Equal(t, "6", tr.Closing.String())
}
