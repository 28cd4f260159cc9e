package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/memory"
)

var t0 = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

func newMov(t *testing.T, product string, kind entity.MovementKind, qty int64, at time.Time, ref string) *entity.Movement {
	t.Helper()
	m, err := entity.NewMovement(product, kind, decimal.NewFromInt(qty), ref, at, "")
	require.NoError(t, err)
	return &m
}

func collect(t *testing.T, s repository.MovementRepository, product string, from, to *time.Time) []entity.Movement {
	t.Helper()
	var out []entity.Movement
	for m, err := range s.ListByProduct(context.Background(), product, from, to) {
		require.NoError(t, err)
		out = append(out, m)
	}
	return out
}

func TestMovementStore_OrdenPorFechaEId(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMovementStore()
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 10, t0.Add(2*time.Hour), "A")))
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 5, t0, "B")))
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementSaleOut, 1, t0, "C")))
	require.NoError(t, s.Append(ctx, newMov(t, "p2", entity.MovementPurchaseIn, 7, t0, "D")))

	got := collect(t, s, "p1", nil, nil)
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Reference)
	assert.Equal(t, "C", got[1].Reference)
	assert.Equal(t, "A", got[2].Reference)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]))
	}
}

func TestMovementStore_VentanaInclusiva(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMovementStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 1, t0.Add(time.Duration(i)*time.Hour), "")))
	}
	from, to := t0.Add(time.Hour), t0.Add(3*time.Hour)
	got := collect(t, s, "p1", &from, &to)
	require.Len(t, got, 3)
	assert.True(t, got[0].OccurredAt.Equal(from))
	assert.True(t, got[2].OccurredAt.Equal(to))
}

func TestMovementStore_SecuenciaReiniciable(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMovementStore()
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 1, t0, "")))
	seq := s.ListByProduct(ctx, "p1", nil, nil)

	n := 0
	for range seq {
		n++
	}
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 1, t0, "")))
	m := 0
	for range seq {
		m++
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, m, "cada recorrido vuelve a leer")
}

func TestMovementStore_RechazaSignoIncorrecto(t *testing.T) {
	s := memory.NewMovementStore()
	m := newMov(t, "p1", entity.MovementSaleOut, 1, t0, "")
	m.Sign = 1
	assert.ErrorIs(t, s.Append(context.Background(), m), domain.ErrSignMismatch)
}

func TestMovementStore_ListByReference(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMovementStore()
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementSaleOut, 1, t0, "V-1")))
	require.NoError(t, s.Append(ctx, newMov(t, "p2", entity.MovementSaleOut, 2, t0, "V-1")))
	require.NoError(t, s.Append(ctx, newMov(t, "p1", entity.MovementSaleOut, 3, t0, "V-2")))

	got, err := s.ListByReference(ctx, "V-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProductID)
	assert.Equal(t, "p2", got[1].ProductID)
}

func TestTxRunner_ErrorNoEscribe(t *testing.T) {
	ctx := context.Background()
	s := memory.NewMovementStore()
	r := memory.NewTxRunner(s)
	err := r.RunLocked(ctx, "p1", func(ctx context.Context, repo repository.MovementRepository) error {
		require.NoError(t, repo.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 3, t0, "")))
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, collect(t, s, "p1", nil, nil))
}

func TestTxRunner_ContextoCanceladoNoEscribe(t *testing.T) {
	s := memory.NewMovementStore()
	r := memory.NewTxRunner(s)
	ctx, cancel := context.WithCancel(context.Background())
	err := r.RunLocked(ctx, "p1", func(ctx context.Context, repo repository.MovementRepository) error {
		require.NoError(t, repo.Append(ctx, newMov(t, "p1", entity.MovementPurchaseIn, 3, t0, "")))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, collect(t, s, "p1", nil, nil))
}

func TestTxRunner_EsperaAgotadaEsModificacionConcurrente(t *testing.T) {
	s := memory.NewMovementStore()
	r := memory.NewTxRunner(s)
	holding := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = r.RunLocked(context.Background(), "p1", func(context.Context, repository.MovementRepository) error {
			close(holding)
			<-done
			return nil
		})
	}()
	<-holding
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := r.RunLocked(ctx, "p1", func(context.Context, repository.MovementRepository) error { return nil })
	close(done)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)

	// Otro producto no compite.
	err = r.RunLocked(context.Background(), "p2", func(context.Context, repository.MovementRepository) error { return nil })
	assert.NoError(t, err)
}

func TestKeyedMutex_LiberaEntradas(t *testing.T) {
	k := memory.NewKeyedMutex()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), "x")
			if err != nil {
				return
			}
			counter++
			unlock()
			unlock() // idempotente
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, k.Len())
}

func TestBalanceCache_GeneracionEvitaValorViejo(t *testing.T) {
	ctx := context.Background()
	c := memory.NewBalanceCache()

	_, hit, gen, err := c.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, hit)

	// Un escritor invalida mientras el lector calculaba.
	require.NoError(t, c.Invalidate(ctx, "p1"))
	require.NoError(t, c.Store(ctx, "p1", gen, decimal.NewFromInt(10), time.Minute))
	_, hit, gen, _ = c.Get(ctx, "p1")
	assert.False(t, hit, "el valor calculado con la generación anterior se descarta")

	// Con la escritura sin confirmar la generación es impar y no se guarda nada.
	require.NoError(t, c.Store(ctx, "p1", gen, decimal.NewFromInt(11), time.Minute))
	_, hit, _, _ = c.Get(ctx, "p1")
	assert.False(t, hit)

	require.NoError(t, c.Invalidate(ctx, "p1"))
	_, _, gen, _ = c.Get(ctx, "p1")
	assert.Equal(t, int64(2), gen)
	require.NoError(t, c.Store(ctx, "p1", gen, decimal.NewFromInt(12), time.Minute))
	v, hit, _, _ := c.Get(ctx, "p1")
	assert.True(t, hit)
	assert.Equal(t, "12", v.String())
}

func TestBalanceCache_Expira(t *testing.T) {
	ctx := context.Background()
	c := memory.NewBalanceCache()
	_, _, gen, _ := c.Get(ctx, "p1")
	require.NoError(t, c.Store(ctx, "p1", gen, decimal.NewFromInt(1), time.Nanosecond))
	time.Sleep(time.Millisecond)
	_, hit, _, _ := c.Get(ctx, "p1")
	assert.False(t, hit)
}

func TestJobLock_Exclusivo(t *testing.T) {
	ctx := context.Background()
	l := memory.NewJobLock()
	release, err := l.Acquire(ctx, "reclassify", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "reclassify", time.Minute)
	assert.ErrorIs(t, err, domain.ErrJobInProgress)

	release()
	release2, err := l.Acquire(ctx, "reclassify", time.Minute)
	require.NoError(t, err)
	release2()
}

func TestProductRepository_SKUUnico(t *testing.T) {
	ctx := context.Background()
	r := memory.NewProductRepository()
	p := &entity.Product{SKU: "A-1", Name: "Amoxicilina", Active: true}
	require.NoError(t, r.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	err := r.Create(ctx, &entity.Product{SKU: "A-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)
}
