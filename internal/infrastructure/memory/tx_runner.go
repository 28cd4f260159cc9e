package memory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner sección crítica por producto sobre MovementStore. Las escrituras de fn quedan
// en espera y se aplican juntas solo si fn termina bien y el contexto sigue vigente.
type TxRunner struct {
	store *MovementStore
	locks *KeyedMutex
}

// NewTxRunner construye el runner.
func NewTxRunner(store *MovementStore) *TxRunner {
	return &TxRunner{store: store, locks: NewKeyedMutex()}
}

// RunLocked ver inventory.TxRunner.
func (r *TxRunner) RunLocked(ctx context.Context, productID string, fn func(ctx context.Context, movRepo repository.MovementRepository) error) error {
	unlock, err := r.locks.Lock(ctx, productID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: espera por el producto %s: %v", domain.ErrConcurrentModification, productID, err)
		}
		return err
	}
	defer unlock()

	tx := &txMovementRepo{store: r.store, productID: productID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

// txMovementRepo vista transaccional: lee del almacén y acumula escrituras.
type txMovementRepo struct {
	store     *MovementStore
	productID string
	pending   []*entity.Movement
}

func (t *txMovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ProductID != t.productID {
		return fmt.Errorf("%w: movimiento de %s dentro de la sección de %s", domain.ErrInvalidInput, m.ProductID, t.productID)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	t.pending = append(t.pending, m)
	return nil
}

func (t *txMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time) iter.Seq2[entity.Movement, error] {
	return t.store.ListByProduct(ctx, productID, from, to)
}

func (t *txMovementRepo) ListByReference(ctx context.Context, reference string) ([]entity.Movement, error) {
	return t.store.ListByReference(ctx, reference)
}

func (t *txMovementRepo) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, m := range t.pending {
		t.store.appendLocked(m)
	}
	return nil
}
