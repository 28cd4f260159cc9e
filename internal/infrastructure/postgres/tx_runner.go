package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con la fila del
// producto bloqueada. La espera por el bloqueo la acota lock_timeout (ver NewPool).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLocked inicia la transacción, bloquea products.id = productID (SELECT FOR UPDATE),
// ejecuta fn con el repositorio de movimientos atado a la tx y hace Commit o Rollback.
// Los appends de un mismo producto quedan en serie; productos distintos no compiten.
func (r *TxRunner) RunLocked(ctx context.Context, productID string, fn func(ctx context.Context, movRepo repository.MovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	var active bool
	err = tx.QueryRow(ctx, `SELECT active FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
		}
		return mapError("lock product", err)
	}
	if !active {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}

	if err := fn(ctx, NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}
