package repository

import (
	"context"
	"iter"
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// MovementRepository puerto de persistencia del kardex. Solo permite agregar: no hay Update ni Delete.
type MovementRepository interface {
	// Append valida e inserta el movimiento; asigna ID y CreatedAt.
	Append(ctx context.Context, movement *entity.Movement) error
	// ListByProduct recorre los movimientos del producto ordenados por (occurred_at, id) ascendente,
	// con from/to inclusivos. Cada recorrido vuelve a leer el almacenamiento.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time) iter.Seq2[entity.Movement, error]
	// ListByReference devuelve los movimientos asociados a un documento (venta, orden, conversión).
	ListByReference(ctx context.Context, reference string) ([]entity.Movement, error)
}
