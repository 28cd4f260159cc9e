package postgres

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

var movementColumns = []string{
	"id", "product_id", "kind", "quantity", "sign", "reference",
	"occurred_at", "note", "created_at", "created_by",
}

// movementRow fila de stock_movements tal como la lee pgxscan.
type movementRow struct {
	ID         int64           `db:"id"`
	ProductID  string          `db:"product_id"`
	Kind       string          `db:"kind"`
	Quantity   decimal.Decimal `db:"quantity"`
	Sign       int16           `db:"sign"`
	Reference  string          `db:"reference"`
	OccurredAt time.Time       `db:"occurred_at"`
	Note       string          `db:"note"`
	CreatedAt  time.Time       `db:"created_at"`
	CreatedBy  string          `db:"created_by"`
}

func (r movementRow) toEntity() entity.Movement {
	return entity.Movement{
		ID:         r.ID,
		ProductID:  r.ProductID,
		Kind:       entity.MovementKind(r.Kind),
		Quantity:   r.Quantity,
		Sign:       int(r.Sign),
		Reference:  r.Reference,
		OccurredAt: r.OccurredAt,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
		CreatedBy:  r.CreatedBy,
	}
}

// MovementRepo kardex sobre PostgreSQL (usable con pool o tx). Solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append inserta el movimiento y completa ID, Quantity y CreatedAt con lo que guardó la BD.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	sql, args, err := psql.Insert(movementsTable).
		Columns("product_id", "kind", "quantity", "sign", "reference", "occurred_at", "note", "created_at", "created_by").
		Values(m.ProductID, string(m.Kind), m.Quantity, m.Sign, m.Reference, m.OccurredAt, m.Note, createdAt, m.CreatedBy).
		Suffix("RETURNING id, quantity, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert movement: %w", err)
	}
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Quantity, &m.CreatedAt); err != nil {
		return mapError("insert movement", err)
	}
	return nil
}

// ListByProduct consulta en cada recorrido; las filas se leen a medida que se consumen.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time) iter.Seq2[entity.Movement, error] {
	return func(yield func(entity.Movement, error) bool) {
		q := psql.Select(movementColumns...).
			From(movementsTable).
			Where(squirrel.Eq{"product_id": productID}).
			OrderBy("occurred_at", "id")
		if from != nil {
			q = q.Where(squirrel.GtOrEq{"occurred_at": *from})
		}
		if to != nil {
			q = q.Where(squirrel.LtOrEq{"occurred_at": *to})
		}
		sql, args, err := q.ToSql()
		if err != nil {
			yield(entity.Movement{}, fmt.Errorf("build list movements: %w", err))
			return
		}

		rows, err := r.q.Query(ctx, sql, args...)
		if err != nil {
			yield(entity.Movement{}, mapError("list movements", err))
			return
		}
		defer rows.Close()

		scanner := pgxscan.NewRowScanner(rows)
		for rows.Next() {
			var row movementRow
			if err := scanner.Scan(&row); err != nil {
				yield(entity.Movement{}, mapError("scan movement", err))
				return
			}
			if !yield(row.toEntity(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(entity.Movement{}, mapError("list movements", err))
		}
	}
}

// ListByReference movimientos con la referencia en orden de ID.
func (r *MovementRepo) ListByReference(ctx context.Context, reference string) ([]entity.Movement, error) {
	sql, args, err := psql.Select(movementColumns...).
		From(movementsTable).
		Where(squirrel.Eq{"reference": reference}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list by reference: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError("list movements by reference", err)
	}
	out := make([]entity.Movement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
