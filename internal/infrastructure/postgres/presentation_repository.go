package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.PresentationRepository = (*PresentationRepo)(nil)

type presentationRow struct {
	ProductID       string    `db:"product_id"`
	Kind            string    `db:"kind"`
	UnitsPerPackage int       `db:"units_per_package"`
	UnitOfMeasure   string    `db:"unit_of_measure"`
	Rule            string    `db:"rule"`
	ClassifiedAt    time.Time `db:"classified_at"`
}

// PresentationRepo perfiles de presentación sobre PostgreSQL.
type PresentationRepo struct {
	q Querier
}

// NewPresentationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPresentationRepository(q Querier) *PresentationRepo {
	return &PresentationRepo{q: q}
}

// Upsert inserta o reemplaza el perfil del producto.
func (r *PresentationRepo) Upsert(ctx context.Context, p *entity.PresentationProfile) error {
	sql, args, err := psql.Insert(presentationTable).
		Columns("product_id", "kind", "units_per_package", "unit_of_measure", "rule", "classified_at").
		Values(p.ProductID, string(p.Kind), p.UnitsPerPackage, p.UnitOfMeasure, p.Rule, p.ClassifiedAt).
		Suffix(`ON CONFLICT (product_id) DO UPDATE SET
			kind = EXCLUDED.kind,
			units_per_package = EXCLUDED.units_per_package,
			unit_of_measure = EXCLUDED.unit_of_measure,
			rule = EXCLUDED.rule,
			classified_at = EXCLUDED.classified_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert presentation: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return mapError("upsert presentation", err)
	}
	return nil
}

// GetByProductID nil, nil si el producto no está clasificado.
func (r *PresentationRepo) GetByProductID(ctx context.Context, productID string) (*entity.PresentationProfile, error) {
	sql, args, err := psql.Select("product_id", "kind", "units_per_package", "unit_of_measure", "rule", "classified_at").
		From(presentationTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get presentation: %w", err)
	}
	var row presentationRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError("get presentation", err)
	}
	return &entity.PresentationProfile{
		ProductID:       row.ProductID,
		Kind:            entity.PresentationKind(row.Kind),
		UnitsPerPackage: row.UnitsPerPackage,
		UnitOfMeasure:   row.UnitOfMeasure,
		Rule:            row.Rule,
		ClassifiedAt:    row.ClassifiedAt,
	}, nil
}
