package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{"id", "sku", "name", "active", "min_stock", "expires_at", "created_at", "updated_at"}

type productRow struct {
	ID        string          `db:"id"`
	SKU       string          `db:"sku"`
	Name      string          `db:"name"`
	Active    bool            `db:"active"`
	MinStock  decimal.Decimal `db:"min_stock"`
	ExpiresAt *time.Time      `db:"expires_at"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r productRow) toEntity() entity.Product {
	return entity.Product{
		ID:        r.ID,
		SKU:       r.SKU,
		Name:      r.Name,
		Active:    r.Active,
		MinStock:  r.MinStock,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto; asigna ID si falta.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	sql, args, err := psql.Insert(productsTable).
		Columns(productColumns...).
		Values(p.ID, p.SKU, p.Name, p.Active, p.MinStock, p.ExpiresAt, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %s", domain.ErrConflict, p.SKU)
		}
		return mapError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil // la columna es uuid; un id mal formado no existe
	}
	sql, args, err := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError("get product", err)
	}
	p := row.toEntity()
	return &p, nil
}

// ListActive productos activos ordenados por SKU.
func (r *ProductRepo) ListActive(ctx context.Context) ([]entity.Product, error) {
	sql, args, err := psql.Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("sku").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError("list products", err)
	}
	out := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
