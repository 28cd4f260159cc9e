package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository catálogo en memoria.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Product
	skus  map[string]string
}

// NewProductRepository crea el catálogo vacío.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		items: make(map[string]entity.Product),
		skus:  make(map[string]string),
	}
}

// Create asigna ID si falta. El SKU es único.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if _, ok := r.items[p.ID]; ok {
		return fmt.Errorf("%w: producto %s ya existe", domain.ErrConflict, p.ID)
	}
	if p.SKU != "" {
		if _, ok := r.skus[p.SKU]; ok {
			return fmt.Errorf("%w: SKU %s ya existe", domain.ErrConflict, p.SKU)
		}
		r.skus[p.SKU] = p.ID
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.items[p.ID] = *p
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListActive productos activos ordenados por SKU.
func (r *ProductRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, 0, len(r.items))
	for _, p := range r.items {
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}
