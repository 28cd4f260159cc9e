package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

var _ repository.PresentationRepository = (*PresentationRepository)(nil)

// PresentationRepository perfiles de presentación en memoria.
type PresentationRepository struct {
	mu       sync.RWMutex
	profiles map[string]entity.PresentationProfile
}

// NewPresentationRepository crea el repositorio vacío.
func NewPresentationRepository() *PresentationRepository {
	return &PresentationRepository{profiles: make(map[string]entity.PresentationProfile)}
}

// Upsert reemplaza el perfil del producto.
func (r *PresentationRepository) Upsert(ctx context.Context, p *entity.PresentationProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ProductID] = *p
	return nil
}

// GetByProductID devuelve nil, nil si el producto no está clasificado.
func (r *PresentationRepository) GetByProductID(ctx context.Context, productID string) (*entity.PresentationProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
