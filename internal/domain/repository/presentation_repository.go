package repository

import (
	"context"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// PresentationRepository persistencia de perfiles de presentación (reemplazables por reclasificación).
type PresentationRepository interface {
	Upsert(ctx context.Context, profile *entity.PresentationProfile) error
	// GetByProductID devuelve nil, nil si el producto no ha sido clasificado.
	GetByProductID(ctx context.Context, productID string) (*entity.PresentationProfile, error)
}
