package repository

import (
	"context"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo que consume el kardex.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context) ([]entity.Product, error)
}
