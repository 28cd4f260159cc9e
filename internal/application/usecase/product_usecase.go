package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// ProductUseCase alta y consulta del catálogo. El stock nunca se edita aquí: sale del kardex.
type ProductUseCase struct {
	repo       repository.ProductRepository
	profiles   repository.PresentationRepository
	classifier *presentation.Classifier
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso. classifier nil usa la tabla por defecto.
func NewProductUseCase(
	repo repository.ProductRepository,
	profiles repository.PresentationRepository,
	classifier *presentation.Classifier,
	log *logger.Logger,
) *ProductUseCase {
	if classifier == nil {
		classifier = presentation.NewClassifier(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, profiles: profiles, classifier: classifier, log: log.Named("products")}
}

// Create da de alta un producto activo y guarda su presentación clasificada por nombre.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	if in.MinStock.IsNegative() {
		return nil, fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		SKU:       sku,
		Name:      name,
		Active:    true,
		MinStock:  in.MinStock,
		ExpiresAt: in.ExpiresAt,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	out := dto.NewProductResponse(*p)
	profile := uc.classifier.Classify(p.Name)
	profile.ProductID = p.ID
	profile.ClassifiedAt = p.CreatedAt
	if err := uc.profiles.Upsert(ctx, &profile); err != nil {
		// El producto ya existe; la presentación se recupera con la reclasificación batch.
		uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("no se guardó la presentación")
	} else {
		pr := dto.NewPresentationResponse(profile)
		out.Presentation = &pr
	}
	uc.log.Info().Str("product_id", p.ID).Str("sku", p.SKU).Msg("producto creado")
	return &out, nil
}

// GetByID producto con su presentación; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	out := dto.NewProductResponse(*p)
	profile, err := uc.profiles.GetByProductID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		pr := dto.NewPresentationResponse(*profile)
		out.Presentation = &pr
	}
	return &out, nil
}

// List productos activos ordenados por SKU.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.NewProductResponse(p))
	}
	return out, nil
}
