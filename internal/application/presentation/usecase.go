// Package presentation orquesta la clasificación de presentaciones del catálogo.
// Solo escribe perfiles de presentación; nunca toca el kardex.
package presentation

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	domainpresentation "github.com/jhoicas/kardex-farmacia/internal/domain/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// reclassifyJob nombre del candado del proceso batch.
const reclassifyJob = "presentations:reclassify"

// JobLock candado exclusivo para procesos batch (Redis o en proceso).
type JobLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), err error)
}

// Summary resultado de una reclasificación.
type Summary struct {
	Scanned    int
	Classified int
	Skipped    int // ya tenían perfil y se pidió solo los faltantes
	DryRun     bool
	ByKind     map[entity.PresentationKind]int
}

// UseCase clasificación de presentaciones.
type UseCase struct {
	classifier *domainpresentation.Classifier
	products   repository.ProductRepository
	profiles   repository.PresentationRepository
	lock       JobLock
	lockTTL    time.Duration
	log        *logger.Logger
	now        func() time.Time
}

// NewUseCase construye el caso de uso. classifier nil usa la tabla por defecto.
func NewUseCase(
	classifier *domainpresentation.Classifier,
	products repository.ProductRepository,
	profiles repository.PresentationRepository,
	lock JobLock,
	log *logger.Logger,
) *UseCase {
	if classifier == nil {
		classifier = domainpresentation.NewClassifier(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		classifier: classifier,
		products:   products,
		profiles:   profiles,
		lock:       lock,
		lockTTL:    10 * time.Minute,
		log:        log.Named("presentations"),
		now:        time.Now,
	}
}

// Preview clasifica un nombre sin persistir nada.
func (uc *UseCase) Preview(name string) entity.PresentationProfile {
	return uc.classifier.Classify(name)
}

// Get perfil guardado del producto; ErrNotFound si aún no se clasificó.
func (uc *UseCase) Get(ctx context.Context, productID string) (*entity.PresentationProfile, error) {
	p, err := uc.profiles.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: presentación de %s", domain.ErrNotFound, productID)
	}
	return p, nil
}

// ReclassifyCatalog clasifica los productos activos. Con onlyMissing respeta los perfiles
// existentes; con dryRun no escribe. Dos ejecuciones simultáneas: la segunda recibe ErrJobInProgress.
func (uc *UseCase) ReclassifyCatalog(ctx context.Context, onlyMissing, dryRun bool) (Summary, error) {
	release, err := uc.lock.Acquire(ctx, reclassifyJob, uc.lockTTL)
	if err != nil {
		return Summary{}, err
	}
	defer release()

	products, err := uc.products.ListActive(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{DryRun: dryRun, ByKind: make(map[entity.PresentationKind]int)}
	classifiedAt := uc.now()
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Scanned++
		if onlyMissing {
			existing, err := uc.profiles.GetByProductID(ctx, p.ID)
			if err != nil {
				return sum, err
			}
			if existing != nil {
				sum.Skipped++
				continue
			}
		}
		profile := uc.classifier.Classify(p.Name)
		profile.ProductID = p.ID
		profile.ClassifiedAt = classifiedAt
		if !dryRun {
			if err := uc.profiles.Upsert(ctx, &profile); err != nil {
				return sum, fmt.Errorf("guardar presentación de %s: %w", p.ID, err)
			}
		}
		sum.Classified++
		sum.ByKind[profile.Kind]++
		uc.log.Debug().Str("product_id", p.ID).Str("name", p.Name).
			Str("kind", string(profile.Kind)).Int("units", profile.UnitsPerPackage).
			Str("rule", profile.Rule).Msg("producto clasificado")
	}
	uc.log.Info().Int("scanned", sum.Scanned).Int("classified", sum.Classified).
		Int("skipped", sum.Skipped).Bool("dry_run", dryRun).Msg("reclasificación terminada")
	return sum, nil
}
