package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// Projector calcula saldos plegando el kardex; no guarda estado propio salvo la caché opcional.
type Projector struct {
	ledger   *Ledger
	products repository.ProductRepository
	cache    BalanceCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewProjector cacheTTL = 0 desactiva la caché aunque cache no sea nil.
func NewProjector(ledger *Ledger, products repository.ProductRepository, cache BalanceCache, cacheTTL time.Duration, log *logger.Logger) *Projector {
	if cache == nil || cacheTTL <= 0 {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Projector{
		ledger:   ledger,
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log.Named("projector"),
	}
}

// CurrentBalance saldo con todos los movimientos registrados; 0 si no hay ninguno.
func (p *Projector) CurrentBalance(ctx context.Context, productID string) (decimal.Decimal, error) {
	if err := p.ensureProduct(ctx, productID); err != nil {
		return decimal.Zero, err
	}
	cached, hit, gen, cerr := p.cache.Get(ctx, productID)
	if cerr != nil {
		p.log.Warn().Err(cerr).Str("product_id", productID).Msg("caché de saldo no disponible")
	} else if hit {
		return cached, nil
	}

	balance, err := inventory.Fold(p.ledger.ListForProduct(ctx, productID, nil, nil), nil)
	if err != nil {
		return decimal.Zero, err
	}
	if cerr != nil {
		return balance, nil
	}
	if serr := p.cache.Store(ctx, productID, gen, balance, p.cacheTTL); serr != nil {
		p.log.Warn().Err(serr).Str("product_id", productID).Msg("no se pudo guardar el saldo en caché")
	}
	return balance, nil
}

// BalanceAsOf saldo con los movimientos ocurridos hasta asOf inclusive.
func (p *Projector) BalanceAsOf(ctx context.Context, productID string, asOf time.Time) (decimal.Decimal, error) {
	if err := p.ensureProduct(ctx, productID); err != nil {
		return decimal.Zero, err
	}
	return inventory.Fold(p.ledger.ListForProduct(ctx, productID, nil, &asOf), &asOf)
}

// Kardex filas de la ventana [from, to] con saldo antes y después de cada movimiento.
func (p *Projector) Kardex(ctx context.Context, productID string, from, to *time.Time) ([]entity.KardexEntry, error) {
	t, err := p.Trace(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}
	return t.Entries, nil
}

// Trace como Kardex pero con saldos de apertura y cierre.
func (p *Projector) Trace(ctx context.Context, productID string, from, to *time.Time) (inventory.Trace, error) {
	if from != nil && to != nil && from.After(*to) {
		return inventory.Trace{}, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	if err := p.ensureProduct(ctx, productID); err != nil {
		return inventory.Trace{}, err
	}
	// Se lee desde el inicio: la apertura depende de todo lo anterior a from.
	return inventory.BuildTrace(p.ledger.ListForProduct(ctx, productID, nil, to), from, to)
}

// ensureProduct los productos inactivos conservan su historial; solo falla si no existe.
func (p *Projector) ensureProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.ErrUnknownProduct
	}
	sctx, cancel := context.WithTimeout(ctx, p.ledger.cfg.StorageTimeout)
	defer cancel()
	prod, err := p.products.GetByID(sctx, productID)
	if err != nil {
		return p.ledger.storageErr(ctx, err)
	}
	if prod == nil {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	return nil
}
