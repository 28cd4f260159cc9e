package inventory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// maxClockSkew tolerancia para OccurredAt en el futuro respecto al reloj del servidor.
const maxClockSkew = 5 * time.Minute

// LedgerConfig parámetros del kardex.
type LedgerConfig struct {
	StorageTimeout time.Duration
	MaxRetries     int           // reintentos ante ErrConcurrentModification
	RetryBackoff   time.Duration // espera base; se multiplica por el número de intento
	Now            func() time.Time
}

func (c LedgerConfig) withDefaults() LedgerConfig {
	if c.StorageTimeout <= 0 {
		c.StorageTimeout = 5 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = 20 * time.Millisecond
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// AppendInput datos para registrar un movimiento. OccurredAt nil = ahora.
type AppendInput struct {
	ProductID  string
	Kind       entity.MovementKind
	Quantity   decimal.Decimal
	Reference  string
	OccurredAt *time.Time
	Note       string
	CreatedBy  string
}

// Ledger es el registro de movimientos (append-only). Es el único punto de escritura del kardex.
type Ledger struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	cache     BalanceCache
	log       *logger.Logger
	cfg       LedgerConfig
}

// NewLedger construye el kardex. cache puede ser nil.
func NewLedger(
	txRunner TxRunner,
	products repository.ProductRepository,
	movements repository.MovementRepository,
	cache BalanceCache,
	log *logger.Logger,
	cfg LedgerConfig,
) *Ledger {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		txRunner:  txRunner,
		products:  products,
		movements: movements,
		cache:     cache,
		log:       log.Named("ledger"),
		cfg:       cfg.withDefaults(),
	}
}

// Append valida y registra un movimiento. Las salidas se validan contra el saldo calculado
// dentro de la sección crítica del producto; si no alcanza devuelve *domain.InsufficientStockError
// y no escribe nada. Ante ErrConcurrentModification reintenta hasta MaxRetries veces.
func (l *Ledger) Append(ctx context.Context, in AppendInput) (*entity.Movement, error) {
	now := l.cfg.Now()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	m, err := entity.NewMovement(in.ProductID, in.Kind, in.Quantity, in.Reference, occurredAt, in.Note)
	if err != nil {
		return nil, err
	}
	if occurredAt.After(now.Add(maxClockSkew)) {
		return nil, fmt.Errorf("%w: fecha del movimiento en el futuro", domain.ErrInvalidInput)
	}
	m.CreatedBy = in.CreatedBy

	if err := l.checkProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		saved := m
		saved.CreatedAt = l.cfg.Now()
		err = l.appendOnce(ctx, &saved)
		if err == nil {
			l.log.Debug().
				Int64("id", saved.ID).
				Str("product_id", saved.ProductID).
				Str("kind", saved.Kind.String()).
				Str("quantity", saved.Quantity.String()).
				Str("reference", saved.Reference).
				Msg("movimiento registrado")
			return &saved, nil
		}
		if !errors.Is(err, domain.ErrConcurrentModification) || attempt >= l.cfg.MaxRetries {
			break
		}
		l.log.Debug().Str("product_id", m.ProductID).Int("attempt", attempt+1).Msg("reintentando por modificación concurrente")
		if werr := sleepCtx(ctx, l.cfg.RetryBackoff*time.Duration(attempt+1)); werr != nil {
			err = werr
			break
		}
	}

	ev := l.log.Warn()
	if errors.Is(err, domain.ErrStorageUnavailable) {
		ev = l.log.Error()
	}
	ev.Err(err).
		Str("product_id", m.ProductID).
		Str("kind", m.Kind.String()).
		Str("quantity", m.Quantity.String()).
		Msg("movimiento rechazado")
	return nil, err
}

func (l *Ledger) appendOnce(ctx context.Context, m *entity.Movement) error {
	sctx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()

	opened := false
	err := l.txRunner.RunLocked(sctx, m.ProductID, func(txCtx context.Context, movRepo repository.MovementRepository) error {
		if m.Kind.IsOutgoing() {
			balance, err := inventory.Fold(movRepo.ListByProduct(txCtx, m.ProductID, nil, nil), nil)
			if err != nil {
				return err
			}
			if balance.LessThan(m.Quantity) {
				return &domain.InsufficientStockError{
					ProductID: m.ProductID,
					Available: balance,
					Requested: m.Quantity,
				}
			}
		}
		if err := txCtx.Err(); err != nil {
			return err
		}
		if err := movRepo.Append(txCtx, m); err != nil {
			return err
		}
		// Sin invalidación no se confirma: un saldo viejo en caché no puede sobrevivir a la escritura.
		if err := l.cache.Invalidate(txCtx, m.ProductID); err != nil {
			return fmt.Errorf("%w: invalidar caché de saldo: %w", domain.ErrStorageUnavailable, err)
		}
		opened = true
		return nil
	})
	if opened {
		l.closeWrite(ctx, m.ProductID)
	}
	return l.storageErr(ctx, err)
}

// closeWrite segunda invalidación, ya confirmada (o descartada) la escritura. Descarta lo que
// un lector haya guardado entre la primera invalidación y la confirmación. Si falla, la
// generación queda impar y la caché del producto no guarda saldos hasta la próxima escritura.
func (l *Ledger) closeWrite(ctx context.Context, productID string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.cfg.StorageTimeout)
	defer cancel()
	if err := l.cache.Invalidate(cctx, productID); err != nil {
		l.log.Error().Err(err).Str("product_id", productID).Msg("caché de saldo desactivada para el producto hasta la próxima escritura")
	}
}

func (l *Ledger) checkProduct(ctx context.Context, productID string) error {
	sctx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()
	p, err := l.products.GetByID(sctx, productID)
	if err != nil {
		return l.storageErr(ctx, err)
	}
	if p == nil || !p.Active {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProduct, productID)
	}
	return nil
}

// ListForProduct secuencia perezosa ordenada por (OccurredAt, ID). Cada recorrido vuelve a leer.
func (l *Ledger) ListForProduct(ctx context.Context, productID string, from, to *time.Time) iter.Seq2[entity.Movement, error] {
	return func(yield func(entity.Movement, error) bool) {
		sctx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
		defer cancel()
		for m, err := range l.movements.ListByProduct(sctx, productID, from, to) {
			if err != nil {
				yield(entity.Movement{}, l.storageErr(ctx, err))
				return
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

// ListByReference movimientos que comparten referencia (venta, orden, conversión).
func (l *Ledger) ListByReference(ctx context.Context, reference string) ([]entity.Movement, error) {
	sctx, cancel := context.WithTimeout(ctx, l.cfg.StorageTimeout)
	defer cancel()
	ms, err := l.movements.ListByReference(sctx, reference)
	if err != nil {
		return nil, l.storageErr(ctx, err)
	}
	return ms, nil
}

// storageErr traduce el vencimiento del timeout interno a ErrStorageUnavailable.
// La cancelación del llamador se devuelve tal cual.
func (l *Ledger) storageErr(parent context.Context, err error) error {
	if err == nil {
		return nil
	}
	if perr := parent.Err(); perr != nil {
		return perr
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
