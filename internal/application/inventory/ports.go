package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de la sección crítica del producto: en Postgres una transacción
// con la fila del producto bloqueada (SELECT ... FOR UPDATE); en memoria un mutex por producto.
// El repositorio que recibe fn está atado a esa transacción. Si fn falla no se escribe nada.
type TxRunner interface {
	RunLocked(ctx context.Context, productID string, fn func(ctx context.Context, movRepo repository.MovementRepository) error) error
}

// Appender registra un movimiento. Lo implementa Ledger; los casos de uso de compras,
// ventas, ajustes y conversiones dependen solo de esto.
type Appender interface {
	Append(ctx context.Context, in AppendInput) (*entity.Movement, error)
}

// BalanceCache caché opcional de saldos actuales. Nunca se consulta para validar stock.
//
// Cada producto tiene una generación que Invalidate incrementa. El ledger invalida dos veces
// por escritura: dentro de la sección crítica, antes de confirmar, y otra vez al confirmar.
// Entre ambas la generación es impar y Store no guarda nada. Get devuelve la generación
// vigente y Store solo guarda si sigue siendo la misma y es par, de modo que un lector lento
// no puede pisar la invalidación de un escritor. Si la segunda invalidación falla, la caché
// del producto queda desactivada hasta la próxima escritura.
type BalanceCache interface {
	Get(ctx context.Context, productID string) (balance decimal.Decimal, hit bool, gen int64, err error)
	Store(ctx context.Context, productID string, gen int64, balance decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, productID string) error
}

// NopCache caché vacía.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (decimal.Decimal, bool, int64, error) {
	return decimal.Zero, false, 0, nil
}
func (NopCache) Store(context.Context, string, int64, decimal.Decimal, time.Duration) error {
	return nil
}
func (NopCache) Invalidate(context.Context, string) error { return nil }

// KardexExporter serializa un reporte de kardex (Excel, PDF).
type KardexExporter interface {
	ExportKardex(ctx context.Context, report *KardexReport) ([]byte, error)
	ContentType() string
	Extension() string
}
