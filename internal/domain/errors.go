package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Kardex: validación de movimientos.
	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor que cero")
	ErrUnknownMovementKind = errors.New("tipo de movimiento desconocido")
	ErrUnknownProduct      = errors.New("producto inexistente o inactivo")
	ErrSignMismatch        = errors.New("el signo del movimiento no corresponde a su tipo")
	ErrNoteRequired        = errors.New("la nota es obligatoria para ajustes manuales")

	// Fallas transitorias: nada se escribió, se puede reintentar.
	ErrStorageUnavailable     = errors.New("almacenamiento no disponible")
	ErrConcurrentModification = errors.New("modificación concurrente, reintente la operación")

	ErrJobInProgress = errors.New("ya hay un proceso en ejecución")
)

// InsufficientStockError detalla el faltante. errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		e.ProductID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IsRetryable indica si la operación puede reintentarse sin cambios (nada fue escrito).
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, ErrConcurrentModification) ||
		errors.Is(err, context.DeadlineExceeded)
}
