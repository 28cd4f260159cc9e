package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// ReceiptLine una línea de la recepción de una orden de compra.
type ReceiptLine struct {
	ProductID string
	Received  decimal.Decimal
	Rejected  decimal.Decimal // devuelto al proveedor en la misma recepción
}

// ReceiptInput recepción de mercancía contra una orden de compra.
type ReceiptInput struct {
	OrderRef   string
	ReceivedAt *time.Time
	Lines      []ReceiptLine
	UserID     string
}

// PurchaseUseCase registra las entradas por compras.
type PurchaseUseCase struct {
	ledger Appender
	log    *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(ledger Appender, log *logger.Logger) *PurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseUseCase{ledger: ledger, log: log.Named("purchases")}
}

// ReceivePurchase por línea registra PURCHASE_IN por lo recibido y, si hubo rechazo,
// RETURN_FROM_PURCHASE por lo rechazado. Ante un error se detiene y devuelve lo ya escrito
// junto con el error; las entradas registradas son válidas por sí solas.
func (uc *PurchaseUseCase) ReceivePurchase(ctx context.Context, in ReceiptInput) ([]entity.Movement, error) {
	ref := strings.TrimSpace(in.OrderRef)
	if ref == "" || len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: orden y líneas son obligatorias", domain.ErrInvalidInput)
	}
	for i, ln := range in.Lines {
		if ln.ProductID == "" || !ln.Received.IsPositive() || ln.Rejected.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d", domain.ErrInvalidInput, i+1)
		}
		if ln.Rejected.GreaterThan(ln.Received) {
			return nil, fmt.Errorf("%w: línea %d rechaza más de lo recibido", domain.ErrInvalidInput, i+1)
		}
	}

	written := make([]entity.Movement, 0, len(in.Lines))
	for _, ln := range in.Lines {
		m, err := uc.ledger.Append(ctx, AppendInput{
			ProductID:  ln.ProductID,
			Kind:       entity.MovementPurchaseIn,
			Quantity:   ln.Received,
			Reference:  ref,
			OccurredAt: in.ReceivedAt,
			CreatedBy:  in.UserID,
		})
		if err != nil {
			return written, err
		}
		written = append(written, *m)

		if ln.Rejected.IsPositive() {
			m, err = uc.ledger.Append(ctx, AppendInput{
				ProductID:  ln.ProductID,
				Kind:       entity.MovementReturnFromPurchase,
				Quantity:   ln.Rejected,
				Reference:  ref,
				OccurredAt: in.ReceivedAt,
				Note:       "rechazo en recepción",
				CreatedBy:  in.UserID,
			})
			if err != nil {
				return written, err
			}
			written = append(written, *m)
		}
	}
	uc.log.Info().Str("order_ref", ref).Int("movements", len(written)).Msg("recepción registrada")
	return written, nil
}
