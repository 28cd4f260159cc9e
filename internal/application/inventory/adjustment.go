package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// Direcciones del ajuste manual.
const (
	AdjustIn  = "in"
	AdjustOut = "out"
)

// AdjustInput ajuste manual de inventario (conteo físico, vencidos, averías).
type AdjustInput struct {
	ProductID string
	Direction string // in | out
	Quantity  decimal.Decimal
	Note      string
	Reference string
	UserID    string
}

// AdjustmentUseCase ajustes manuales; la nota es obligatoria para auditoría.
type AdjustmentUseCase struct {
	ledger Appender
	log    *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(ledger Appender, log *logger.Logger) *AdjustmentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustmentUseCase{ledger: ledger, log: log.Named("adjustments")}
}

// Adjust registra ADJUST_IN o ADJUST_OUT.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.Movement, error) {
	note := strings.TrimSpace(in.Note)
	if note == "" {
		return nil, domain.ErrNoteRequired
	}
	var kind entity.MovementKind
	switch strings.ToLower(strings.TrimSpace(in.Direction)) {
	case AdjustIn:
		kind = entity.MovementAdjustIn
	case AdjustOut:
		kind = entity.MovementAdjustOut
	default:
		return nil, fmt.Errorf("%w: dirección %q (in|out)", domain.ErrInvalidInput, in.Direction)
	}
	m, err := uc.ledger.Append(ctx, AppendInput{
		ProductID: in.ProductID,
		Kind:      kind,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Note:      note,
		CreatedBy: in.UserID,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", m.ProductID).Str("kind", m.Kind.String()).Str("quantity", m.Quantity.String()).Msg("ajuste registrado")
	return m, nil
}
