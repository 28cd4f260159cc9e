package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// ConversionInput desarme de un producto en otro (ej. blister → tabletas sueltas).
type ConversionInput struct {
	SourceProductID string
	TargetProductID string
	SourceQuantity  decimal.Decimal
	TargetQuantity  decimal.Decimal
	UserID          string
}

// ConversionResult par de movimientos con la referencia compartida.
type ConversionResult struct {
	Reference string
	Out       entity.Movement
	In        entity.Movement
}

// ConversionUseCase registra conversiones como CONVERSION_OUT + CONVERSION_IN.
type ConversionUseCase struct {
	ledger Appender
	log    *logger.Logger
	newRef func() string
}

// NewConversionUseCase construye el caso de uso.
func NewConversionUseCase(ledger Appender, log *logger.Logger) *ConversionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ConversionUseCase{
		ledger: ledger,
		log:    log.Named("conversions"),
		newRef: func() string { return "CONV-" + uuid.New().String() },
	}
}

// Convert descuenta el origen y luego suma el destino con la misma referencia.
// Si la entrada falla con la salida ya registrada, revierte el origen con ADJUST_IN.
func (uc *ConversionUseCase) Convert(ctx context.Context, in ConversionInput) (*ConversionResult, error) {
	if in.SourceProductID == "" || in.TargetProductID == "" {
		return nil, fmt.Errorf("%w: origen y destino son obligatorios", domain.ErrInvalidInput)
	}
	if in.SourceProductID == in.TargetProductID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}
	if !in.SourceQuantity.IsPositive() || !in.TargetQuantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	ref := uc.newRef()
	out, err := uc.ledger.Append(ctx, AppendInput{
		ProductID: in.SourceProductID,
		Kind:      entity.MovementConversionOut,
		Quantity:  in.SourceQuantity,
		Reference: ref,
		Note:      "conversión hacia " + in.TargetProductID,
		CreatedBy: in.UserID,
	})
	if err != nil {
		return nil, err
	}

	inMov, err := uc.ledger.Append(ctx, AppendInput{
		ProductID: in.TargetProductID,
		Kind:      entity.MovementConversionIn,
		Quantity:  in.TargetQuantity,
		Reference: ref,
		Note:      "conversión desde " + in.SourceProductID,
		CreatedBy: in.UserID,
	})
	if err != nil {
		_, rerr := uc.ledger.Append(context.WithoutCancel(ctx), AppendInput{
			ProductID: in.SourceProductID,
			Kind:      entity.MovementAdjustIn,
			Quantity:  in.SourceQuantity,
			Reference: ref,
			Note:      "reverso de conversión fallida",
			CreatedBy: in.UserID,
		})
		if rerr != nil {
			uc.log.Error().Err(rerr).Str("reference", ref).Msg("no se pudo revertir la conversión")
			return nil, errors.Join(err, fmt.Errorf("reverso %s: %w", ref, rerr))
		}
		return nil, err
	}

	uc.log.Info().Str("reference", ref).
		Str("source", in.SourceProductID).Str("target", in.TargetProductID).
		Msg("conversión registrada")
	return &ConversionResult{Reference: ref, Out: *out, In: *inMov}, nil
}
