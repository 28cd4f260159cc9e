package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// voidPrefix antecede la referencia de la venta en los movimientos de anulación.
const voidPrefix = "ANUL-"

// SaleLine producto y cantidad vendida.
type SaleLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// SaleInput venta finalizada en el punto de venta.
type SaleInput struct {
	SaleRef string
	Lines   []SaleLine
	UserID  string
}

// SaleUseCase descuenta inventario por ventas y las anula con movimientos compensatorios.
type SaleUseCase struct {
	ledger Appender
	refs   ReferenceLister
	log    *logger.Logger
}

// ReferenceLister lectura de movimientos por referencia; la implementa Ledger.
type ReferenceLister interface {
	ListByReference(ctx context.Context, reference string) ([]entity.Movement, error)
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(ledger Appender, refs ReferenceLister, log *logger.Logger) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleUseCase{ledger: ledger, refs: refs, log: log.Named("sales")}
}

func validateLines(ref string, lines []SaleLine) error {
	if strings.TrimSpace(ref) == "" || len(lines) == 0 {
		return fmt.Errorf("%w: referencia y líneas son obligatorias", domain.ErrInvalidInput)
	}
	for i, ln := range lines {
		if ln.ProductID == "" {
			return fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidInput, i+1)
		}
		if !ln.Quantity.IsPositive() {
			return fmt.Errorf("%w: línea %d", domain.ErrInvalidQuantity, i+1)
		}
	}
	return nil
}

// FinalizeSale registra un SALE_OUT por línea. Si una línea falla, las anteriores se
// compensan con RETURN_FROM_CUSTOMER y se devuelve el error de la línea que falló.
func (uc *SaleUseCase) FinalizeSale(ctx context.Context, in SaleInput) ([]entity.Movement, error) {
	ref := strings.TrimSpace(in.SaleRef)
	if err := validateLines(ref, in.Lines); err != nil {
		return nil, err
	}

	written := make([]entity.Movement, 0, len(in.Lines))
	for i, ln := range in.Lines {
		m, err := uc.ledger.Append(ctx, AppendInput{
			ProductID: ln.ProductID,
			Kind:      entity.MovementSaleOut,
			Quantity:  ln.Quantity,
			Reference: ref,
			CreatedBy: in.UserID,
		})
		if err != nil {
			if cerr := uc.compensate(context.WithoutCancel(ctx), ref, written, in.UserID); cerr != nil {
				return nil, errors.Join(fmt.Errorf("línea %d: %w", i+1, err), cerr)
			}
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		written = append(written, *m)
	}
	uc.log.Info().Str("sale_ref", ref).Int("lines", len(written)).Msg("venta registrada")
	return written, nil
}

func (uc *SaleUseCase) compensate(ctx context.Context, ref string, written []entity.Movement, userID string) error {
	var errs []error
	for _, m := range written {
		_, err := uc.ledger.Append(ctx, AppendInput{
			ProductID: m.ProductID,
			Kind:      entity.MovementReturnFromCustomer,
			Quantity:  m.Quantity,
			Reference: ref,
			Note:      "anulación automática",
			CreatedBy: userID,
		})
		if err != nil {
			uc.log.Error().Err(err).Str("sale_ref", ref).Str("product_id", m.ProductID).Msg("no se pudo compensar la venta")
			errs = append(errs, fmt.Errorf("compensación %s: %w", m.ProductID, err))
		}
	}
	return errors.Join(errs...)
}

// VoidSale anula una venta registrando RETURN_FROM_CUSTOMER por el neto vendido de cada producto.
// La anulación usa la referencia "ANUL-<venta>"; una segunda anulación devuelve ErrConflict.
func (uc *SaleUseCase) VoidSale(ctx context.Context, saleRef, userID, reason string) ([]entity.Movement, error) {
	ref := strings.TrimSpace(saleRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: referencia obligatoria", domain.ErrInvalidInput)
	}
	voided, err := uc.refs.ListByReference(ctx, voidPrefix+ref)
	if err != nil {
		return nil, err
	}
	if len(voided) > 0 {
		return nil, fmt.Errorf("%w: la venta %s ya fue anulada", domain.ErrConflict, ref)
	}
	original, err := uc.refs.ListByReference(ctx, ref)
	if err != nil {
		return nil, err
	}

	note := "anulación de venta"
	if r := strings.TrimSpace(reason); r != "" {
		note = r
	}
	// Neto vendido por producto: una venta compensada automáticamente ya no tiene nada que anular.
	pending := make(map[string]decimal.Decimal)
	var order []string
	for _, m := range original {
		switch m.Kind {
		case entity.MovementSaleOut:
			if _, ok := pending[m.ProductID]; !ok {
				order = append(order, m.ProductID)
			}
			pending[m.ProductID] = pending[m.ProductID].Add(m.Quantity)
		case entity.MovementReturnFromCustomer:
			pending[m.ProductID] = pending[m.ProductID].Sub(m.Quantity)
		}
	}
	var out []entity.Movement
	for _, productID := range order {
		qty := pending[productID]
		if !qty.IsPositive() {
			continue
		}
		rm, err := uc.ledger.Append(ctx, AppendInput{
			ProductID: productID,
			Kind:      entity.MovementReturnFromCustomer,
			Quantity:  qty,
			Reference: voidPrefix + ref,
			Note:      note,
			CreatedBy: userID,
		})
		if err != nil {
			return out, err
		}
		out = append(out, *rm)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, ref)
	}
	uc.log.Info().Str("sale_ref", ref).Int("lines", len(out)).Msg("venta anulada")
	return out, nil
}
