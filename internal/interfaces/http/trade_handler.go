package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// TradeHandler recepciones de compra, ventas y anulaciones (protegido).
type TradeHandler struct {
	purchases *inventory.PurchaseUseCase
	sales     *inventory.SaleUseCase
	log       *logger.Logger
}

// NewTradeHandler construye el handler.
func NewTradeHandler(purchases *inventory.PurchaseUseCase, sales *inventory.SaleUseCase, log *logger.Logger) *TradeHandler {
	return &TradeHandler{purchases: purchases, sales: sales, log: log}
}

// ReceivePurchase godoc
// @Summary      Recepción de orden de compra
// @Description  PURCHASE_IN por lo recibido y RETURN_FROM_PURCHASE por lo rechazado, por línea.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "order_ref y líneas"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/receipts [post]
func (h *TradeHandler) ReceivePurchase(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]inventory.ReceiptLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.ReceiptLine{ProductID: l.ProductID, Received: l.Received, Rejected: l.Rejected})
	}
	written, err := h.purchases.ReceivePurchase(c.UserContext(), inventory.ReceiptInput{
		OrderRef:   in.OrderRef,
		ReceivedAt: in.ReceivedAt,
		Lines:      lines,
		UserID:     GetUserID(c),
	})
	if err != nil {
		if len(written) > 0 {
			h.log.Warn().Err(err).Str("order_ref", in.OrderRef).Int("written", len(written)).Msg("recepción parcial")
		}
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementList(written))
}

// FinalizeSale godoc
// @Summary      Descontar inventario de una venta
// @Description  Un SALE_OUT por línea. Si una línea falla, las anteriores se compensan.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "sale_ref y líneas"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *TradeHandler) FinalizeSale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lines := make([]inventory.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	written, err := h.sales.FinalizeSale(c.UserContext(), inventory.SaleInput{
		SaleRef: in.SaleRef,
		Lines:   lines,
		UserID:  GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementList(written))
}

// VoidSale godoc
// @Summary      Anular una venta
// @Description  RETURN_FROM_CUSTOMER por cada SALE_OUT de la venta, con referencia ANUL-<ref>.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ref   path  string               true   "Referencia de la venta"
// @Param        body  body  dto.VoidSaleRequest  false  "Motivo"
// @Success      201   {array}   dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{ref}/void [post]
func (h *TradeHandler) VoidSale(c *fiber.Ctx) error {
	var in dto.VoidSaleRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	written, err := h.sales.VoidSale(c.UserContext(), c.Params("ref"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementList(written))
}
