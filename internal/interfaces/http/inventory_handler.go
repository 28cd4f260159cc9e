package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/domain/entity"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP del kardex (protegido).
type InventoryHandler struct {
	ledger      *inventory.Ledger
	projector   *inventory.Projector
	adjustments *inventory.AdjustmentUseCase
	conversions *inventory.ConversionUseCase
	reports     *inventory.ReportUseCase
	exporters   map[string]inventory.KardexExporter
	log         *logger.Logger
}

// NewInventoryHandler construye el handler. exporters se indexan por extensión (xlsx, pdf).
func NewInventoryHandler(
	ledger *inventory.Ledger,
	projector *inventory.Projector,
	adjustments *inventory.AdjustmentUseCase,
	conversions *inventory.ConversionUseCase,
	reports *inventory.ReportUseCase,
	exporters []inventory.KardexExporter,
	log *logger.Logger,
) *InventoryHandler {
	byExt := make(map[string]inventory.KardexExporter, len(exporters))
	for _, e := range exporters {
		byExt[e.Extension()] = e
	}
	return &InventoryHandler{
		ledger:      ledger,
		projector:   projector,
		adjustments: adjustments,
		conversions: conversions,
		reports:     reports,
		exporters:   byExt,
		log:         log,
	}
}

// AppendMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Registra un movimiento en el kardex. Las salidas se rechazan si dejan el saldo negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendMovementRequest  true  "product_id, kind, quantity, reference, occurred_at, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	var in dto.AppendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	kind, err := entity.ParseMovementKind(strings.ToUpper(strings.TrimSpace(in.Kind)))
	if err != nil {
		return writeError(c, h.log, err)
	}
	m, err := h.ledger.Append(c.UserContext(), inventory.AppendInput{
		ProductID:  in.ProductID,
		Kind:       kind,
		Quantity:   in.Quantity,
		Reference:  in.Reference,
		OccurredAt: in.OccurredAt,
		Note:       in.Note,
		CreatedBy:  GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(*m))
}

// Balance godoc
// @Summary      Saldo de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        as_of  query  string  false  "Saldo a una fecha (RFC3339 o YYYY-MM-DD)"
// @Success      200    {object}  dto.BalanceResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/balance [get]
func (h *InventoryHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	asOf, err := queryTime(c, "as_of", true)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.BalanceResponse{ProductID: id, AsOf: asOf}
	if asOf != nil {
		out.Balance, err = h.projector.BalanceAsOf(c.UserContext(), id, *asOf)
	} else {
		out.Balance, err = h.projector.CurrentBalance(c.UserContext(), id)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Desde (inclusive)"
// @Param        to    query  string  false  "Hasta (inclusive)"
// @Success      200   {array}   dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, to, err := queryWindow(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	entries, err := h.projector.Kardex(c.UserContext(), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.MovementResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewMovementResponse(e.Movement))
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Kardex de un producto
// @Description  Movimientos con saldo antes y después. format=xlsx|pdf descarga el archivo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "Desde (inclusive)"
// @Param        to      query  string  false  "Hasta (inclusive)"
// @Param        format  query  string  false  "json (defecto), xlsx o pdf"
// @Success      200     {object}  dto.KardexResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/kardex [get]
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	from, to, err := queryWindow(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	format := strings.ToLower(c.Query("format", "json"))
	var exporter inventory.KardexExporter
	if format != "json" {
		var ok bool
		if exporter, ok = h.exporters[format]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, xlsx o pdf"})
		}
	}

	report, err := h.reports.KardexReport(c.UserContext(), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if exporter == nil {
		return c.JSON(newKardexResponse(report))
	}

	body, err := exporter.ExportKardex(c.UserContext(), report)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, exporter.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kardex-%s.%s"`, report.Product.SKU, exporter.Extension()))
	return c.Send(body)
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "direction in|out; note obligatoria"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.adjustments.Adjust(c.UserContext(), inventory.AdjustInput{
		ProductID: in.ProductID,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		Note:      in.Note,
		Reference: in.Reference,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(*m))
}

// Convert godoc
// @Summary      Conversión entre productos
// @Description  Descuenta el origen (CONVERSION_OUT) y suma el destino (CONVERSION_IN) con la misma referencia.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConversionRequest  true  "origen, destino y cantidades"
// @Success      201   {object}  dto.ConversionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/conversions [post]
func (h *InventoryHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.conversions.Convert(c.UserContext(), inventory.ConversionInput{
		SourceProductID: in.SourceProductID,
		TargetProductID: in.TargetProductID,
		SourceQuantity:  in.SourceQuantity,
		TargetQuantity:  in.TargetQuantity,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ConversionResponse{
		Reference: res.Reference,
		Out:       dto.NewMovementResponse(res.Out),
		In:        dto.NewMovementResponse(res.In),
	})
}

func newKardexResponse(r *inventory.KardexReport) dto.KardexResponse {
	entries := make([]dto.KardexEntryResponse, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, dto.KardexEntryResponse{
			MovementResponse: dto.NewMovementResponse(e.Movement),
			BalanceBefore:    e.BalanceBefore,
			BalanceAfter:     e.BalanceAfter,
		})
	}
	return dto.KardexResponse{
		ProductID:      r.Product.ID,
		SKU:            r.Product.SKU,
		ProductName:    r.Product.Name,
		From:           r.From,
		To:             r.To,
		OpeningBalance: r.Opening,
		ClosingBalance: r.Closing,
		Entries:        entries,
	}
}
