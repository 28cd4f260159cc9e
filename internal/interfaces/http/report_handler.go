package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// ReportHandler reportes de inventario (protegido).
type ReportHandler struct {
	reports      *inventory.ReportUseCase
	expiryWindow time.Duration
	log          *logger.Logger
}

// NewReportHandler construye el handler. expiryWindow es la ventana por defecto de near-expiry.
func NewReportHandler(reports *inventory.ReportUseCase, expiryWindow time.Duration, log *logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, expiryWindow: expiryWindow, log: log}
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos activos en o bajo su stock mínimo, con la cantidad sugerida de pedido.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// NearExpiry godoc
// @Summary      Productos próximos a vencer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"
// @Success      200   {array}   dto.NearExpiryItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/near-expiry [get]
func (h *ReportHandler) NearExpiry(c *fiber.Ctx) error {
	within := h.expiryWindow
	if c.Query("days") != "" {
		days := c.QueryInt("days", -1)
		if days < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "days debe ser un entero >= 0"})
		}
		within = time.Duration(days) * 24 * time.Hour
	}
	items, err := h.reports.NearExpiry(c.UserContext(), within)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}
