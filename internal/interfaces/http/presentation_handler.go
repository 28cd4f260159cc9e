package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/application/presentation"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// PresentationHandler clasificación de presentaciones (protegido).
type PresentationHandler struct {
	uc  *presentation.UseCase
	log *logger.Logger
}

// NewPresentationHandler construye el handler.
func NewPresentationHandler(uc *presentation.UseCase, log *logger.Logger) *PresentationHandler {
	return &PresentationHandler{uc: uc, log: log}
}

// Preview godoc
// @Summary      Clasificar un nombre
// @Description  Devuelve la presentación inferida del nombre sin guardar nada.
// @Tags         presentations
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  true  "Nombre comercial"
// @Success      200   {object}  dto.PresentationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/presentations/preview [get]
func (h *PresentationHandler) Preview(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out := dto.NewPresentationResponse(h.uc.Preview(name))
	out.Name = name
	return c.JSON(out)
}

// Get godoc
// @Summary      Presentación guardada de un producto
// @Tags         presentations
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.PresentationResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/presentations/{productId} [get]
func (h *PresentationHandler) Get(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewPresentationResponse(*p))
}

// Reclassify godoc
// @Summary      Reclasificar el catálogo
// @Tags         presentations
// @Security     Bearer
// @Produce      json
// @Param        only_missing  query  bool  false  "Solo productos sin perfil"
// @Param        dry_run       query  bool  false  "No guardar"
// @Success      200           {object}  dto.ClassificationSummaryResponse
// @Failure      409           {object}  dto.ErrorResponse
// @Router       /api/presentations/reclassify [post]
func (h *PresentationHandler) Reclassify(c *fiber.Ctx) error {
	sum, err := h.uc.ReclassifyCatalog(c.UserContext(), c.QueryBool("only_missing"), c.QueryBool("dry_run"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	byKind := make(map[string]int, len(sum.ByKind))
	for k, n := range sum.ByKind {
		byKind[string(k)] = n
	}
	return c.JSON(dto.ClassificationSummaryResponse{
		Scanned:    sum.Scanned,
		Classified: sum.Classified,
		Skipped:    sum.Skipped,
		DryRun:     sum.DryRun,
		ByKind:     byKind,
	})
}
