package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/dto"
	"github.com/jhoicas/kardex-farmacia/internal/domain"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings en orden: el primero que coincida con errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrUnknownMovementKind, fiber.StatusBadRequest, "UNKNOWN_MOVEMENT_KIND"},
	{domain.ErrNoteRequired, fiber.StatusBadRequest, "NOTE_REQUIRED"},
	{domain.ErrSignMismatch, fiber.StatusBadRequest, "SIGN_MISMATCH"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnknownProduct, fiber.StatusNotFound, "UNKNOWN_PRODUCT"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrJobInProgress, fiber.StatusConflict, "JOB_IN_PROGRESS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{domain.ErrStorageUnavailable, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
	{context.DeadlineExceeded, fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"},
}

// writeError traduce un error de dominio a dto.ErrorResponse. Lo no reconocido es 500
// y se registra sin exponer el detalle.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			retryable := domain.IsRetryable(err)
			if retryable {
				log.Warn().Err(err).Str("path", c.Path()).Str("code", m.code).Msg("operación reintentable")
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error(), Retryable: retryable})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
