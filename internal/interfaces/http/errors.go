package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: los errores específicos antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{domain.ErrProductNotFound, fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{domain.ErrServiceNotFound, fiber.StatusNotFound, "SERVICE_NOT_FOUND"},
	{domain.ErrAppointmentNotFound, fiber.StatusNotFound, "APPOINTMENT_NOT_FOUND"},
	{domain.ErrServiceInactive, fiber.StatusUnprocessableEntity, "SERVICE_INACTIVE"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrNoOpAdjustment, fiber.StatusConflict, "NOOP_ADJUSTMENT"},
	{domain.ErrSystemGeneratedEntry, fiber.StatusConflict, "SYSTEM_GENERATED_ENTRY"},
	{domain.ErrTransactionAborted, fiber.StatusServiceUnavailable, "TRANSACTION_ABORTED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError traduce un error de dominio a su respuesta HTTP.
// Si el error identifica una línea (LineError), la respuesta incluye entity_id y line.
func writeError(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	status := fiber.StatusInternalServerError
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			status, resp.Code, resp.Message = m.status, m.code, err.Error()
			break
		}
	}
	if le, ok := domain.AsLineError(err); ok {
		resp.EntityID = le.EntityID
		if le.Line >= 0 {
			line := le.Line
			resp.Line = &line
		}
	}
	return c.Status(status).JSON(resp)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
