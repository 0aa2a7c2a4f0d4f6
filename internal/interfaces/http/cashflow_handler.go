package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/cashflow"
	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/domain"
)

const dateLayout = "2006-01-02"

// CashFlowHandler libro de caja (protegido).
type CashFlowHandler struct {
	uc *cashflow.LedgerUseCase
}

// NewCashFlowHandler construye el handler.
func NewCashFlowHandler(uc *cashflow.LedgerUseCase) *CashFlowHandler {
	return &CashFlowHandler{uc: uc}
}

// List godoc
// @Summary      Listar movimientos de caja
// @Tags         cash-flow
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CashFlowListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash-flow [get]
func (h *CashFlowHandler) List(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), from, to, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento de caja manual
// @Tags         cash-flow
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCashFlowEntryRequest  true  "direction (INGRESO|EGRESO), category, amount"
// @Success      201   {object}  dto.CashFlowEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cash-flow [post]
func (h *CashFlowHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCashFlowEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterEntry(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento de caja manual
// @Description  Los movimientos generados por una venta no se pueden eliminar.
// @Tags         cash-flow
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cash-flow/{id} [delete]
func (h *CashFlowHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDate interpreta YYYY-MM-DD en UTC. Con endOfDay devuelve el último instante del día.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q, se espera YYYY-MM-DD", domain.ErrInvalidInput, raw)
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return &d, nil
}
