package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
	"github.com/jhoicas/clinica-vet-api/internal/application/inventory"
)

// InventoryHandler movimientos, consumo de insumos y reportes de stock (protegido).
type InventoryHandler struct {
	ledger   *inventory.RegisterMovementUseCase
	supplies *inventory.SupplyConsumptionUseCase
	reports  *inventory.StockReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.RegisterMovementUseCase,
	supplies *inventory.SupplyConsumptionUseCase,
	reports *inventory.StockReportUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, supplies: supplies, reports: reports}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  ENTRADA y SALIDA reciben la cantidad a sumar o restar; AJUSTE recibe el stock objetivo y un motivo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "product_id, type, quantity, reason, unit_cost (entradas)"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.ledger.ListMovementsResponse(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Verificar el libro de inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerAuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/audit [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	out, err := h.ledger.VerifyLedgerResponse(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConsumeSupplies godoc
// @Summary      Registrar la ejecución de un servicio
// @Description  Descuenta todos los insumos del servicio; si alguno no alcanza no se descuenta ninguno.
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del servicio"
// @Success      201  {object}  dto.ConsumeSuppliesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/services/{id}/consume [post]
func (h *InventoryHandler) ConsumeSupplies(c *fiber.Ctx) error {
	out, err := h.supplies.ConsumeSuppliesResponse(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo el umbral de reposición
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/reports/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Expiring godoc
// @Summary      Productos por vencer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (por defecto 30)"
// @Success      200   {array}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reports/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.reports.Expiring(c.UserContext(), c.QueryInt("days", 30))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Valuation godoc
// @Summary      Valorización del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockValuationResponse
// @Router       /api/inventory/reports/valuation [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.reports.Valuation(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
