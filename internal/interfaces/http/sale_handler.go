package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/billing"
	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
)

// SaleHandler ventas y comprobantes (protegido).
type SaleHandler struct {
	createSale *billing.CreateSaleUseCase
	receipt    *billing.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(createSale *billing.CreateSaleUseCase, receipt *billing.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{createSale: createSale, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, completa la cita (si se envía) y asienta el ingreso en caja en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSaleRequest  true  "productos, servicios, medio de pago y referencias opcionales"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ActorID = GetUserID(c)
	out, err := h.createSale.CreateSale(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.createSale.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar comprobante PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	data, filename, err := h.receipt.ReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
