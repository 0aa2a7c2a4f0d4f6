package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/catalog"
	"github.com/jhoicas/clinica-vet-api/internal/application/dto"
)

// CatalogHandler productos y servicios (protegido).
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListProducts(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateService godoc
// @Summary      Crear servicio
// @Description  Los insumos deben referenciar productos existentes.
// @Tags         services
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateServiceRequest  true  "datos del servicio e insumos"
// @Success      201   {object}  dto.ServiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/services [post]
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateService(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetService godoc
// @Summary      Obtener servicio
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del servicio"
// @Success      200  {object}  dto.ServiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/services/{id} [get]
func (h *CatalogHandler) GetService(c *fiber.Ctx) error {
	out, err := h.uc.GetService(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListServices godoc
// @Summary      Listar servicios
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ServiceListResponse
// @Router       /api/services [get]
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListServices(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
