package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clinica-vet-api/internal/application/billing"
	"github.com/jhoicas/clinica-vet-api/internal/application/cashflow"
	"github.com/jhoicas/clinica-vet-api/internal/application/catalog"
	"github.com/jhoicas/clinica-vet-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale       *billing.CreateSaleUseCase
	Receipt          *billing.ReceiptUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Supplies         *inventory.SupplyConsumptionUseCase
	StockReports     *inventory.StockReportUseCase
	CashFlow         *cashflow.LedgerUseCase
	Catalog          *catalog.UseCase
	JWTSecret        string
	JWTIssuer        string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	staff := RequireRole(RoleAdmin, RoleVeterinarian, RoleReception)
	clinical := RequireRole(RoleAdmin, RoleVeterinarian)
	adminOnly := RequireRole(RoleAdmin)

	// Ventas
	saleHandler := NewSaleHandler(deps.CreateSale, deps.Receipt)
	sales := protected.Group("/sales", staff)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Catalog)
	products := protected.Group("/products", staff)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Post("/", clinical, catalogHandler.CreateProduct)

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Supplies, deps.StockReports)
	services := protected.Group("/services", staff)
	services.Get("/", catalogHandler.ListServices)
	services.Get("/:id", catalogHandler.GetService)
	services.Post("/", clinical, catalogHandler.CreateService)
	services.Post("/:id/consume", clinical, inventoryHandler.ConsumeSupplies)

	// Inventario
	inv := protected.Group("/inventory", staff)
	inv.Post("/movements", clinical, inventoryHandler.RegisterMovement)
	inv.Get("/products/:id/movements", inventoryHandler.ListMovements)
	inv.Get("/products/:id/audit", clinical, inventoryHandler.Audit)
	inv.Get("/reports/low-stock", inventoryHandler.LowStock)
	inv.Get("/reports/expiring", inventoryHandler.Expiring)
	inv.Get("/reports/valuation", adminOnly, inventoryHandler.Valuation)

	// Caja
	cashHandler := NewCashFlowHandler(deps.CashFlow)
	cash := protected.Group("/cash-flow", staff)
	cash.Get("/", cashHandler.List)
	cash.Post("/", cashHandler.Create)
	cash.Delete("/:id", adminOnly, cashHandler.Delete)
}
