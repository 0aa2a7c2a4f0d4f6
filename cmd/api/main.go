package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/clinica-vet-api/internal/application/billing"
	"github.com/jhoicas/clinica-vet-api/internal/application/cashflow"
	"github.com/jhoicas/clinica-vet-api/internal/application/catalog"
	"github.com/jhoicas/clinica-vet-api/internal/application/inventory"
	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/clinica-vet-api/internal/infrastructure/pdf"
	"github.com/jhoicas/clinica-vet-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/clinica-vet-api/internal/interfaces/http"
	"github.com/jhoicas/clinica-vet-api/pkg/config"
	"github.com/jhoicas/clinica-vet-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Str("tax_rate", cfg.Sale.TaxRate.String()).
		Bool("consume_service_supplies", cfg.Sale.ConsumeServiceSupplies).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		uow   repository.UnitOfWork
		repos repository.TxRepos
	)
	switch cfg.Store.Driver {
	case config.DriverMemory:
		store := memory.New()
		uow, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		runner := postgres.NewTxRunner(pool, cfg.DB.TxMaxAttempts, log.Component("tx"))
		uow, repos = runner, runner.Repos()
	}

	ledger := inventory.NewRegisterMovementUseCase(uow, repos.Products, repos.Movements, log.Component("inventory"))
	supplies := inventory.NewSupplyConsumptionUseCase(uow, repos.Services, ledger, log.Component("supplies"))
	cash := cashflow.NewLedgerUseCase(uow, repos.CashFlow, log.Component("cashflow"))
	createSale := billing.NewCreateSaleUseCase(uow, repos, ledger, supplies, cash, billing.PricingConfig{
		TaxRate:                cfg.Sale.TaxRate,
		ConsumeServiceSupplies: cfg.Sale.ConsumeServiceSupplies,
	}, log.Component("sales"))

	// PDF: comprobante de venta
	receiptUC := billing.NewReceiptUseCase(repos.Sales, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name + " API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale:       createSale,
		Receipt:          receiptUC,
		RegisterMovement: ledger,
		Supplies:         supplies,
		StockReports:     inventory.NewStockReportUseCase(repos.Products),
		CashFlow:         cash,
		Catalog:          catalog.NewUseCase(repos.Products, repos.Services),
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
