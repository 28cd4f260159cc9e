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

	_ "github.com/jhoicas/kardex-farmacia/docs"
	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/application/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/application/usecase"
	"github.com/jhoicas/kardex-farmacia/internal/domain/repository"
	infraexcel "github.com/jhoicas/kardex-farmacia/internal/infrastructure/excel"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/kardex-farmacia/internal/infrastructure/pdf"
	"github.com/jhoicas/kardex-farmacia/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/kardex-farmacia/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/kardex-farmacia/internal/interfaces/http"
	"github.com/jhoicas/kardex-farmacia/pkg/config"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// @title                       Kardex Farmacia API
// @version                     1.0
// @description                 Kardex de inventario de farmacia: movimientos, saldos, reportes y presentaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Ledger.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacenamiento del kardex: PostgreSQL o memoria (desarrollo y pruebas).
	var (
		txRunner  inventory.TxRunner
		products  repository.ProductRepository
		movements repository.MovementRepository
		profiles  repository.PresentationRepository
	)
	switch cfg.Ledger.Storage {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Ledger)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, cfg.DB, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		txRunner = postgres.NewTxRunner(pool)
		products = postgres.NewProductRepository(pool)
		movements = postgres.NewMovementRepository(pool)
		profiles = postgres.NewPresentationRepository(pool)
	default:
		store := memory.NewMovementStore()
		txRunner = memory.NewTxRunner(store)
		products = memory.NewProductRepository()
		movements = store
		profiles = memory.NewPresentationRepository()
		log.Warn().Msg("kardex en memoria: los movimientos se pierden al reiniciar")
	}

	// Redis opcional: caché de saldos compartida y candado de procesos batch entre réplicas.
	var (
		cache   inventory.BalanceCache = memory.NewBalanceCache()
		jobLock presentation.JobLock   = memory.NewJobLock()
	)
	if cfg.Ledger.Storage == config.StoragePostgres && !cfg.Redis.Enabled() {
		// Una caché en proceso no ve las escrituras de otras réplicas.
		cache = inventory.NopCache{}
		log.Warn().Msg("PostgreSQL sin Redis: caché de saldos desactivada")
	}
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		cache = infraredis.NewBalanceCache(rdb)
		jobLock = infraredis.NewJobLock(rdb, log)
	}

	ledger := inventory.NewLedger(txRunner, products, movements, cache, log, inventory.LedgerConfig{
		StorageTimeout: cfg.Ledger.StorageTimeout,
		MaxRetries:     cfg.Ledger.MaxAppendRetries,
	})
	projector := inventory.NewProjector(ledger, products, cache, cfg.Ledger.BalanceCacheTTL, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Kardex Farmacia API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Ledger.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(products, profiles, nil, log),
		Ledger:        ledger,
		Projector:     projector,
		Adjustments:   inventory.NewAdjustmentUseCase(ledger, log),
		Conversions:   inventory.NewConversionUseCase(ledger, log),
		Purchases:     inventory.NewPurchaseUseCase(ledger, log),
		Sales:         inventory.NewSaleUseCase(ledger, ledger, log),
		Reports:       inventory.NewReportUseCase(projector, products),
		Presentations: presentation.NewUseCase(nil, products, profiles, jobLock, log),
		Exporters: []inventory.KardexExporter{
			infraexcel.NewKardexExcelExporter(),
			infrapdf.NewKardexPDFGenerator(cfg.App.Name),
		},
		ExpiryWindow: time.Duration(cfg.Reports.ExpiryWindowDays) * 24 * time.Hour,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log,
	})

	go func() {
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
