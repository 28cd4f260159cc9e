package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-farmacia/internal/application/inventory"
	"github.com/jhoicas/kardex-farmacia/internal/application/presentation"
	"github.com/jhoicas/kardex-farmacia/internal/application/usecase"
	"github.com/jhoicas/kardex-farmacia/pkg/jwt"
	"github.com/jhoicas/kardex-farmacia/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	Ledger        *inventory.Ledger
	Projector     *inventory.Projector
	Adjustments   *inventory.AdjustmentUseCase
	Conversions   *inventory.ConversionUseCase
	Purchases     *inventory.PurchaseUseCase
	Sales         *inventory.SaleUseCase
	Reports       *inventory.ReportUseCase
	Presentations *presentation.UseCase
	Exporters     []inventory.KardexExporter
	ExpiryWindow  time.Duration
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api", RequestLogger(log.Named("http")))

	// Todas las rutas requieren Bearer Token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleVendedor)
	warehouse := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	sellers := RequireRole(jwt.RoleAdmin, jwt.RoleVendedor)
	admin := RequireRole(jwt.RoleAdmin)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Post("/", admin, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)

	// Kardex
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.Ledger, deps.Projector, deps.Adjustments, deps.Conversions, deps.Reports, deps.Exporters, log,
	)
	invGroup.Post("/movements", warehouse, inventoryHandler.AppendMovement)
	invGroup.Post("/adjustments", warehouse, inventoryHandler.Adjust)
	invGroup.Post("/conversions", warehouse, inventoryHandler.Convert)
	invGroup.Get("/products/:id/balance", anyRole, inventoryHandler.Balance)
	invGroup.Get("/products/:id/movements", anyRole, inventoryHandler.Movements)
	invGroup.Get("/products/:id/kardex", anyRole, inventoryHandler.Kardex)

	// Compras y ventas
	tradeHandler := NewTradeHandler(deps.Purchases, deps.Sales, log)
	protected.Post("/purchases/receipts", warehouse, tradeHandler.ReceivePurchase)
	sales := protected.Group("/sales")
	sales.Post("/", sellers, tradeHandler.FinalizeSale)
	sales.Post("/:ref/void", sellers, tradeHandler.VoidSale)

	// Reportes
	reports := protected.Group("/reports", anyRole)
	reportHandler := NewReportHandler(deps.Reports, deps.ExpiryWindow, log)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/near-expiry", reportHandler.NearExpiry)

	// Presentaciones; preview antes de /:productId
	presentations := protected.Group("/presentations")
	presentationHandler := NewPresentationHandler(deps.Presentations, log)
	presentations.Get("/preview", anyRole, presentationHandler.Preview)
	presentations.Post("/reclassify", admin, presentationHandler.Reclassify)
	presentations.Get("/:productId", anyRole, presentationHandler.Get)
}
