package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stockmaster/stockmaster-api/internal/application/analytics"
	"github.com/stockmaster/stockmaster-api/internal/application/auth"
	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/application/stock"
	"github.com/stockmaster/stockmaster-api/internal/application/usecase"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.LocationUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	OperationUC *operations.UseCase
	StockUC     *stock.UseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro reservado a admin
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Delete)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), locationHandler.Update)
	locations.Delete("/:id", RequireRole(entity.RoleAdmin), locationHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Products + stock derivado (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/stock", productHandler.StockAt)
	products.Get("/:id/ledger", productHandler.Ledger)
	products.Get("/:id/reconcile", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Reconcile)

	// Operations (protegido)
	ops := protected.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC)
	ops.Post("/receipts", operationHandler.CreateReceipt)
	ops.Post("/deliveries", operationHandler.CreateDelivery)
	ops.Post("/transfers", operationHandler.CreateTransfer)
	ops.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleManager), operationHandler.CreateAdjustment)
	ops.Get("/", operationHandler.List)
	ops.Get("/:id", operationHandler.GetByID)
	ops.Put("/:id", operationHandler.Update)
	ops.Post("/:id/transition", operationHandler.Transition)
	ops.Get("/:id/document", operationHandler.Document)

	// Movement history (protegido)
	historyHandler := NewHistoryHandler(deps.StockUC)
	protected.Get("/move-history", historyHandler.List)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/kpis", dashboardHandler.Kpis)
	dashboard.Get("/warehouses", dashboardHandler.Warehouses)
	dashboard.Get("/categories", dashboardHandler.Categories)
}
