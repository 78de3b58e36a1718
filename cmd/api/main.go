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
	appanalytics "github.com/stockmaster/stockmaster-api/internal/application/analytics"
	"github.com/stockmaster/stockmaster-api/internal/application/auth"
	"github.com/stockmaster/stockmaster-api/internal/application/operations"
	"github.com/stockmaster/stockmaster-api/internal/application/realtime"
	"github.com/stockmaster/stockmaster-api/internal/application/stock"
	"github.com/stockmaster/stockmaster-api/internal/application/usecase"
	infrapdf "github.com/stockmaster/stockmaster-api/internal/infrastructure/pdf"
	"github.com/stockmaster/stockmaster-api/internal/infrastructure/postgres"
	infraredis "github.com/stockmaster/stockmaster-api/internal/infrastructure/redis"
	httpRouter "github.com/stockmaster/stockmaster-api/internal/interfaces/http"
	"github.com/stockmaster/stockmaster-api/pkg/config"
	"github.com/stockmaster/stockmaster-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stopNotifier := context.WithCancel(context.Background())
	defer stopNotifier()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Redis es opcional: sin él la API funciona, pero sin caché de KPIs ni
	// eventos en tiempo real.
	var (
		cache appanalytics.Cache
		sink  realtime.Sink
	)
	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis no disponible, caché y eventos deshabilitados")
	} else {
		defer redisClient.Close()
		cache = infraredis.NewCache(redisClient)
		sink = infraredis.NewPublisher(redisClient)
	}

	// Repositorios sobre el pool (las transacciones usan el TxRunner)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	operationRepo := postgres.NewOperationRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, cache, log.Zerolog())

	// Notificador de eventos: cola en memoria -> Redis pub/sub + recálculo de KPIs
	notifier := realtime.NewNotifier(sink, realtime.KPISourceFunc(
		func(ctx context.Context) (any, error) { return dashboardUC.RefreshKpis(ctx) },
	), log.Zerolog())
	go notifier.Run(ctx)

	pdfGenerator := infrapdf.NewMarotoDocumentGenerator()
	operationUC := operations.NewUseCase(txRunner, operationRepo, locationRepo, productRepo, levelRepo, notifier, pdfGenerator)
	stockUC := stock.NewUseCase(movementRepo, levelRepo, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo, warehouseRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "StockMaster API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WarehouseUC: warehouseUC,
		LocationUC:  locationUC,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		OperationUC: operationUC,
		StockUC:     stockUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
	stopNotifier()

	log.Info().Msg("aplicación detenida")
}
