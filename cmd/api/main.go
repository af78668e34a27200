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
	"github.com/tu-usuario/tienda-pro/internal/application/catalog"
	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tienda-pro/internal/interfaces/http"
	"github.com/tu-usuario/tienda-pro/pkg/config"
	"github.com/tu-usuario/tienda-pro/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de nivel superior (pool); los casos de uso transaccionales reciben
	// repos atados a la tx vía TxRunner.
	productRepo := postgres.NewProductRepository(pool)
	kitRepo := postgres.NewKitComponentRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	kitStockUC := stock.NewKitStockUseCase(txRunner)
	ledgerUC := stock.NewLedgerUseCase(txRunner, movementRepo, productRepo)
	batchUC := stock.NewBatchUseCase(txRunner)
	availabilityUC := stock.NewAvailabilityUseCase(productRepo, kitRepo)
	orderUC := stock.NewOrderStockUseCase(txRunner)

	productUC := catalog.NewProductUseCase(productRepo, kitRepo, kitStockUC)
	storeUC := catalog.NewStoreUseCase(storeRepo)

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
		Title:    "Tienda Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		StoreUC:        storeUC,
		LedgerUC:       ledgerUC,
		BatchUC:        batchUC,
		AvailabilityUC: availabilityUC,
		KitStockUC:     kitStockUC,
		OrderUC:        orderUC,
		OrderRepo:      orderRepo,
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
