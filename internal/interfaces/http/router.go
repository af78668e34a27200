package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pro/internal/application/catalog"
	"github.com/tu-usuario/tienda-pro/internal/application/stock"
	"github.com/tu-usuario/tienda-pro/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *catalog.ProductUseCase
	StoreUC        *catalog.StoreUseCase
	LedgerUC       *stock.LedgerUseCase
	BatchUC        *stock.BatchUseCase
	AvailabilityUC *stock.AvailabilityUseCase
	KitStockUC     *stock.KitStockUseCase
	OrderUC        *stock.OrderStockUseCase
	OrderRepo      repository.OrderRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products (catálogo + BOM de kits)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/components", productHandler.AddComponent)
	products.Get("/:id/components", productHandler.ListComponents)

	// Stores
	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)

	// Inventory (motor de movimientos)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.BatchUC, deps.AvailabilityUC, deps.KitStockUC)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Post("/movements/batch", inventoryHandler.RegisterBatch)
	inv.Get("/movements/product/:id", inventoryHandler.ListMovements)
	inv.Post("/availability", inventoryHandler.ValidateAvailability)
	inv.Post("/kits/recalculate", inventoryHandler.RecalculateKits)
	inv.Get("/reconcile/:id", inventoryHandler.Reconcile)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderRepo)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/pay", orderHandler.Pay)
	orders.Post("/:id/cancel", orderHandler.Cancel)
}
