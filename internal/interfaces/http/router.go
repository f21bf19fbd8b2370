package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-ledger/internal/application/inventory"
	"github.com/jhoicas/wms-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Availability   *inventory.AvailabilityUseCase
	Allocation     *inventory.AllocationUseCase
	Stock          *inventory.StockUseCase
	Query          *inventory.QueryUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	StorageRuleUC  *usecase.StorageRuleUseCase
	LocationUC     *usecase.LocationUseCase
	JWTSecret      string        // vacío: API sin autenticación (solo desarrollo)
	RequestTimeout time.Duration // deadline por petición; 0 sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestTimeout(deps.RequestTimeout))

	auth := func(c *fiber.Ctx) error { return c.Next() }
	role := func(...string) fiber.Handler { return auth }
	if deps.JWTSecret != "" {
		auth = AuthMiddleware(deps.JWTSecret)
		role = RequireRole
	}
	protected := api.Group("/", auth)
	anyRole := role(RoleAdmin, RoleBodeguero, RoleVendedor)
	operators := role(RoleAdmin, RoleBodeguero)
	admins := role(RoleAdmin)

	// Pedidos
	wms := protected.Group("/wms")
	wmsHandler := NewWMSHandler(deps.Availability, deps.Allocation)
	wms.Post("/check", anyRole, wmsHandler.Check)
	wms.Post("/commit", anyRole, wmsHandler.Commit)

	// Ledger
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Query)
	inv.Post("/add", operators, inventoryHandler.AddStock)
	inv.Post("/move", operators, inventoryHandler.MoveStock)
	inv.Get("/items", anyRole, inventoryHandler.ListItems)
	inv.Get("/totals", anyRole, inventoryHandler.Totals)
	inv.Get("/movements", anyRole, inventoryHandler.ListMovements)
	inv.Get("/product/:id/total", anyRole, inventoryHandler.ProductTotal)
	inv.Get("/product/:id/reconcile", operators, inventoryHandler.Reconcile)

	// Directorio: lectura para todos, cambios solo admin
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", admins, warehouseHandler.Create)
	warehouses.Get("/", anyRole, warehouseHandler.List)
	warehouses.Get("/:id", anyRole, warehouseHandler.GetByID)
	warehouses.Delete("/:id", admins, warehouseHandler.Delete)

	rules := protected.Group("/storage-rules")
	ruleHandler := NewStorageRuleHandler(deps.StorageRuleUC)
	rules.Post("/", admins, ruleHandler.Create)
	rules.Get("/", anyRole, ruleHandler.List)
	rules.Get("/:id", anyRole, ruleHandler.GetByID)
	rules.Delete("/:id", admins, ruleHandler.Delete)

	bins := protected.Group("/locations/bins")
	locationHandler := NewLocationHandler(deps.LocationUC)
	bins.Post("/", admins, locationHandler.CreateBin)
	bins.Get("/", anyRole, locationHandler.ListBins)
	bins.Get("/:id", anyRole, locationHandler.GetBin)
	bins.Delete("/:id", admins, locationHandler.DeleteBin)
}
