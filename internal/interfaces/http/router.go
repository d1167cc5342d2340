package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastano/cadena-api/internal/application/activity"
	"github.com/jcastano/cadena-api/internal/application/auth"
	"github.com/jcastano/cadena-api/internal/application/inventory"
	"github.com/jcastano/cadena-api/internal/application/procurement"
	"github.com/jcastano/cadena-api/internal/application/sales"
	"github.com/jcastano/cadena-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ServiceKey string
	ScanUC     *inventory.ScanUseCase
	ItemUC     *inventory.ItemUseCase
	SaleUC     *sales.SaleUseCase
	OrderUC    *procurement.OrderUseCase
	ReceiveUC  *procurement.ReceiveUseCase
	Recorder   *activity.Recorder
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones (creación pública con clave de servicio)
	authHandler := NewAuthHandler(deps.AuthUC, deps.ServiceKey)
	api.Post("/auth/sessions", authHandler.CreateSession)

	// Rutas protegidas (requieren Bearer Token con sesión activa)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Delete("/auth/sessions", authHandler.EndSession)

	// Inventario: escaneo acumulado y ciclo de vida de items
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ScanUC, deps.ItemUC)
	inv.Get("/scan", inventoryHandler.Scan)
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Delete("/items/:id", RequireRole(entity.RoleAdmin), inventoryHandler.DeleteItem)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.ProcessSale)
	salesGroup.Get("/", saleHandler.ListTransactions)
	salesGroup.Get("/:id", saleHandler.GetTransaction)

	// Órdenes de compra (solo admin)
	orders := protected.Group("/orders", RequireRole(entity.RoleAdmin))
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiveUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Registro de actividad
	activityHandler := NewActivityHandler(deps.Recorder)
	protected.Get("/activity", activityHandler.List)
}
