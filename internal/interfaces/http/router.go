package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-core-api/internal/application/stock"
	"github.com/jhoicas/stock-core-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *stock.LedgerUseCase
	Query     *stock.QueryUseCase
	SKUs      *stock.SKUUseCase
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API. Todas las rutas son protegidas: los
// tokens los emite el servicio de autenticación de la aplicación principal.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// SKUs: el registro queda restringido a roles de bodega.
	skus := api.Group("/skus")
	skuHandler := NewSKUHandler(deps.SKUs)
	skus.Post("/", RequireRole("admin", "bodeguero"), skuHandler.Create)
	skus.Get("/", skuHandler.List)
	skus.Get("/:id", skuHandler.GetByID)

	// Stock: mutaciones y lecturas del libro.
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Query, deps.Log)
	stockGroup.Post("/increase", RequireRole("admin", "bodeguero"), stockHandler.Increase)
	stockGroup.Post("/decrease", RequireRole("admin", "bodeguero", "vendedor"), stockHandler.Decrease)
	stockGroup.Post("/reserve", stockHandler.Reserve)
	stockGroup.Post("/release", stockHandler.Release)
	stockGroup.Post("/availability", stockHandler.BulkAvailability)
	stockGroup.Get("/:sku_id/availability", stockHandler.Availability)
	stockGroup.Get("/:sku_id/movements", stockHandler.History)
}
