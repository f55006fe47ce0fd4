package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appledger "github.com/EduardoLubo/materiales-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Commit *appledger.CommitUseCase
	Query  *appledger.QueryUseCase
	Log    zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	movementHandler := NewMovementHandler(deps.Commit, deps.Query, deps.Log)
	movements := api.Group("/movements")
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	api.Get("/movement-types", movementHandler.ListTypes)

	stockHandler := NewStockHandler(deps.Query, deps.Log)
	api.Get("/stock", stockHandler.GetStock)
	units := api.Group("/serialized-units")
	units.Get("/:id", stockHandler.GetUnit)
	units.Get("/:id/history", stockHandler.GetUnitHistory)
}
