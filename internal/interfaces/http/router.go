package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	MovementUC  *usecase.MovementUseCase
	StockCardUC *inventory.StockCardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.ProductUC)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.StockCardUC)

	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	// antes de /:id para que "low-stock" no se interprete como id
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	products.Post("/:id/movements", movementHandler.Record)
	products.Get("/:id/movements", movementHandler.ListByProduct)
	products.Get("/:id/movements/report", movementHandler.StockCard)
	products.Get("/:id/ledger/verify", movementHandler.VerifyLedger)

	protected.Get("/users/:id/movements", movementHandler.ListByUser)
	protected.Get("/me/movements", movementHandler.ListMine)
}
