package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/analytics"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/auth"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/usecase"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	MovementUC      *inventory.MovementUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *analytics.DashboardUseCase
	AuthLimiter     *IPRateLimiter // nil = sin límite
	SecureCookie    bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.AuthUC)

	// Auth: signup/login públicos (con rate limit), logout/me protegidos
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.SecureCookie)
	public := []fiber.Handler{}
	if deps.AuthLimiter != nil {
		public = append(public, deps.AuthLimiter.Middleware())
	}
	authGroup.Post("/signup", append(public, authHandler.Signup)...)
	authGroup.Post("/login", append(public, authHandler.Login)...)
	authGroup.Post("/logout", authMW, authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Products (protegido; archivar solo admin)
	products := api.Group("/products", authMW)
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/balance", productHandler.Balance)

	// Stock movements (protegido)
	stock := api.Group("/stock", authMW)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.ReplenishmentUC)
	stock.Post("/movements", inventoryHandler.RecordMovement)
	stock.Get("/movements", inventoryHandler.ListMovements)
	stock.Get("/movements/report", inventoryHandler.Report)
	stock.Get("/replenishment", inventoryHandler.Replenishment)

	// Dashboard (protegido)
	dashboard := api.Group("/dashboard", authMW)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
