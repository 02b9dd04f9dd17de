package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/candystock-api/internal/application/auth"
	"github.com/jhoicas/candystock-api/internal/application/reset"
	"github.com/jhoicas/candystock-api/internal/application/settings"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *stock.RegisterMovementUseCase
	UndoTransaction  *stock.UndoTransactionUseCase
	StockQuery       *stock.QueryUseCase
	Watcher          *stock.Watcher
	SettingsUC       *settings.UseCase
	ResetController  *reset.Controller
	AuthUC           *auth.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/session", authHandler.Session)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo (público: datos estáticos para la UI)
	stockHandler := NewStockHandler(deps.RegisterMovement, deps.UndoTransaction, deps.StockQuery)
	api.Get("/catalog", stockHandler.GetCatalog)

	// Rutas protegidas (requieren Bearer Token, anónimo u operador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ledger de stock
	protected.Get("/stock/current", stockHandler.GetCurrentStock)
	protected.Get("/stock/previous", stockHandler.GetPreviousStock)
	protected.Post("/stock/movements", stockHandler.RegisterMovement)

	// Suscripción en vivo
	streamHandler := NewStreamHandler(deps.Watcher)
	protected.Get("/stock/stream", streamHandler.Stream)

	// Historial y undo
	protected.Get("/transactions", stockHandler.GetHistory)
	protected.Delete("/transactions/:id", stockHandler.UndoTransaction)

	// Configuración del cierre (lectura para todos; edición solo operador)
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.ResetController)
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", RequireRole(entity.RoleOperador), settingsHandler.UpdateSettings)
	protected.Get("/reset/status", settingsHandler.GetResetStatus)
}
