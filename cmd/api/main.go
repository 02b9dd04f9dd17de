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

	appauth "github.com/jhoicas/candystock-api/internal/application/auth"
	"github.com/jhoicas/candystock-api/internal/application/reset"
	"github.com/jhoicas/candystock-api/internal/application/settings"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/candystock-api/internal/interfaces/http"
	"github.com/jhoicas/candystock-api/pkg/config"
	"github.com/jhoicas/candystock-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema de base de datos")
	}

	ledgerRepo := postgres.NewLedgerRepository(pool)
	logRepo := postgres.NewTransactionLogRepository(pool)
	configRepo := postgres.NewConfigRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	watcher := stock.NewWatcher()
	registerMovementUC := stock.NewRegisterMovementUseCase(txRunner, ledgerRepo, watcher)
	undoUC := stock.NewUndoTransactionUseCase(txRunner, ledgerRepo, watcher)
	queryUC := stock.NewQueryUseCase(ledgerRepo, logRepo)
	settingsUC := settings.NewUseCase(configRepo, watcher)
	authUC := appauth.NewUseCase(userRepo, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	resetController := reset.NewController(
		txRunner, configRepo, ledgerRepo, logRepo, watcher, log,
		reset.Options{
			PollInterval: time.Duration(cfg.Cierre.PollSeconds) * time.Second,
			DisplayDelay: time.Duration(cfg.Cierre.DisplaySeconds) * time.Second,
		},
	)

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
		Title:    "CandyStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "reset": resetController.State()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		UndoTransaction:  undoUC,
		StockQuery:       queryUC,
		Watcher:          watcher,
		SettingsUC:       settingsUC,
		ResetController:  resetController,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	// Poller del cierre diario: chequea al arrancar y una vez por minuto.
	pollerCtx, stopPoller := context.WithCancel(ctx)
	go resetController.Run(pollerCtx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
