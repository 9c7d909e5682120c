package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appstock "github.com/jhoicas/stock-core-api/internal/application/stock"
	infracache "github.com/jhoicas/stock-core-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-core-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-core-api/internal/infrastructure/rabbit"
	httpRouter "github.com/jhoicas/stock-core-api/internal/interfaces/http"
	"github.com/jhoicas/stock-core-api/pkg/config"
	"github.com/jhoicas/stock-core-api/pkg/logger"
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

	// Repositorios de lectura atados al pool; los de mutación van atados a la
	// transacción que abre el TxRunner.
	skuRepo := postgres.NewSKURepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout())

	// Caché de disponibilidad (solo ruta de lectura) y notificador de cambios.
	availabilityCache := infracache.NewAvailabilityLRU(cfg.Cache.Size, cfg.Cache.TTL())

	var notifier appstock.Notifier = appstock.NopNotifier{}
	rabbitNotifier, err := rabbit.NewNotifier(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	if rabbitNotifier != nil {
		defer rabbitNotifier.Close()
		notifier = rabbitNotifier
		log.Info().Str("exchange", cfg.Rabbit.Exchange).Msg("publicación de eventos de stock activa")
	}

	ledgerUC := appstock.NewLedgerUseCase(txRunner, skuRepo, availabilityCache, notifier, log)
	queryUC := appstock.NewQueryUseCase(skuRepo, snapshotRepo, movementRepo, availabilityCache)
	skuUC := appstock.NewSKUUseCase(skuRepo, snapshotRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:    ledgerUC,
		Query:     queryUC,
		SKUs:      skuUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
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
