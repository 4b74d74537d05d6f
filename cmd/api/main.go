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

	"github.com/hssndrms/stokyonetimi-sub000/internal/application/report"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/sequence"
	"github.com/hssndrms/stokyonetimi-sub000/internal/application/voucher"
	"github.com/hssndrms/stokyonetimi-sub000/internal/domain/repository"
	"github.com/hssndrms/stokyonetimi-sub000/internal/infrastructure/memory"
	"github.com/hssndrms/stokyonetimi-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/hssndrms/stokyonetimi-sub000/internal/interfaces/http"
	"github.com/hssndrms/stokyonetimi-sub000/pkg/config"
	"github.com/hssndrms/stokyonetimi-sub000/pkg/logger"
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
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		movRepo  repository.MovementRepository
		seqRepo  repository.SequenceRepository
		txRunner voucher.TxRunner
	)
	switch cfg.App.Storage {
	case "memory":
		// Modo desarrollo sin BD: estado volátil, misma semántica transaccional.
		store := memory.NewStore()
		movRepo = memory.NewMovementRepository(store)
		seqRepo = memory.NewSequenceRepository(store)
		txRunner = memory.NewTxRunner(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		movRepo = postgres.NewMovementRepository(pool)
		seqRepo = postgres.NewSequenceRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	processor := voucher.NewProcessor(txRunner, cfg.Sequences)
	voucherQuery := voucher.NewQuery(movRepo)
	reportEngine := report.NewEngine(movRepo)
	sequenceSvc := sequence.NewService(seqRepo, cfg.Sequences)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Processor:    processor,
		VoucherQuery: voucherQuery,
		Reports:      reportEngine,
		Sequences:    sequenceSvc,
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
