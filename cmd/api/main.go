package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/EduardoLubo/materiales-api/internal/application/ledger"
	"github.com/EduardoLubo/materiales-api/internal/infrastructure/postgres"
	httpRouter "github.com/EduardoLubo/materiales-api/internal/interfaces/http"
	"github.com/EduardoLubo/materiales-api/pkg/config"
	"github.com/EduardoLubo/materiales-api/pkg/logger"
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

	txRunner := postgres.NewTxRunner(pool)
	commitUC := ledger.NewCommitUseCase(txRunner, log)
	queryUC := ledger.NewQueryUseCase(
		postgres.NewStockRepository(pool),
		postgres.NewSerializedUnitRepository(pool),
		postgres.NewMovementRepository(pool),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Commit: commitUC,
		Query:  queryUC,
		Log:    log,
	})

	// Servidor y señales bajo un errgroup: si uno cae, el otro también corta.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})

	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-gctx.Done():
			return gctx.Err()
		case s := <-sig:
			log.Info().Str("signal", s.String()).Msg("apagando")
			return app.ShutdownWithTimeout(10 * time.Second)
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("terminó con error")
	}
}
