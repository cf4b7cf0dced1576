// @title pet-dispatch API
// @version 1.0
// @description Solicitudes de traslado, paseo y veterinaria para mascotas: asignación de guías, hitos y calificaciones.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-dispatch/internal/adapters/auth/jwt"
	pg "pet-dispatch/internal/adapters/storage/postgres"
	"pet-dispatch/internal/config"
	"pet-dispatch/internal/middleware"
	"pet-dispatch/internal/platform/logger"
	"pet-dispatch/internal/platform/metrics"
	"pet-dispatch/internal/platform/telemetry"
	"pet-dispatch/internal/ports/auth"
	"pet-dispatch/internal/router"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.AppName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	}, log)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown", map[string]any{"error": err.Error()})
		}
	}()

	var db *sqlx.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = pg.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN vacío)", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		v, err := jwt.NewVerifier(jwt.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer})
		if err != nil {
			return err
		}
		verifier = v
	} else {
		log.Warn("auth: modo dev, se aceptan X-Debug-User-ID / X-Debug-Role", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		Metrics:      metrics.New("pet_dispatch"),
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      otelhttp.NewHandler(r, cfg.AppName),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shCtx)
}
