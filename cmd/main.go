package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/app"
	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/jobs/background"
	"catalog/internal/middleware"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logger, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	var keyFunc jwt.Keyfunc
	if cfg.JWT.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWT.JWKSURL, keyfunc.Options{
			RefreshInterval: time.Hour,
			RefreshErrorHandler: func(err error) {
				logger.Warn("jwks refresh failed", zap.Error(err))
			},
		})
		if err != nil {
			return fmt.Errorf("load jwks: %w", err)
		}
		defer jwks.EndBackground()
		keyFunc = jwks.Keyfunc
	}

	retrier := handlers.NewRetrier(cfg.Retry)

	health := handlers.NewHealthHandlers(version)
	if a.Pool != nil {
		health.Register("database", a.Pool.Ping, true)
	}
	if cfg.Redis.Enabled {
		health.Register("redis", a.Cache.Ping, false)
	}
	if a.Minio != nil {
		health.Register("storage", a.Minio.Ping, false)
	}

	router := &handlers.Router{
		Categories:  handlers.NewCategoryHandlers(a.Categories, retrier),
		Products:    handlers.NewProductHandlers(a.Products, retrier),
		Reviews:     handlers.NewReviewHandlers(a.Reviews, retrier),
		Users:       handlers.NewUserHandlers(a.Users, retrier),
		Auth:        handlers.NewAuthHandlers(a.Auth, a.Users),
		Health:      health,
		JWTConfig:   middleware.NewJWTConfig(cfg.JWT.Secret, keyFunc),
		ActorLoader: middleware.ActorLoader(a.Users, logger),
		RBAC:        middleware.NewRBACMiddleware(a.RBAC),
		Version:     middleware.NewVersionMiddleware(version),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewCustomValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.Server.CORSOrigins}))
	e.Use(echoMiddleware.BodyLimit("6M"))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	router.Register(e)

	if cfg.Jobs.Enabled {
		scheduler, err := background.NewJobScheduler(a.Reviews, a.Cache,
			cfg.Jobs.RatingReconcileInterval, cfg.Jobs.ScopeCacheFlushInterval, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Warn("job scheduler shutdown failed", zap.Error(err))
			}
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog server starting",
			zap.String("version", version),
			zap.String("addr", addr),
			zap.String("store", cfg.Store.Driver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
