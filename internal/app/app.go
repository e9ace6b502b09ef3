package app

import (
	"context"
	"fmt"

	"catalog/internal/caching"
	"catalog/internal/config"
	"catalog/internal/repositories"
	"catalog/internal/repositories/memstore"
	"catalog/internal/services"
	"catalog/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the wired store and services shared by the HTTP server and the admin CLI.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	// Pool is nil when the in-memory store is selected.
	Pool  *pgxpool.Pool
	Store repositories.Store
	Cache caching.CacheService
	Minio services.MinioService

	RBAC       services.RBACService
	Categories services.CategoryService
	Products   services.ProductService
	Reviews    services.ReviewService
	Users      services.UserService
	Auth       services.AuthService
}

// New opens the configured backends and builds the service graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on exit")
		a.Store = memstore.New(cfg.Store.LockTimeout)
	default:
		pool, err := database.NewPool(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		a.Pool = pool
		if cfg.Postgres.AutoMigrate {
			if err := database.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		a.Store = repositories.NewPgStore(pool, cfg.Store.LockTimeout, logger)
	}

	a.Cache = caching.NewNoopCacheService()
	if cfg.Redis.Enabled {
		cache := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			a.Cache = cache
		}
	}

	if cfg.Minio.Enabled {
		minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
			cfg.Minio.Bucket, cfg.Minio.PublicURL, cfg.Minio.UseSSL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("minio client: %w", err)
		}
		if err := minioSvc.EnsureBucketExists(ctx); err != nil {
			logger.Warn("minio bucket check failed; image uploads may fail", zap.String("bucket", cfg.Minio.Bucket), zap.Error(err))
		}
		a.Minio = minioSvc
	}

	a.RBAC = services.NewRBACService(logger)
	a.Categories = services.NewCategoryService(a.Store, a.RBAC, a.Cache, cfg.Redis.TTL, logger)
	a.Products = services.NewProductService(a.Store, a.RBAC, a.Categories, a.Minio, a.Cache, cfg.Redis.TTL, logger)
	a.Reviews = services.NewReviewService(a.Store, a.RBAC, a.Cache, logger)
	a.Users = services.NewUserService(a.Store, a.RBAC, logger)
	a.Auth = services.NewAuthService(a.Store, cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer, logger)

	return a, nil
}

// Close releases the database pool.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
