package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/internal/models"
	"catalog/internal/observability/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService caches read-mostly catalog lookups. Get methods return (nil, nil) on a miss.
type CacheService interface {
	// Product caching, keyed by slug
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, slug string) error

	// Category scope caching
	GetCategoryScope(ctx context.Context, slug string) ([]int64, error)
	SetCategoryScope(ctx context.Context, slug string, scope []int64, ttl time.Duration) error
	InvalidateCategoryScopes(ctx context.Context) error

	Ping(ctx context.Context) error
}

const keyPrefix = "catalog"

func productKey(slug string) string { return fmt.Sprintf("%s:product:%s", keyPrefix, slug) }
func scopeKey(slug string) string   { return fmt.Sprintf("%s:scope:%s", keyPrefix, slug) }

type redisCacheService struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisCacheService connects to addr. A redis:// or rediss:// prefix is accepted.
func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(pingErr))
	} else {
		logger.Debug("redis connection established", zap.String("addr", parsedAddr))
	}

	return NewRedisCacheServiceWithClient(client, logger)
}

func NewRedisCacheServiceWithClient(client redis.UniversalClient, logger *zap.Logger) CacheService {
	return &redisCacheService{client: client, logger: logger}
}

func (r *redisCacheService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ObserveCacheLookup("product", false)
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	metrics.ObserveCacheLookup("product", true)
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(product.Slug), data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, slug string) error {
	return r.client.Del(ctx, productKey(slug)).Err()
}

func (r *redisCacheService) GetCategoryScope(ctx context.Context, slug string) ([]int64, error) {
	data, err := r.client.Get(ctx, scopeKey(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ObserveCacheLookup("scope", false)
			return nil, nil
		}
		return nil, err
	}

	var scope []int64
	if err := json.Unmarshal(data, &scope); err != nil {
		return nil, err
	}
	metrics.ObserveCacheLookup("scope", true)
	return scope, nil
}

func (r *redisCacheService) SetCategoryScope(ctx context.Context, slug string, scope []int64, ttl time.Duration) error {
	data, err := json.Marshal(scope)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, scopeKey(slug), data, ttl).Err()
}

// InvalidateCategoryScopes drops every cached scope.
func (r *redisCacheService) InvalidateCategoryScopes(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, scopeKey("*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopCacheService struct{}

// NewNoopCacheService returns a cache that always misses. It is used when Redis is disabled.
func NewNoopCacheService() CacheService { return noopCacheService{} }

func (noopCacheService) GetProduct(context.Context, string) (*models.Product, error) { return nil, nil }
func (noopCacheService) SetProduct(context.Context, *models.Product, time.Duration) error {
	return nil
}
func (noopCacheService) DeleteProduct(context.Context, string) error               { return nil }
func (noopCacheService) GetCategoryScope(context.Context, string) ([]int64, error) { return nil, nil }
func (noopCacheService) SetCategoryScope(context.Context, string, []int64, time.Duration) error {
	return nil
}
func (noopCacheService) InvalidateCategoryScopes(context.Context) error { return nil }
func (noopCacheService) Ping(context.Context) error                     { return nil }
