package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Minio    MinioConfig
	Jobs     JobsConfig
	Retry    RetryConfig
}

type ServerConfig struct {
	AppEnv          string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// StoreConfig selects the entity store backend. Driver is "postgres" or "memory".
type StoreConfig struct {
	Driver      string
	LockTimeout time.Duration
}

type PostgresConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type JWTConfig struct {
	Secret  string
	TTL     time.Duration
	JWKSURL string
	Issuer  string
}

type MinioConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

type JobsConfig struct {
	Enabled                 bool
	RatingReconcileInterval time.Duration
	ScopeCacheFlushInterval time.Duration
}

// RetryConfig bounds the HTTP layer's retries of Busy failures.
type RetryConfig struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Load reads a .env file when present and then builds the config from the environment.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg := LoadEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv populates the environment from ./.env if the file exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			Port:            getEnvInt("PORT", 8080),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigins:     getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", "postgres"),
			LockTimeout: getEnvDuration("STORE_LOCK_TIMEOUT", 2*time.Second),
		},
		Postgres: PostgresConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("POSTGRES_MAX_CONNS", 10),
			MinConns:        getEnvInt("POSTGRES_MIN_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnMaxIdleTime: getEnvDuration("POSTGRES_CONN_MAX_IDLE_TIME", time.Minute),
			AutoMigrate:     getEnvBool("POSTGRES_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:  getEnv("JWT_SECRET", ""),
			TTL:     getEnvDuration("JWT_TTL", 24*time.Hour),
			JWKSURL: getEnv("JWT_JWKS_URL", ""),
			Issuer:  getEnv("JWT_ISSUER", "catalog"),
		},
		Minio: MinioConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			Bucket:    getEnv("MINIO_BUCKET", "catalog-images"),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Jobs: JobsConfig{
			Enabled:                 getEnvBool("JOBS_ENABLED", true),
			RatingReconcileInterval: getEnvDuration("JOBS_RATING_RECONCILE_INTERVAL", time.Hour),
			ScopeCacheFlushInterval: getEnvDuration("JOBS_SCOPE_CACHE_FLUSH_INTERVAL", 15*time.Minute),
		},
		Retry: RetryConfig{
			MaxAttempts:     getEnvInt("RETRY_MAX_ATTEMPTS", 3),
			InitialInterval: getEnvDuration("RETRY_INITIAL_INTERVAL", 50*time.Millisecond),
			MaxInterval:     getEnvDuration("RETRY_MAX_INTERVAL", time.Second),
		},
	}
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	if err := c.ValidateStore(); err != nil {
		return err
	}
	if c.JWT.Secret == "" && c.JWT.JWKSURL == "" {
		return errors.New("one of JWT_SECRET or JWT_JWKS_URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Server.Port)
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New("RETRY_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// ValidateStore checks only the storage settings, for tools that never serve HTTP.
func (c *Config) ValidateStore() error {
	switch c.Store.Driver {
	case "postgres":
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.LockTimeout <= 0 {
		return errors.New("STORE_LOCK_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "prod" || c.Server.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
