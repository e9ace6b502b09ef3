package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const tokenContextKey = "user"

// NewJWTConfig builds the echo-jwt configuration for bearer tokens. When keyFunc is non-nil
// (a JWKS key set) it replaces the shared HS256 secret.
func NewJWTConfig(secret string, keyFunc jwt.Keyfunc) echojwt.Config {
	cfg := echojwt.Config{
		ContextKey:    tokenContextKey,
		SigningKey:    []byte(secret),
		SigningMethod: echojwt.AlgorithmHS256,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or missing token")
		},
	}
	if keyFunc != nil {
		cfg.KeyFunc = keyFunc
	}
	return cfg
}

// ActorLoader resolves the verified token's subject to an active user and stores the
// resulting Actor on the request context.
func ActorLoader(users services.UserService, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing subject in token")
			}
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid subject in token")
			}

			ctx := c.Request().Context()
			user, err := users.GetActive(ctx, userID)
			if err != nil {
				if !errors.Is(err, common.ErrNotFound) {
					logger.Error("loading token user failed", zap.Int64("user_id", userID), zap.Error(err))
					return err
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found or inactive")
			}

			c.SetRequest(c.Request().WithContext(common.WithActor(ctx, models.ActorFromUser(user))))
			return next(c)
		}
	}
}
