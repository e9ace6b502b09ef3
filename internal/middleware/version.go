package middleware

import (
	"github.com/labstack/echo/v4"
)

// VersionMiddleware tags responses with the API version they were served by.
type VersionMiddleware struct {
	appVersion string
}

func NewVersionMiddleware(appVersion string) *VersionMiddleware {
	return &VersionMiddleware{appVersion: appVersion}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(apiVersion string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", apiVersion)
			c.Response().Header().Set("X-App-Version", vm.appVersion)
			return next(c)
		}
	}
}

// VersionRoute creates a version-specific route group
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, apiVersion string) *echo.Group {
	group := e.Group("/" + apiVersion)
	group.Use(vm.VersionHeader(apiVersion))
	return group
}
