package middleware

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

type RBACMiddleware struct {
	rbacService services.RBACService
}

func NewRBACMiddleware(rbacService services.RBACService) *RBACMiddleware {
	return &RBACMiddleware{
		rbacService: rbacService,
	}
}

// RequireAction applies the role part of the authorization matrix before the handler runs.
// Ownership rules that need the target entity are checked again by the service.
func (m *RBACMiddleware) RequireAction(action models.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			actor, ok := common.GetActorFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			if err := m.rbacService.Check(ctx, actor, action, nil); err != nil {
				return err
			}

			return next(c)
		}
	}
}
