package handlers

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"

	"github.com/labstack/echo/v4"
)

func actorFrom(c echo.Context) (models.Actor, error) {
	actor, ok := common.GetActorFromContext(c.Request().Context())
	if !ok {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return actor, nil
}

// bindAndValidate binds the request body into dst and runs the struct validator.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	return c.Validate(dst)
}
