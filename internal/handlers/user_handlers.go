package handlers

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles admin operations on user accounts
type UserHandlers struct {
	userService services.UserService
	retrier     *Retrier
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService, retrier *Retrier) *UserHandlers {
	return &UserHandlers{
		userService: userService,
		retrier:     retrier,
	}
}

// TogglePermission flips a user between the supplier and customer roles.
func (h *UserHandlers) TogglePermission(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := common.ParseID(c.Param("user_id"), "user_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var user *models.User
	err = h.retrier.Do(ctx, "permission.toggle", func() error {
		var opErr error
		user, opErr = h.userService.TogglePermission(ctx, actor, userID)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeactivateUser soft-deletes a non-admin user.
func (h *UserHandlers) DeactivateUser(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := common.ParseID(c.Param("user_id"), "user_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.retrier.Do(ctx, "user.deactivate", func() error {
		return h.userService.Deactivate(ctx, actor, userID)
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
