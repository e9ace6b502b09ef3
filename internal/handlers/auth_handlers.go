package handlers

import (
	"net/http"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and the current-user endpoint
type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, userService services.UserService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userService: userService,
	}
}

// Register creates a customer account
func (h *AuthHandlers) Register(c echo.Context) error {
	var req models.RegisterInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

// Me returns the authenticated user's account
func (h *AuthHandlers) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetActive(c.Request().Context(), actor.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
