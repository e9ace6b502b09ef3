package handlers

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
	retrier         *Retrier
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryService services.CategoryService, retrier *Retrier) *CategoryHandlers {
	return &CategoryHandlers{
		categoryService: categoryService,
		retrier:         retrier,
	}
}

// ListCategories returns all active categories.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles creating a new category
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req models.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var category *models.Category
	err = h.retrier.Do(ctx, "category.create", func() error {
		var opErr error
		category, opErr = h.categoryService.Create(ctx, actor, req)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames or re-parents a category.
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	var req models.CategoryInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var category *models.Category
	err = h.retrier.Do(ctx, "category.update", func() error {
		var opErr error
		category, opErr = h.categoryService.Update(ctx, actor, id, req)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory soft-deletes a category.
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.retrier.Do(ctx, "category.delete", func() error {
		return h.categoryService.Delete(ctx, actor, id)
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
