package handlers

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	productService services.ProductService
	retrier        *Retrier
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, retrier *Retrier) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		retrier:        retrier,
	}
}

// ListProducts returns every available product.
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// ListProductsByCategory returns available products in a category and its active direct children.
func (h *ProductHandlers) ListProductsByCategory(c echo.Context) error {
	slug := c.Param("category_slug")
	if err := common.ValidateRequiredString(slug, "category_slug"); err != nil {
		return err
	}
	products, err := h.productService.ListByCategorySlug(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct returns one active product by slug.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	product, err := h.productService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req models.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var product *models.Product
	err = h.retrier.Do(ctx, "product.create", func() error {
		var opErr error
		product, opErr = h.productService.Create(ctx, actor, req)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating a product
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req models.ProductInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	var product *models.Product
	err = h.retrier.Do(ctx, "product.update", func() error {
		var opErr error
		product, opErr = h.productService.Update(ctx, actor, slug, req)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles soft-deleting a product
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	slug := c.Param("slug")
	if err := h.retrier.Do(ctx, "product.delete", func() error {
		return h.productService.Delete(ctx, actor, slug)
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadProductImage stores the multipart "image" field and links it to the product.
func (h *ProductHandlers) UploadProductImage(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.Invalid("image", "multipart field is required")
	}
	if fileHeader.Size > services.MaxImageSize {
		return common.Invalid("image", "file exceeds the 5MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	product, err := h.productService.UploadImage(c.Request().Context(), actor, c.Param("slug"),
		fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}
