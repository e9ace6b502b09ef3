package handlers

import (
	"net/http"

	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/labstack/echo/v4"
)

// ReviewHandlers serves review listings and the add/delete operations that move a product's rating.
type ReviewHandlers struct {
	reviewService services.ReviewService
	retrier       *Retrier
}

func NewReviewHandlers(reviewService services.ReviewService, retrier *Retrier) *ReviewHandlers {
	return &ReviewHandlers{
		reviewService: reviewService,
		retrier:       retrier,
	}
}

func (h *ReviewHandlers) ListReviews(c echo.Context) error {
	reviews, err := h.reviewService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandlers) ListProductReviews(c echo.Context) error {
	reviews, err := h.reviewService.ListForProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// AddReview records a grade and optional comment for the calling customer.
func (h *ReviewHandlers) AddReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req models.ReviewInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var review *models.Review
	err = h.retrier.Do(ctx, "review.add", func() error {
		var opErr error
		review, opErr = h.reviewService.Add(ctx, actor, req)
		return opErr
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandlers) DeleteReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.retrier.Do(ctx, "review.delete", func() error {
		return h.reviewService.Delete(ctx, actor, id)
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
