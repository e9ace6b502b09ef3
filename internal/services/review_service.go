package services

import (
	"context"
	"fmt"

	"catalog/internal/caching"
	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/observability/metrics"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

// ReviewService owns the review/rating write path and the denormalized Product.Rating.
type ReviewService interface {
	ListAll(ctx context.Context) ([]*models.ReviewView, error)
	ListForProduct(ctx context.Context, productSlug string) ([]*models.ReviewView, error)

	// Add inserts a rating and its review and recomputes the product aggregate in one
	// transaction that holds the product row lock.
	Add(ctx context.Context, actor models.Actor, in models.ReviewInput) (*models.Review, error)

	// Delete deactivates a review together with its rating and recomputes the aggregate.
	Delete(ctx context.Context, actor models.Actor, reviewID int64) error

	// RecomputeAll rewrites every product's aggregate from its active ratings and returns
	// how many products changed.
	RecomputeAll(ctx context.Context) (int, error)
}

type reviewService struct {
	store    repositories.Store
	rbac     RBACService
	cacheSvc caching.CacheService
	logger   *zap.Logger
}

func NewReviewService(store repositories.Store, rbac RBACService, cacheSvc caching.CacheService, logger *zap.Logger) ReviewService {
	return &reviewService{
		store:    store,
		rbac:     rbac,
		cacheSvc: cacheSvc,
		logger:   logger,
	}
}

func (s *reviewService) ListAll(ctx context.Context) ([]*models.ReviewView, error) {
	return s.store.Reviews().ListActive(ctx)
}

func (s *reviewService) ListForProduct(ctx context.Context, productSlug string) ([]*models.ReviewView, error) {
	product, err := activeProduct(ctx, s.store, productSlug)
	if err != nil {
		return nil, err
	}
	return s.store.Reviews().ListActiveByProduct(ctx, product.ID)
}

func (s *reviewService) Add(ctx context.Context, actor models.Actor, in models.ReviewInput) (*models.Review, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionReviewCreate, nil); err != nil {
		return nil, err
	}
	if in.Grade < models.MinGrade || in.Grade > models.MaxGrade {
		return nil, common.Invalid("grade", fmt.Sprintf("must be between %d and %d", models.MinGrade, models.MaxGrade))
	}
	if in.Comment != nil {
		comment := *in.Comment
		in.Comment = &comment
	}
	if err := common.ValidateOptionalString(in.Comment, "comment", models.MaxCommentLength); err != nil {
		return nil, err
	}
	if in.Comment != nil && *in.Comment == "" {
		in.Comment = nil
	}

	var (
		review  *models.Review
		product *models.Product
		rating  float64
	)
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		product, err = tx.Products().LockForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return common.NotFound("product", in.ProductID)
		}

		r := &models.Rating{
			Grade:     in.Grade,
			UserID:    actor.ID(),
			ProductID: product.ID,
			IsActive:  true,
		}
		if err := tx.Ratings().Create(ctx, r); err != nil {
			return err
		}

		review = &models.Review{
			Comment:   in.Comment,
			UserID:    actor.ID(),
			ProductID: product.ID,
			RatingID:  r.ID,
			IsActive:  true,
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}

		rating, err = recomputeRating(ctx, tx, product.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveRecompute("add")
	s.evict(ctx, product.Slug)
	s.logger.Info("review added",
		zap.Int64("review_id", review.ID),
		zap.Int64("product_id", product.ID),
		zap.Int("grade", in.Grade),
		zap.Float64("rating", rating),
	)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, actor models.Actor, reviewID int64) error {
	if err := s.rbac.Check(ctx, actor, models.ActionReviewDelete, nil); err != nil {
		return err
	}

	var (
		product *models.Product
		rating  float64
	)
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		review, err := tx.Reviews().GetByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if !review.IsActive {
			return common.NotFound("review", reviewID)
		}

		product, err = tx.Products().LockForUpdate(ctx, review.ProductID)
		if err != nil {
			return err
		}
		// A concurrent delete may have won the lock first.
		review, err = tx.Reviews().GetByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if !review.IsActive {
			return common.NotFound("review", reviewID)
		}

		if err := tx.Reviews().SetActive(ctx, review.ID, false); err != nil {
			return err
		}
		if err := tx.Ratings().SetActive(ctx, review.RatingID, false); err != nil {
			return err
		}
		rating, err = recomputeRating(ctx, tx, product.ID)
		return err
	})
	if err != nil {
		return err
	}

	metrics.ObserveRecompute("delete")
	s.evict(ctx, product.Slug)
	s.logger.Info("review deactivated",
		zap.Int64("review_id", reviewID),
		zap.Int64("product_id", product.ID),
		zap.Float64("rating", rating),
		zap.Int64("actor_id", actor.ID()),
	)
	return nil
}

func (s *reviewService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.store.Products().ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}
		var (
			before, after float64
			slug          string
		)
		err := s.store.WithTx(ctx, func(tx repositories.Store) error {
			product, err := tx.Products().LockForUpdate(ctx, id)
			if err != nil {
				return err
			}
			before, slug = product.Rating, product.Slug
			after, err = recomputeRating(ctx, tx, id)
			return err
		})
		if err != nil {
			return changed, fmt.Errorf("recompute rating for product %d: %w", id, err)
		}
		metrics.ObserveRecompute("reconcile")
		if before != after {
			changed++
			s.evict(ctx, slug)
			s.logger.Warn("product rating drift corrected",
				zap.Int64("product_id", id),
				zap.Float64("stored", before),
				zap.Float64("computed", after),
			)
		}
	}
	return changed, nil
}

func (s *reviewService) evict(ctx context.Context, slug string) {
	if err := s.cacheSvc.DeleteProduct(ctx, slug); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
