package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"catalog/internal/caching"
	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, actor models.Actor, in models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, actor models.Actor, id int64, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error

	// ResolveScope returns the id of the active category with the given slug followed by
	// the ids of its active direct children. Deeper descendants are not included.
	ResolveScope(ctx context.Context, slug string) ([]int64, error)
}

type categoryService struct {
	store    repositories.Store
	rbac     RBACService
	cacheSvc caching.CacheService
	cacheTTL time.Duration
	logger   *zap.Logger

	// scopeGen counts scope invalidations. A resolve that overlaps one must not leave its
	// result in the cache.
	scopeGen atomic.Uint64
}

func NewCategoryService(store repositories.Store, rbac RBACService, cacheSvc caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) CategoryService {
	return &categoryService{
		store:    store,
		rbac:     rbac,
		cacheSvc: cacheSvc,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.store.Categories().ListActive(ctx)
}

func (s *categoryService) Create(ctx context.Context, actor models.Actor, in models.CategoryInput) (*models.Category, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionCategoryWrite, nil); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.Name, "name"); err != nil {
		return nil, err
	}
	slug, err := makeSlug(in.Name, categorySlugMaxLength)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     in.Name,
		Slug:     slug,
		ParentID: in.ParentID,
		IsActive: true,
	}
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if in.ParentID != nil {
			if _, err := activeCategory(ctx, tx, *in.ParentID); err != nil {
				return err
			}
		}
		// Inactive categories keep their slug, so the lookup ignores is_active.
		if err := slugFree(ctx, tx, slug, 0); err != nil {
			return err
		}
		return tx.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateScopes(ctx)
	s.logger.Info("category created", zap.Int64("category_id", category.ID), zap.String("slug", category.Slug))
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, actor models.Actor, id int64, in models.CategoryInput) (*models.Category, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionCategoryWrite, nil); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(in.Name, "name"); err != nil {
		return nil, err
	}
	if in.ParentID != nil && *in.ParentID == id {
		return nil, common.Invalid("parent_id", "a category cannot be its own parent")
	}
	slug, err := makeSlug(in.Name, categorySlugMaxLength)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		existing, err := activeCategory(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.ParentID != nil {
			if _, err := activeCategory(ctx, tx, *in.ParentID); err != nil {
				return err
			}
		}
		if err := slugFree(ctx, tx, slug, id); err != nil {
			return err
		}

		existing.Name = in.Name
		existing.Slug = slug
		existing.ParentID = in.ParentID
		if err := tx.Categories().Update(ctx, existing); err != nil {
			return err
		}
		category = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateScopes(ctx)
	return category, nil
}

// Delete deactivates the category. Products and child categories are left as they are.
func (s *categoryService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.rbac.Check(ctx, actor, models.ActionCategoryWrite, nil); err != nil {
		return err
	}
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		if _, err := activeCategory(ctx, tx, id); err != nil {
			return err
		}
		return tx.Categories().SetActive(ctx, id, false)
	})
	if err != nil {
		return err
	}

	s.invalidateScopes(ctx)
	s.logger.Info("category deactivated", zap.Int64("category_id", id))
	return nil
}

func (s *categoryService) ResolveScope(ctx context.Context, slug string) ([]int64, error) {
	gen := s.scopeGen.Load()
	if scope, err := s.cacheSvc.GetCategoryScope(ctx, slug); err != nil {
		s.logger.Warn("category scope cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if scope != nil {
		return scope, nil
	}

	category, err := s.store.Categories().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, common.NotFound("category", slug)
	}

	children, err := s.store.Categories().ListActiveChildren(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	scope := make([]int64, 0, len(children)+1)
	scope = append(scope, category.ID)
	for _, child := range children {
		scope = append(scope, child.ID)
	}

	if s.scopeGen.Load() != gen {
		return scope, nil
	}
	if err := s.cacheSvc.SetCategoryScope(ctx, slug, scope, s.cacheTTL); err != nil {
		s.logger.Warn("category scope cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	// A write that committed between the check and the store would be masked until the TTL.
	if s.scopeGen.Load() != gen {
		s.invalidateScopes(ctx)
	}
	return scope, nil
}

func (s *categoryService) invalidateScopes(ctx context.Context) {
	s.scopeGen.Add(1)
	if err := s.cacheSvc.InvalidateCategoryScopes(ctx); err != nil {
		s.logger.Warn("category scope cache invalidation failed", zap.Error(err))
	}
}

// activeCategory loads a category and treats an inactive one as missing.
func activeCategory(ctx context.Context, tx repositories.Store, id int64) (*models.Category, error) {
	category, err := tx.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, common.NotFound("category", id)
	}
	return category, nil
}

// slugFree fails Conflict when slug belongs to a category other than selfID.
func slugFree(ctx context.Context, tx repositories.Store, slug string, selfID int64) error {
	other, err := tx.Categories().GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return common.Conflict("slug")
	}
	return nil
}
