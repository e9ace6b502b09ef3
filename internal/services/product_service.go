package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"catalog/internal/caching"
	"catalog/internal/common"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageSize bounds uploaded product images in bytes.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type ProductService interface {
	List(ctx context.Context) ([]*models.Product, error)
	ListByCategorySlug(ctx context.Context, categorySlug string) ([]*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, actor models.Actor, in models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, actor models.Actor, slug string, in models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, actor models.Actor, slug string) error
	UploadImage(ctx context.Context, actor models.Actor, slug, filename, contentType string, reader io.Reader, size int64) (*models.Product, error)
}

type productService struct {
	store       repositories.Store
	rbac        RBACService
	categorySvc CategoryService
	minioSvc    MinioService
	cacheSvc    caching.CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewProductService wires the product catalog. minioSvc may be nil, in which case image
// uploads fail Invalid.
func NewProductService(store repositories.Store, rbac RBACService, categorySvc CategoryService, minioSvc MinioService, cacheSvc caching.CacheService, cacheTTL time.Duration, logger *zap.Logger) ProductService {
	return &productService{
		store:       store,
		rbac:        rbac,
		categorySvc: categorySvc,
		minioSvc:    minioSvc,
		cacheSvc:    cacheSvc,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	return s.store.Products().ListAvailable(ctx)
}

// ListByCategorySlug lists available products in the category and its active direct children.
// The category's own active flag is not re-checked per product.
func (s *productService) ListByCategorySlug(ctx context.Context, categorySlug string) ([]*models.Product, error) {
	scope, err := s.categorySvc.ResolveScope(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.store.Products().ListAvailableInCategories(ctx, scope)
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if cached, err := s.cacheSvc.GetProduct(ctx, slug); err != nil {
		s.logger.Warn("product cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.store.Products().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, common.NotFound("product", slug)
	}

	if err := s.cacheSvc.SetProduct(ctx, product, s.cacheTTL); err != nil {
		s.logger.Warn("product cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, actor models.Actor, in models.ProductInput) (*models.Product, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionProductCreate, nil); err != nil {
		return nil, err
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	slug, err := makeSlug(in.Name, productSlugMaxLength)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Rating:      models.DefaultRating,
		IsActive:    true,
	}
	if !actor.IsAdmin() {
		supplierID := actor.ID()
		product.SupplierID = &supplierID
	}

	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		if err := requireCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		if err := productSlugFree(ctx, tx, slug, 0); err != nil {
			return err
		}
		return tx.Products().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("slug", product.Slug),
		zap.Int64("actor_id", actor.ID()),
	)
	return product, nil
}

func (s *productService) Update(ctx context.Context, actor models.Actor, slug string, in models.ProductInput) (*models.Product, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionProductUpdate, nil); err != nil {
		return nil, err
	}
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	newSlug, err := makeSlug(in.Name, productSlugMaxLength)
	if err != nil {
		return nil, err
	}

	var product *models.Product
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		existing, err := activeProduct(ctx, tx, slug)
		if err != nil {
			return err
		}
		if err := s.rbac.Check(ctx, actor, models.ActionProductUpdate, &AuthTarget{SupplierID: existing.SupplierID}); err != nil {
			return err
		}
		// Re-validated on every update, even when the category is unchanged.
		if err := requireCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		if err := productSlugFree(ctx, tx, newSlug, existing.ID); err != nil {
			return err
		}

		existing.Name = in.Name
		existing.Slug = newSlug
		existing.Description = in.Description
		existing.Price = in.Price
		existing.Stock = in.Stock
		existing.CategoryID = in.CategoryID
		if err := tx.Products().Update(ctx, existing); err != nil {
			return err
		}
		product = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evict(ctx, slug)
	if newSlug != slug {
		s.evict(ctx, newSlug)
	}
	return product, nil
}

// Delete deactivates the product. Its reviews and ratings are left untouched.
func (s *productService) Delete(ctx context.Context, actor models.Actor, slug string) error {
	if err := s.rbac.Check(ctx, actor, models.ActionProductDelete, nil); err != nil {
		return err
	}
	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		existing, err := activeProduct(ctx, tx, slug)
		if err != nil {
			return err
		}
		if err := s.rbac.Check(ctx, actor, models.ActionProductDelete, &AuthTarget{SupplierID: existing.SupplierID}); err != nil {
			return err
		}
		return tx.Products().SetActive(ctx, existing.ID, false)
	})
	if err != nil {
		return err
	}

	s.evict(ctx, slug)
	s.logger.Info("product deactivated", zap.String("slug", slug), zap.Int64("actor_id", actor.ID()))
	return nil
}

func (s *productService) UploadImage(ctx context.Context, actor models.Actor, slug, filename, contentType string, reader io.Reader, size int64) (*models.Product, error) {
	if err := s.rbac.Check(ctx, actor, models.ActionProductUpdate, nil); err != nil {
		return nil, err
	}
	if s.minioSvc == nil {
		return nil, common.Invalid("image", "image storage is not configured")
	}
	if size <= 0 || size > MaxImageSize {
		return nil, common.Invalid("image", fmt.Sprintf("size must be between 1 and %d bytes", MaxImageSize))
	}
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, common.Invalid("image", "unsupported content type "+contentType)
	}

	product, err := activeProduct(ctx, s.store, slug)
	if err != nil {
		return nil, err
	}
	if err := s.rbac.Check(ctx, actor, models.ActionProductUpdate, &AuthTarget{SupplierID: product.SupplierID}); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("products/%s/%s%s", product.Slug, uuid.NewString(), ext)
	url, err := s.minioSvc.UploadImage(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload product image: %w", err)
	}
	// The product may have been deactivated while the upload ran.
	err = s.store.WithTx(ctx, func(tx repositories.Store) error {
		locked, err := tx.Products().LockForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if !locked.IsActive {
			return common.NotFound("product", slug)
		}
		if err := tx.Products().SetImageURL(ctx, locked.ID, url); err != nil {
			return err
		}
		locked.ImageURL = &url
		product = locked
		return nil
	})
	if err != nil {
		if delErr := s.minioSvc.DeleteImage(ctx, objectName); delErr != nil {
			s.logger.Warn("orphaned product image", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("product image uploaded",
		zap.String("slug", slug),
		zap.String("filename", filepath.Base(filename)),
		zap.String("object", objectName),
	)
	s.evict(ctx, slug)
	return product, nil
}

func (s *productService) evict(ctx context.Context, slug string) {
	if err := s.cacheSvc.DeleteProduct(ctx, slug); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

func validateProductInput(in models.ProductInput) error {
	if err := common.ValidateRequiredString(in.Name, "name"); err != nil {
		return err
	}
	if in.Price < 0 {
		return common.Invalid("price", "cannot be negative")
	}
	if in.Stock < 0 {
		return common.Invalid("stock", "cannot be negative")
	}
	if in.CategoryID <= 0 {
		return common.Invalid("category_id", "is required")
	}
	return nil
}

// requireCategory fails CategoryNotFound unless the category exists and is active.
func requireCategory(ctx context.Context, tx repositories.Store, id int64) error {
	category, err := tx.Categories().GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) || (err == nil && !category.IsActive) {
		return common.CategoryNotFound(id)
	}
	return err
}

func activeProduct(ctx context.Context, tx repositories.Store, slug string) (*models.Product, error) {
	product, err := tx.Products().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, common.NotFound("product", slug)
	}
	return product, nil
}

func productSlugFree(ctx context.Context, tx repositories.Store, slug string, selfID int64) error {
	other, err := tx.Products().GetBySlug(ctx, slug)
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
