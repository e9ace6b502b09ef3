package services

import (
	"context"
	"io"
	"testing"
	"time"

	"catalog/internal/caching"
	"catalog/internal/models"
	"catalog/internal/repositories/memstore"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// catalogFixture wires real services over an in-memory store.
type catalogFixture struct {
	ctx        context.Context
	store      *memstore.Store
	rbac       RBACService
	categories CategoryService
	products   ProductService
	reviews    ReviewService
	users      UserService
}

func newCatalogFixture(t *testing.T, cacheSvc caching.CacheService, minioSvc MinioService) *catalogFixture {
	t.Helper()
	if cacheSvc == nil {
		cacheSvc = caching.NewNoopCacheService()
	}
	logger := zap.NewNop()
	store := memstore.New(200 * time.Millisecond)
	rbac := NewRBACService(logger)
	categories := NewCategoryService(store, rbac, cacheSvc, time.Minute, logger)
	return &catalogFixture{
		ctx:        context.Background(),
		store:      store,
		rbac:       rbac,
		categories: categories,
		products:   NewProductService(store, rbac, categories, minioSvc, cacheSvc, time.Minute, logger),
		reviews:    NewReviewService(store, rbac, cacheSvc, logger),
		users:      NewUserService(store, rbac, logger),
	}
}

func (f *catalogFixture) user(t *testing.T, username string, admin, supplier, customer bool) models.Actor {
	t.Helper()
	u := &models.User{
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "x",
		IsAdmin:        admin,
		IsSupplier:     supplier,
		IsCustomer:     customer,
		IsActive:       true,
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return models.ActorFromUser(u)
}

func (f *catalogFixture) admin(t *testing.T) models.Actor {
	return f.user(t, "admin", true, false, false)
}

func (f *catalogFixture) category(t *testing.T, admin models.Actor, name string, parentID *int64) *models.Category {
	t.Helper()
	c, err := f.categories.Create(f.ctx, admin, models.CategoryInput{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return c
}

func (f *catalogFixture) product(t *testing.T, actor models.Actor, name string, categoryID int64, stock int) *models.Product {
	t.Helper()
	p, err := f.products.Create(f.ctx, actor, models.ProductInput{
		Name:        name,
		Description: name + " description",
		Price:       1999,
		Stock:       stock,
		CategoryID:  categoryID,
	})
	require.NoError(t, err)
	return p
}

func (f *catalogFixture) rating(t *testing.T, slug string) float64 {
	t.Helper()
	p, err := f.store.Products().GetBySlug(f.ctx, slug)
	require.NoError(t, err)
	return p.Rating
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *MockCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	args := m.Called(ctx, product, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteProduct(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockCacheService) GetCategoryScope(ctx context.Context, slug string) ([]int64, error) {
	args := m.Called(ctx, slug)
	scope, _ := args.Get(0).([]int64)
	return scope, args.Error(1)
}

func (m *MockCacheService) SetCategoryScope(ctx context.Context, slug string, scope []int64, ttl time.Duration) error {
	args := m.Called(ctx, slug, scope, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateCategoryScopes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, reader, objectSize, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMinioService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
