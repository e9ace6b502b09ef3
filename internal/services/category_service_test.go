package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"catalog/internal/common"
	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	f     *catalogFixture
	admin models.Actor
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.f = newCatalogFixture(suite.T(), nil, nil)
	suite.admin = suite.f.admin(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

func (suite *CategoryServiceTestSuite) TestCreate_LongSlugFitsColumn() {
	c := suite.f.category(suite.T(), suite.admin, strings.Repeat("a&", 50), nil)
	assert.LessOrEqual(suite.T(), len(c.Slug), categorySlugMaxLength)
	assert.True(suite.T(), strings.HasPrefix(c.Slug, "a-and-a"))
}

func (suite *CategoryServiceTestSuite) TestCreate_DerivesSlug() {
	c := suite.f.category(suite.T(), suite.admin, "Home & Garden", nil)
	assert.Equal(suite.T(), "home-and-garden", c.Slug)
	assert.True(suite.T(), c.IsActive)
	assert.Nil(suite.T(), c.ParentID)
}

func (suite *CategoryServiceTestSuite) TestCreate_NonAdminForbidden() {
	supplier := suite.f.user(suite.T(), "supplier", false, true, false)
	_, err := suite.f.categories.Create(suite.f.ctx, supplier, models.CategoryInput{Name: "Toys"})
	assert.True(suite.T(), errors.Is(err, common.ErrForbidden))
}

func (suite *CategoryServiceTestSuite) TestCreate_SlugConflictIncludesInactive() {
	c := suite.f.category(suite.T(), suite.admin, "Toys", nil)
	require.NoError(suite.T(), suite.f.categories.Delete(suite.f.ctx, suite.admin, c.ID))

	_, err := suite.f.categories.Create(suite.f.ctx, suite.admin, models.CategoryInput{Name: "toys"})
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
	appErr, _ := common.AsAppError(err)
	assert.Equal(suite.T(), "slug", appErr.Field)
}

func (suite *CategoryServiceTestSuite) TestCreate_ParentMustBeActive() {
	_, err := suite.f.categories.Create(suite.f.ctx, suite.admin, models.CategoryInput{Name: "Phones", ParentID: int64Ptr(42)})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))

	parent := suite.f.category(suite.T(), suite.admin, "Electronics", nil)
	require.NoError(suite.T(), suite.f.categories.Delete(suite.f.ctx, suite.admin, parent.ID))
	_, err = suite.f.categories.Create(suite.f.ctx, suite.admin, models.CategoryInput{Name: "Phones", ParentID: &parent.ID})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *CategoryServiceTestSuite) TestCreate_NameWithoutSlugChars() {
	_, err := suite.f.categories.Create(suite.f.ctx, suite.admin, models.CategoryInput{Name: "!!!"})
	assert.True(suite.T(), errors.Is(err, common.ErrInvalid))
}

func (suite *CategoryServiceTestSuite) TestUpdate_RenameAndReparent() {
	electronics := suite.f.category(suite.T(), suite.admin, "Electronics", nil)
	gadgets := suite.f.category(suite.T(), suite.admin, "Gadgets", nil)

	updated, err := suite.f.categories.Update(suite.f.ctx, suite.admin, gadgets.ID, models.CategoryInput{
		Name:     "Smart Gadgets",
		ParentID: &electronics.ID,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "smart-gadgets", updated.Slug)
	assert.Equal(suite.T(), electronics.ID, *updated.ParentID)
}

func (suite *CategoryServiceTestSuite) TestUpdate_KeepsOwnSlug() {
	c := suite.f.category(suite.T(), suite.admin, "Books", nil)
	updated, err := suite.f.categories.Update(suite.f.ctx, suite.admin, c.ID, models.CategoryInput{Name: "BOOKS"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "books", updated.Slug)
	assert.Equal(suite.T(), "BOOKS", updated.Name)
}

func (suite *CategoryServiceTestSuite) TestUpdate_SlugTakenByOther() {
	suite.f.category(suite.T(), suite.admin, "Books", nil)
	c := suite.f.category(suite.T(), suite.admin, "Music", nil)
	_, err := suite.f.categories.Update(suite.f.ctx, suite.admin, c.ID, models.CategoryInput{Name: "Books"})
	assert.True(suite.T(), errors.Is(err, common.ErrConflict))
}

func (suite *CategoryServiceTestSuite) TestUpdate_SelfParent() {
	c := suite.f.category(suite.T(), suite.admin, "Books", nil)
	_, err := suite.f.categories.Update(suite.f.ctx, suite.admin, c.ID, models.CategoryInput{Name: "Books", ParentID: &c.ID})
	assert.True(suite.T(), errors.Is(err, common.ErrInvalid))
}

func (suite *CategoryServiceTestSuite) TestDelete_HidesFromListAndTwiceIsNotFound() {
	keep := suite.f.category(suite.T(), suite.admin, "Books", nil)
	gone := suite.f.category(suite.T(), suite.admin, "Music", nil)
	require.NoError(suite.T(), suite.f.categories.Delete(suite.f.ctx, suite.admin, gone.ID))

	list, err := suite.f.categories.List(suite.f.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 1)
	assert.Equal(suite.T(), keep.ID, list[0].ID)

	err = suite.f.categories.Delete(suite.f.ctx, suite.admin, gone.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *CategoryServiceTestSuite) TestResolveScope_SelfAndActiveDirectChildren() {
	electronics := suite.f.category(suite.T(), suite.admin, "Electronics", nil)
	phones := suite.f.category(suite.T(), suite.admin, "Phones", &electronics.ID)
	laptops := suite.f.category(suite.T(), suite.admin, "Laptops", &electronics.ID)
	suite.f.category(suite.T(), suite.admin, "Android", &phones.ID)
	require.NoError(suite.T(), suite.f.categories.Delete(suite.f.ctx, suite.admin, laptops.ID))

	scope, err := suite.f.categories.ResolveScope(suite.f.ctx, "electronics")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []int64{electronics.ID, phones.ID}, scope)
}

func (suite *CategoryServiceTestSuite) TestResolveScope_InactiveOrMissing() {
	c := suite.f.category(suite.T(), suite.admin, "Books", nil)
	require.NoError(suite.T(), suite.f.categories.Delete(suite.f.ctx, suite.admin, c.ID))

	_, err := suite.f.categories.ResolveScope(suite.f.ctx, "books")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))

	_, err = suite.f.categories.ResolveScope(suite.f.ctx, "nothing-here")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func TestCategoryService_ScopeCache(t *testing.T) {
	cache := new(MockCacheService)
	cache.Test(t)
	f := newCatalogFixture(t, cache, nil)
	admin := f.admin(t)

	cache.On("InvalidateCategoryScopes", mock.Anything).Return(nil)
	electronics := f.category(t, admin, "Electronics", nil)

	cache.On("GetCategoryScope", mock.Anything, "electronics").Return(nil, nil).Once()
	cache.On("SetCategoryScope", mock.Anything, "electronics", []int64{electronics.ID}, time.Minute).Return(nil).Once()
	scope, err := f.categories.ResolveScope(f.ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, []int64{electronics.ID}, scope)

	cache.On("GetCategoryScope", mock.Anything, "electronics").Return([]int64{electronics.ID, 77}, nil).Once()
	scope, err = f.categories.ResolveScope(f.ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, []int64{electronics.ID, 77}, scope)

	cache.AssertExpectations(t)
	cache.AssertNumberOfCalls(t, "InvalidateCategoryScopes", 1)
}

func TestCategoryService_ScopeCacheSkipsStaleResolve(t *testing.T) {
	cache := new(MockCacheService)
	cache.Test(t)
	f := newCatalogFixture(t, cache, nil)
	admin := f.admin(t)

	cache.On("InvalidateCategoryScopes", mock.Anything).Return(nil)
	electronics := f.category(t, admin, "Electronics", nil)

	// A category write lands while the resolve is in flight.
	cache.On("GetCategoryScope", mock.Anything, "electronics").Return(nil, nil).Once().Run(func(mock.Arguments) {
		f.category(t, admin, "Phones", &electronics.ID)
	})
	scope, err := f.categories.ResolveScope(f.ctx, "electronics")
	require.NoError(t, err)
	assert.Len(t, scope, 2)

	cache.AssertNotCalled(t, "SetCategoryScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNumberOfCalls(t, "InvalidateCategoryScopes", 2)
}

func TestCategoryService_ScopeCacheInvalidatesAfterRacingWrite(t *testing.T) {
	cache := new(MockCacheService)
	cache.Test(t)
	f := newCatalogFixture(t, cache, nil)
	admin := f.admin(t)

	cache.On("InvalidateCategoryScopes", mock.Anything).Return(nil)
	electronics := f.category(t, admin, "Electronics", nil)

	cache.On("GetCategoryScope", mock.Anything, "electronics").Return(nil, nil).Once()
	cache.On("SetCategoryScope", mock.Anything, "electronics", []int64{electronics.ID}, time.Minute).Return(nil).Once().Run(func(mock.Arguments) {
		f.category(t, admin, "Phones", &electronics.ID)
	})
	scope, err := f.categories.ResolveScope(f.ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, []int64{electronics.ID}, scope)

	cache.AssertExpectations(t)
	// Two creates plus the follow-up invalidation of the stale entry.
	cache.AssertNumberOfCalls(t, "InvalidateCategoryScopes", 3)
}
