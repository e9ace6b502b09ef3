package services

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"catalog/internal/common"
	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	f        *catalogFixture
	admin    models.Actor
	supplier models.Actor
	alice    models.Actor
	bob      models.Actor
	product  *models.Product
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	t := suite.T()
	suite.f = newCatalogFixture(t, nil, nil)
	suite.admin = suite.f.admin(t)
	suite.supplier = suite.f.user(t, "supplier", false, true, false)
	suite.alice = suite.f.user(t, "alice", false, false, true)
	suite.bob = suite.f.user(t, "bob", false, false, true)

	category := suite.f.category(t, suite.admin, "Electronics", nil)
	suite.product = suite.f.product(t, suite.supplier, "Phone X", category.ID, 10)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}

func (suite *ReviewServiceTestSuite) add(actor models.Actor, grade int, comment *string) *models.Review {
	review, err := suite.f.reviews.Add(suite.f.ctx, actor, models.ReviewInput{
		ProductID: suite.product.ID,
		Grade:     grade,
		Comment:   comment,
	})
	require.NoError(suite.T(), err)
	return review
}

func (suite *ReviewServiceTestSuite) TestAddAndDelete_RecomputesRating() {
	first := suite.add(suite.alice, 5, stringPtr("great"))
	assert.Equal(suite.T(), 5.0, suite.f.rating(suite.T(), suite.product.Slug))

	second := suite.add(suite.bob, 3, nil)
	assert.Equal(suite.T(), 4.0, suite.f.rating(suite.T(), suite.product.Slug))

	require.NoError(suite.T(), suite.f.reviews.Delete(suite.f.ctx, suite.admin, second.ID))
	assert.Equal(suite.T(), 5.0, suite.f.rating(suite.T(), suite.product.Slug))

	require.NoError(suite.T(), suite.f.reviews.Delete(suite.f.ctx, suite.admin, first.ID))
	assert.Equal(suite.T(), 0.0, suite.f.rating(suite.T(), suite.product.Slug))
}

func (suite *ReviewServiceTestSuite) TestAdd_CreatesRatingAndReviewTogether() {
	review := suite.add(suite.alice, 4, stringPtr("solid"))

	assert.NotZero(suite.T(), review.ID)
	assert.Equal(suite.T(), suite.alice.ID(), review.UserID)
	assert.False(suite.T(), review.CommentDate.IsZero())

	rating, err := suite.f.store.Ratings().GetByID(suite.f.ctx, review.RatingID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, rating.Grade)
	assert.True(suite.T(), rating.IsActive)
	assert.Equal(suite.T(), suite.product.ID, rating.ProductID)
}

func (suite *ReviewServiceTestSuite) TestAdd_ConcurrentReviewersBothCounted() {
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, in := range []struct {
		actor models.Actor
		grade int
	}{{suite.alice, 4}, {suite.bob, 2}} {
		wg.Add(1)
		go func(i int, actor models.Actor, grade int) {
			defer wg.Done()
			_, errs[i] = suite.f.reviews.Add(suite.f.ctx, actor, models.ReviewInput{ProductID: suite.product.ID, Grade: grade})
		}(i, in.actor, in.grade)
	}
	wg.Wait()

	require.NoError(suite.T(), errs[0])
	require.NoError(suite.T(), errs[1])
	assert.Equal(suite.T(), 3.0, suite.f.rating(suite.T(), suite.product.Slug))
}

func (suite *ReviewServiceTestSuite) TestAdd_SameUserMayReviewTwice() {
	suite.add(suite.alice, 5, nil)
	suite.add(suite.alice, 1, nil)
	assert.Equal(suite.T(), 3.0, suite.f.rating(suite.T(), suite.product.Slug))
}

func (suite *ReviewServiceTestSuite) TestAdd_TrimsCommentWithoutTouchingInput() {
	comment := "  nice  "
	review := suite.add(suite.alice, 4, &comment)

	assert.Equal(suite.T(), "  nice  ", comment)
	require.NotNil(suite.T(), review.Comment)
	assert.Equal(suite.T(), "nice", *review.Comment)
}

func (suite *ReviewServiceTestSuite) TestAdd_RejectsBadGrade() {
	for _, grade := range []int{0, 6, -1} {
		_, err := suite.f.reviews.Add(suite.f.ctx, suite.alice, models.ReviewInput{ProductID: suite.product.ID, Grade: grade})
		assert.True(suite.T(), errors.Is(err, common.ErrInvalid), "grade %d", grade)
	}
	assert.Equal(suite.T(), 0.0, suite.f.rating(suite.T(), suite.product.Slug))
}

func (suite *ReviewServiceTestSuite) TestAdd_RejectsLongComment() {
	long := strings.Repeat("a", models.MaxCommentLength+1)
	_, err := suite.f.reviews.Add(suite.f.ctx, suite.alice, models.ReviewInput{ProductID: suite.product.ID, Grade: 3, Comment: &long})
	assert.True(suite.T(), errors.Is(err, common.ErrInvalid))

	reviews, err := suite.f.reviews.ListAll(suite.f.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), reviews)
}

func (suite *ReviewServiceTestSuite) TestAdd_SupplierForbidden() {
	_, err := suite.f.reviews.Add(suite.f.ctx, suite.supplier, models.ReviewInput{ProductID: suite.product.ID, Grade: 5})
	assert.True(suite.T(), errors.Is(err, common.ErrForbidden))
}

func (suite *ReviewServiceTestSuite) TestAdd_InactiveProductNotFound() {
	require.NoError(suite.T(), suite.f.products.Delete(suite.f.ctx, suite.supplier, suite.product.Slug))

	_, err := suite.f.reviews.Add(suite.f.ctx, suite.alice, models.ReviewInput{ProductID: suite.product.ID, Grade: 5})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ReviewServiceTestSuite) TestAdd_UnknownProductNotFound() {
	_, err := suite.f.reviews.Add(suite.f.ctx, suite.alice, models.ReviewInput{ProductID: 999, Grade: 5})
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ReviewServiceTestSuite) TestDelete_Twice() {
	review := suite.add(suite.alice, 2, nil)
	require.NoError(suite.T(), suite.f.reviews.Delete(suite.f.ctx, suite.admin, review.ID))

	err := suite.f.reviews.Delete(suite.f.ctx, suite.admin, review.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))

	rating, err := suite.f.store.Ratings().GetByID(suite.f.ctx, review.RatingID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), rating.IsActive)
}

func (suite *ReviewServiceTestSuite) TestDelete_RequiresAdmin() {
	review := suite.add(suite.alice, 2, nil)
	err := suite.f.reviews.Delete(suite.f.ctx, suite.alice, review.ID)
	assert.True(suite.T(), errors.Is(err, common.ErrForbidden))
	assert.Equal(suite.T(), 2.0, suite.f.rating(suite.T(), suite.product.Slug))
}

func (suite *ReviewServiceTestSuite) TestListForProduct() {
	suite.add(suite.alice, 5, stringPtr("love it"))
	removed := suite.add(suite.bob, 1, nil)
	require.NoError(suite.T(), suite.f.reviews.Delete(suite.f.ctx, suite.admin, removed.ID))

	reviews, err := suite.f.reviews.ListForProduct(suite.f.ctx, suite.product.Slug)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reviews, 1)
	assert.Equal(suite.T(), 5, reviews[0].Grade)
	assert.Equal(suite.T(), "alice", reviews[0].Username)
	assert.Equal(suite.T(), "love it", *reviews[0].Comment)
}

func (suite *ReviewServiceTestSuite) TestListForProduct_EmptyIsNotAnError() {
	reviews, err := suite.f.reviews.ListForProduct(suite.f.ctx, suite.product.Slug)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), reviews)
}

func (suite *ReviewServiceTestSuite) TestListForProduct_UnknownSlug() {
	_, err := suite.f.reviews.ListForProduct(suite.f.ctx, "no-such-product")
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ReviewServiceTestSuite) TestRecomputeAll_CorrectsDrift() {
	suite.add(suite.alice, 4, nil)
	suite.add(suite.bob, 5, nil)
	require.NoError(suite.T(), suite.f.store.Products().UpdateRating(suite.f.ctx, suite.product.ID, 1.0))

	changed, err := suite.f.reviews.RecomputeAll(suite.f.ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, changed)
	assert.Equal(suite.T(), 4.5, suite.f.rating(suite.T(), suite.product.Slug))

	changed, err = suite.f.reviews.RecomputeAll(suite.f.ctx)
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), changed)
}
