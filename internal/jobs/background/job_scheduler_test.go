package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog/internal/caching"
	"catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]*models.ReviewView, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockReviewService) ListForProduct(ctx context.Context, productSlug string) ([]*models.ReviewView, error) {
	args := m.Called(ctx, productSlug)
	return nil, args.Error(1)
}

func (m *MockReviewService) Add(ctx context.Context, actor models.Actor, in models.ReviewInput) (*models.Review, error) {
	args := m.Called(ctx, actor, in)
	return nil, args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor models.Actor, reviewID int64) error {
	return m.Called(ctx, actor, reviewID).Error(0)
}

func (m *MockReviewService) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestScheduler(t *testing.T, reviews *MockReviewService) *JobScheduler {
	t.Helper()
	js, err := NewJobScheduler(reviews, caching.NewNoopCacheService(), time.Hour, time.Hour, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Stop() })
	return js
}

func TestNewJobScheduler_RegistersJobs(t *testing.T) {
	js := newTestScheduler(t, new(MockReviewService))
	assert.Equal(t, []string{JobScopeCacheFlush, JobRatingReconcile}, js.JobNames())
}

func TestNewJobScheduler_RejectsBadInterval(t *testing.T) {
	_, err := NewJobScheduler(new(MockReviewService), caching.NewNoopCacheService(), 0, time.Hour, zap.NewNop())
	assert.ErrorContains(t, err, "interval must be positive")
}

func TestJobScheduler_AddAndRemove(t *testing.T) {
	js := newTestScheduler(t, new(MockReviewService))

	assert.Error(t, js.AddJob("noop", -time.Second, func(context.Context) error { return nil }))
	require.NoError(t, js.AddJob("noop", time.Hour, func(context.Context) error { return nil }))
	assert.Contains(t, js.JobNames(), "noop")

	require.NoError(t, js.RemoveJob("noop"))
	assert.NotContains(t, js.JobNames(), "noop")
	assert.NoError(t, js.RemoveJob("noop"))
	assert.Error(t, js.RunNow("noop"))
}

func TestJobScheduler_RunNowReconcilesRatings(t *testing.T) {
	reviews := new(MockReviewService)
	done := make(chan struct{}, 1)
	reviews.On("RecomputeAll", mock.Anything).Return(2, nil).Run(func(mock.Arguments) {
		done <- struct{}{}
	}).Once()

	js := newTestScheduler(t, reviews)
	js.Start()
	require.NoError(t, js.RunNow(JobRatingReconcile))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reconcile job did not run")
	}
	reviews.AssertExpectations(t)
}

func TestReconcileRatings_PropagatesError(t *testing.T) {
	reviews := new(MockReviewService)
	reviews.On("RecomputeAll", mock.Anything).Return(1, errors.New("db down")).Once()

	js := newTestScheduler(t, reviews)
	assert.EqualError(t, js.reconcileRatings(context.Background()), "db down")
}

func TestJobScheduler_ReconcileLogsChangedCount(t *testing.T) {
	reviews := new(MockReviewService)
	reviews.On("RecomputeAll", mock.Anything).Return(2, nil).Once()
	core, logs := observer.New(zap.InfoLevel)
	js, err := NewJobScheduler(reviews, caching.NewNoopCacheService(), time.Hour, time.Hour, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Stop() })

	require.NoError(t, js.reconcileRatings(context.Background()))

	entries := logs.FilterMessage("rating reconciliation completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["changed"])
	assert.NotContains(t, entries[0].ContextMap(), "products")
	reviews.AssertExpectations(t)
}
