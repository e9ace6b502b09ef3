package handlers

import (
	"context"

	"catalog/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListAll(ctx context.Context) ([]*models.ReviewView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReviewView), args.Error(1)
}

func (m *MockReviewService) ListForProduct(ctx context.Context, productSlug string) ([]*models.ReviewView, error) {
	args := m.Called(ctx, productSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReviewView), args.Error(1)
}

func (m *MockReviewService) Add(ctx context.Context, actor models.Actor, in models.ReviewInput) (*models.Review, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor models.Actor, reviewID int64) error {
	args := m.Called(ctx, actor, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) RecomputeAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetActive(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) TogglePermission(ctx context.Context, actor models.Actor, userID int64) (*models.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Deactivate(ctx context.Context, actor models.Actor, userID int64) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}
