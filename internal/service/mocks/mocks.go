package mocks

import (
	"context"
	"time"

	"dareboard/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDareRepository struct {
	mock.Mock
}

func (m *MockDareRepository) CreateDare(ctx context.Context, dare *model.Dare) error {
	args := m.Called(ctx, dare)
	return args.Error(0)
}

func (m *MockDareRepository) GetDareByID(ctx context.Context, dareID uuid.UUID) (*model.Dare, error) {
	args := m.Called(ctx, dareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dare), args.Error(1)
}

func (m *MockDareRepository) ListVisibleDares(ctx context.Context, vibe string) ([]*model.Dare, error) {
	args := m.Called(ctx, vibe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dare), args.Error(1)
}

func (m *MockDareRepository) ListExpiringDares(ctx context.Context, now time.Time, window time.Duration) ([]*model.Dare, error) {
	args := m.Called(ctx, now, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dare), args.Error(1)
}

func (m *MockDareRepository) ExpireDares(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockDareRepository) ListDarePruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.Dare, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Dare), args.Error(1)
}

func (m *MockDareRepository) HideDare(ctx context.Context, dareID uuid.UUID) (bool, error) {
	args := m.Called(ctx, dareID)
	return args.Bool(0), args.Error(1)
}

type MockCompletionRepository struct {
	mock.Mock
}

func (m *MockCompletionRepository) CreateCompletion(ctx context.Context, completion *model.CompletedDare) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockCompletionRepository) GetCompletionByID(ctx context.Context, completionID uuid.UUID) (*model.CompletedDare, error) {
	args := m.Called(ctx, completionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompletedDare), args.Error(1)
}

func (m *MockCompletionRepository) ListActiveCompletions(ctx context.Context, dareID *uuid.UUID) ([]*model.CompletedDare, error) {
	args := m.Called(ctx, dareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CompletedDare), args.Error(1)
}

func (m *MockCompletionRepository) ListCompletionPruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.CompletedDare, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CompletedDare), args.Error(1)
}

func (m *MockCompletionRepository) DeactivateCompletion(ctx context.Context, completionID uuid.UUID) (bool, error) {
	args := m.Called(ctx, completionID)
	return args.Bool(0), args.Error(1)
}

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) CreateEngagement(ctx context.Context, engagement *model.Engagement) (*model.Engagement, error) {
	args := m.Called(ctx, engagement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Engagement), args.Error(1)
}

func (m *MockEngagementRepository) DeleteEngagement(ctx context.Context, userID int64, target model.EngagementTarget, t model.EngagementType) error {
	args := m.Called(ctx, userID, target, t)
	return args.Error(0)
}

func (m *MockEngagementRepository) ListComments(ctx context.Context, target model.EngagementTarget) ([]*model.Engagement, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Engagement), args.Error(1)
}

func (m *MockEngagementRepository) CountEngagements(ctx context.Context, target model.EngagementTarget) (*model.EngagementCounts, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EngagementCounts), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
