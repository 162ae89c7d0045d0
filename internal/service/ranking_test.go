package service

import (
	"context"
	"testing"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestRankingService_TrendingDares(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	idA := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	idB := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")

	hot := &model.Dare{DareID: uuid.New(), CreatedAt: base, CompletionCount: 10, SmileCount: 5}
	warm := &model.Dare{DareID: uuid.New(), CreatedAt: base.Add(time.Hour), SmileCount: 24}
	// Same score and created_at as tieLow; id breaks the tie.
	tieLow := &model.Dare{DareID: idB, CreatedAt: base, SmileCount: 3}
	tieHigh := &model.Dare{DareID: idA, CreatedAt: base, SmileCount: 3}

	mockDares := &mocks.MockDareRepository{}
	mockDares.On("ListVisibleDares", mock.Anything, "").
		Return([]*model.Dare{tieLow, hot, tieHigh, warm}, nil)

	service := NewRankingService(mockDares, &mocks.MockCompletionRepository{})

	ranked, err := service.TrendingDares(context.Background(), 0)

	assert.NoError(t, err)
	assert.Equal(t, []*model.Dare{hot, warm, tieHigh, tieLow}, ranked)

	// Same data, same order.
	again, err := service.TrendingDares(context.Background(), 0)
	assert.NoError(t, err)
	assert.Equal(t, ranked, again)
}

func TestRankingService_TrendingDares_Limit(t *testing.T) {
	mockDares := &mocks.MockDareRepository{}
	mockDares.On("ListVisibleDares", mock.Anything, "").
		Return([]*model.Dare{
			{DareID: uuid.New(), SmileCount: 9},
			{DareID: uuid.New(), SmileCount: 7},
			{DareID: uuid.New(), SmileCount: 5},
		}, nil)

	service := NewRankingService(mockDares, &mocks.MockCompletionRepository{})

	ranked, err := service.TrendingDares(context.Background(), 2)

	assert.NoError(t, err)
	assert.Len(t, ranked, 2)
	assert.Equal(t, 9, ranked[0].SmileCount)
}

func TestRankingService_TrendingCompletions(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	shared := &model.CompletedDare{CompletionID: uuid.New(), CreatedAt: base, ShareCount: 4}
	smiled := &model.CompletedDare{CompletionID: uuid.New(), CreatedAt: base, SmileCount: 5}

	mockCompletions := &mocks.MockCompletionRepository{}
	mockCompletions.On("ListActiveCompletions", mock.Anything, (*uuid.UUID)(nil)).
		Return([]*model.CompletedDare{shared, smiled}, nil)

	service := NewRankingService(&mocks.MockDareRepository{}, mockCompletions)

	ranked, err := service.TrendingCompletions(context.Background(), 0)

	assert.NoError(t, err)
	// shares*3=12 beats smiles*2=10
	assert.Equal(t, []*model.CompletedDare{shared, smiled}, ranked)
}

func TestRankingService_ExpiringSoon(t *testing.T) {
	soonest := &model.Dare{DareID: uuid.New()}
	later := &model.Dare{DareID: uuid.New()}

	mockDares := &mocks.MockDareRepository{}
	mockDares.On("ListExpiringDares", mock.Anything, mock.Anything, 24*time.Hour).
		Return([]*model.Dare{soonest, later}, nil)

	service := NewRankingService(mockDares, &mocks.MockCompletionRepository{})

	// hoursAhead <= 0 falls back to the 24h window.
	dares, err := service.ExpiringSoon(context.Background(), 0)

	assert.NoError(t, err)
	assert.Equal(t, []*model.Dare{soonest, later}, dares)
	mockDares.AssertExpectations(t)
}
