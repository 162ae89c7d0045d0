package service

import (
	"context"
	"os"
	"testing"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/service/mocks"
	"dareboard/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize("error"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestLifecycleService_RunSweep(t *testing.T) {
	cfg := DefaultLifecycleConfig()

	lowDareID := uuid.New()
	healthyDareID := uuid.New()
	lowCompletionID := uuid.New()
	healthyCompletionID := uuid.New()

	mockDares := &mocks.MockDareRepository{}
	mockCompletions := &mocks.MockCompletionRepository{}
	service := NewLifecycleService(mockDares, mockCompletions, cfg)

	mockDares.On("ExpireDares", mock.Anything, mock.Anything).Return(2, nil)

	mockDares.On("ListDarePruneCandidates", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-time.Duration(cfg.LowEngagementDays) * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < 2*time.Second
	})).Return([]*model.Dare{
		{DareID: lowDareID, CompletionCount: cfg.MinCompletions - 1},
		{DareID: healthyDareID, CompletionCount: cfg.MinCompletions},
	}, nil)
	mockDares.On("HideDare", mock.Anything, lowDareID).Return(true, nil)

	mockCompletions.On("ListCompletionPruneCandidates", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-time.Duration(cfg.CompletionLowSmilesDays) * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < 2*time.Second
	})).Return([]*model.CompletedDare{
		{CompletionID: lowCompletionID, SmileCount: 5},
		{CompletionID: healthyCompletionID, SmileCount: cfg.MinSmiles},
	}, nil)
	mockCompletions.On("DeactivateCompletion", mock.Anything, lowCompletionID).Return(true, nil)

	report, err := service.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.ExpiredDares)
	assert.Equal(t, 1, report.LowEngagementDares)
	assert.Equal(t, 1, report.LowSmilesCompletions)

	// Records at the threshold stay untouched.
	mockDares.AssertNotCalled(t, "HideDare", mock.Anything, healthyDareID)
	mockCompletions.AssertNotCalled(t, "DeactivateCompletion", mock.Anything, healthyCompletionID)

	mockDares.AssertExpectations(t)
	mockCompletions.AssertExpectations(t)
}

func TestLifecycleService_RunSweep_Idempotent(t *testing.T) {
	cfg := DefaultLifecycleConfig()

	prunedDareID := uuid.New()
	prunedCompletionID := uuid.New()

	mockDares := &mocks.MockDareRepository{}
	mockCompletions := &mocks.MockCompletionRepository{}
	service := NewLifecycleService(mockDares, mockCompletions, cfg)

	// Second run with the same clock: the conditional updates match
	// nothing and the already-pruned candidates report no change.
	mockDares.On("ExpireDares", mock.Anything, mock.Anything).Return(0, nil)
	mockDares.On("ListDarePruneCandidates", mock.Anything, mock.Anything).
		Return([]*model.Dare{{DareID: prunedDareID, CompletionCount: 3}}, nil)
	mockDares.On("HideDare", mock.Anything, prunedDareID).Return(false, nil)

	mockCompletions.On("ListCompletionPruneCandidates", mock.Anything, mock.Anything).
		Return([]*model.CompletedDare{{CompletionID: prunedCompletionID, SmileCount: 0}}, nil)
	mockCompletions.On("DeactivateCompletion", mock.Anything, prunedCompletionID).Return(false, nil)

	report, err := service.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &model.SweepReport{}, report)
}

func TestLifecycleService_RunSweep_PartialFailure(t *testing.T) {
	cfg := DefaultLifecycleConfig()

	failingDareID := uuid.New()
	okDareID := uuid.New()

	mockDares := &mocks.MockDareRepository{}
	mockCompletions := &mocks.MockCompletionRepository{}
	service := NewLifecycleService(mockDares, mockCompletions, cfg)

	mockDares.On("ExpireDares", mock.Anything, mock.Anything).Return(0, nil)
	mockDares.On("ListDarePruneCandidates", mock.Anything, mock.Anything).
		Return([]*model.Dare{
			{DareID: failingDareID, CompletionCount: 0},
			{DareID: okDareID, CompletionCount: 0},
		}, nil)
	mockDares.On("HideDare", mock.Anything, failingDareID).Return(false, assert.AnError)
	mockDares.On("HideDare", mock.Anything, okDareID).Return(true, nil)

	mockCompletions.On("ListCompletionPruneCandidates", mock.Anything, mock.Anything).
		Return([]*model.CompletedDare{}, nil)

	report, err := service.RunSweep(context.Background())

	// One record failing never aborts the rest of the batch.
	assert.NoError(t, err)
	assert.Equal(t, 1, report.LowEngagementDares)
	mockDares.AssertExpectations(t)
}
