package service

import (
	"context"
	"testing"

	"dareboard/internal/model"
	"dareboard/internal/repository"
	"dareboard/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCompletionService_CreateCompletion(t *testing.T) {
	dareID := uuid.New()

	tests := []struct {
		name          string
		completion    *model.CompletedDare
		mockSetup     func(mockRepo *mocks.MockCompletionRepository)
		expectedError error
	}{
		{
			name:          "missing acting user",
			completion:    &model.CompletedDare{DareID: dareID, MediaURLs: []string{"https://cdn.example/1.jpg"}},
			expectedError: ErrAuthRequired,
		},
		{
			name:          "empty media list",
			completion:    &model.CompletedDare{DareID: dareID, UserID: 123},
			expectedError: ErrMediaRequired,
		},
		{
			name:       "dare missing",
			completion: &model.CompletedDare{DareID: dareID, UserID: 123, MediaURLs: []string{"https://cdn.example/1.jpg"}},
			mockSetup: func(mockRepo *mocks.MockCompletionRepository) {
				mockRepo.On("CreateCompletion", mock.Anything, mock.Anything).
					Return(repository.ErrNotFound)
			},
			expectedError: ErrDareNotFound,
		},
		{
			name:       "dare already expired",
			completion: &model.CompletedDare{DareID: dareID, UserID: 123, MediaURLs: []string{"https://cdn.example/1.jpg"}},
			mockSetup: func(mockRepo *mocks.MockCompletionRepository) {
				mockRepo.On("CreateCompletion", mock.Anything, mock.Anything).
					Return(repository.ErrDareExpired)
			},
			expectedError: ErrDareClosed,
		},
		{
			name: "successful completion",
			completion: &model.CompletedDare{
				DareID:    dareID,
				UserID:    123,
				MediaURLs: []string{"https://cdn.example/1.jpg", "https://cdn.example/2.jpg"},
				Caption:   "did it!",
				Location:  "Lisbon",
			},
			mockSetup: func(mockRepo *mocks.MockCompletionRepository) {
				mockRepo.On("CreateCompletion", mock.Anything, mock.MatchedBy(func(c *model.CompletedDare) bool {
					return c.CompletionID != uuid.Nil &&
						c.IsActive &&
						!c.CreatedAt.IsZero()
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockCompletionRepository{}
			service := NewCompletionService(mockRepo)

			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			id, err := service.CreateCompletion(context.Background(), tt.completion)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCompletionService_GetCompletion(t *testing.T) {
	completionID := uuid.New()

	t.Run("pruned completion reads as missing", func(t *testing.T) {
		mockRepo := &mocks.MockCompletionRepository{}
		mockRepo.On("GetCompletionByID", mock.Anything, completionID).
			Return(&model.CompletedDare{CompletionID: completionID, IsActive: false}, nil)

		service := NewCompletionService(mockRepo)
		completion, err := service.GetCompletion(context.Background(), completionID)

		assert.ErrorIs(t, err, ErrCompletionNotFound)
		assert.Nil(t, completion)
	})
}
