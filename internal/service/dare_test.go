package service

import (
	"context"
	"testing"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/repository"
	"dareboard/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDareService_CreateDare(t *testing.T) {
	tests := []struct {
		name          string
		dare          *model.Dare
		mockSetup     func(mockRepo *mocks.MockDareRepository)
		expectedError error
	}{
		{
			name:          "empty title",
			dare:          &model.Dare{Title: "  ", Vibe: model.VibeBold, CreatorID: 1},
			expectedError: ErrTitleRequired,
		},
		{
			name:          "invalid vibe",
			dare:          &model.Dare{Title: "Dance in the rain", Vibe: model.Vibe("Moody"), CreatorID: 1},
			expectedError: ErrInvalidVibe,
		},
		{
			name: "expiry in the past",
			dare: &model.Dare{
				Title:     "Dance in the rain",
				Vibe:      model.VibeBold,
				CreatorID: 1,
				ExpiresAt: time.Now().UTC().Add(-time.Hour),
			},
			expectedError: ErrExpiryInPast,
		},
		{
			name: "default expiry applied",
			dare: &model.Dare{Title: "Dance in the rain", Vibe: model.VibeBold, CreatorID: 1},
			mockSetup: func(mockRepo *mocks.MockDareRepository) {
				mockRepo.On("CreateDare", mock.Anything, mock.MatchedBy(func(d *model.Dare) bool {
					remaining := d.ExpiresAt.Sub(d.CreatedAt)
					return d.DareID != uuid.Nil &&
						d.IsActive && d.IsVisible &&
						remaining == 72*time.Hour
				})).Return(nil)
			},
		},
		{
			name: "explicit future expiry kept",
			dare: &model.Dare{
				Title:     "Compliment a stranger",
				Vibe:      model.VibeSocial,
				CreatorID: 1,
				ExpiresAt: time.Now().UTC().Add(6 * time.Hour),
			},
			mockSetup: func(mockRepo *mocks.MockDareRepository) {
				mockRepo.On("CreateDare", mock.Anything, mock.MatchedBy(func(d *model.Dare) bool {
					return d.ExpiresAt.Sub(d.CreatedAt) < 7*time.Hour
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockDareRepository{}
			service := NewDareService(mockRepo, 3)

			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			id, err := service.CreateDare(context.Background(), tt.dare)

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

func TestDareService_GetDare(t *testing.T) {
	dareID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		mockRepo := &mocks.MockDareRepository{}
		mockRepo.On("GetDareByID", mock.Anything, dareID).Return(nil, repository.ErrNotFound)

		service := NewDareService(mockRepo, 3)
		dare, err := service.GetDare(context.Background(), dareID)

		assert.ErrorIs(t, err, ErrDareNotFound)
		assert.Nil(t, dare)
	})

	t.Run("pruned dare reads as missing", func(t *testing.T) {
		mockRepo := &mocks.MockDareRepository{}
		mockRepo.On("GetDareByID", mock.Anything, dareID).
			Return(&model.Dare{DareID: dareID, IsVisible: false}, nil)

		service := NewDareService(mockRepo, 3)
		dare, err := service.GetDare(context.Background(), dareID)

		assert.ErrorIs(t, err, ErrDareNotFound)
		assert.Nil(t, dare)
	})

	t.Run("expired but visible dare still reads", func(t *testing.T) {
		mockRepo := &mocks.MockDareRepository{}
		mockRepo.On("GetDareByID", mock.Anything, dareID).
			Return(&model.Dare{DareID: dareID, IsActive: false, IsVisible: true}, nil)

		service := NewDareService(mockRepo, 3)
		dare, err := service.GetDare(context.Background(), dareID)

		assert.NoError(t, err)
		assert.NotNil(t, dare)
	})
}
