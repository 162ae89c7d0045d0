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

type capturedFeed struct {
	events []*model.Engagement
}

func (f *capturedFeed) EngagementCreated(engagement *model.Engagement) {
	f.events = append(f.events, engagement)
}

func TestEngagementService_CreateEngagement(t *testing.T) {
	dareID := uuid.New()
	completionID := uuid.New()

	tests := []struct {
		name          string
		engagement    *model.Engagement
		mockSetup     func(mockRepo *mocks.MockEngagementRepository)
		expectedError error
		expectNotify  bool
	}{
		{
			name: "missing acting user",
			engagement: &model.Engagement{
				Target: model.EngagementTarget{DareID: &dareID},
				Type:   model.EngagementSmile,
			},
			expectedError: ErrAuthRequired,
		},
		{
			name: "no target",
			engagement: &model.Engagement{
				UserID: 123,
				Type:   model.EngagementSmile,
			},
			expectedError: ErrInvalidTarget,
		},
		{
			name: "both targets",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{DareID: &dareID, CompletionID: &completionID},
				Type:   model.EngagementSmile,
			},
			expectedError: ErrInvalidTarget,
		},
		{
			name: "invalid type",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{DareID: &dareID},
				Type:   model.EngagementType("wave"),
			},
			expectedError: ErrInvalidType,
		},
		{
			name: "comment without content",
			engagement: &model.Engagement{
				UserID:  123,
				Target:  model.EngagementTarget{DareID: &dareID},
				Type:    model.EngagementComment,
				Content: "   ",
			},
			expectedError: ErrContentRequired,
		},
		{
			name: "duplicate smile",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{DareID: &dareID},
				Type:   model.EngagementSmile,
			},
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("CreateEngagement", mock.Anything, mock.Anything).
					Return(nil, repository.ErrEngagementExists)
			},
			expectedError: ErrAlreadyEngaged,
		},
		{
			name: "inactive target",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{CompletionID: &completionID},
				Type:   model.EngagementSmile,
			},
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("CreateEngagement", mock.Anything, mock.Anything).
					Return(nil, repository.ErrTargetInactive)
			},
			expectedError: ErrTargetNotFound,
		},
		{
			name: "missing target",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{DareID: &dareID},
				Type:   model.EngagementShare,
			},
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("CreateEngagement", mock.Anything, mock.Anything).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrTargetNotFound,
		},
		{
			name: "successful smile",
			engagement: &model.Engagement{
				UserID: 123,
				Target: model.EngagementTarget{DareID: &dareID},
				Type:   model.EngagementSmile,
			},
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("CreateEngagement", mock.Anything, mock.MatchedBy(func(e *model.Engagement) bool {
					return e.UserID == 123 &&
						e.EngagementID != uuid.Nil &&
						!e.CreatedAt.IsZero()
				})).Return(&model.Engagement{
					EngagementID: uuid.New(),
					UserID:       123,
					Username:     "daredevil",
					Target:       model.EngagementTarget{DareID: &dareID},
					Type:         model.EngagementSmile,
				}, nil)
			},
			expectNotify: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockEngagementRepository{}
			feed := &capturedFeed{}
			service := NewEngagementService(mockRepo, feed)

			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			created, err := service.CreateEngagement(context.Background(), tt.engagement)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
				assert.Empty(t, feed.events)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.Equal(t, "daredevil", created.Username)
			}

			if tt.expectNotify {
				assert.Len(t, feed.events, 1)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEngagementService_DeleteEngagement(t *testing.T) {
	dareID := uuid.New()
	target := model.EngagementTarget{DareID: &dareID}

	tests := []struct {
		name          string
		userID        int64
		engType       model.EngagementType
		mockSetup     func(mockRepo *mocks.MockEngagementRepository)
		expectedError error
	}{
		{
			name:          "missing acting user",
			userID:        0,
			engType:       model.EngagementSmile,
			expectedError: ErrAuthRequired,
		},
		{
			name:          "comments cannot be toggled",
			userID:        123,
			engType:       model.EngagementComment,
			expectedError: ErrInvalidType,
		},
		{
			name:    "delete when absent is a no-op",
			userID:  123,
			engType: model.EngagementSmile,
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("DeleteEngagement", mock.Anything, int64(123), target, model.EngagementSmile).
					Return(repository.ErrNotFound)
			},
		},
		{
			name:    "successful un-tag",
			userID:  123,
			engType: model.EngagementTag,
			mockSetup: func(mockRepo *mocks.MockEngagementRepository) {
				mockRepo.On("DeleteEngagement", mock.Anything, int64(123), target, model.EngagementTag).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockEngagementRepository{}
			service := NewEngagementService(mockRepo, nil)

			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			err := service.DeleteEngagement(context.Background(), tt.userID, target, tt.engType)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
