package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/repository"

	"github.com/google/uuid"
)

type CompletionService struct {
	repo CompletionRepository
}

func NewCompletionService(repo CompletionRepository) *CompletionService {
	return &CompletionService{
		repo: repo,
	}
}

func (s *CompletionService) CreateCompletion(ctx context.Context, completion *model.CompletedDare) (uuid.UUID, error) {
	if completion.UserID == 0 {
		return uuid.Nil, ErrAuthRequired
	}
	if len(completion.MediaURLs) == 0 {
		return uuid.Nil, ErrMediaRequired
	}

	completion.CompletionID = uuid.New()
	completion.CreatedAt = time.Now().UTC()
	completion.IsActive = true

	err := s.repo.CreateCompletion(ctx, completion)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return uuid.Nil, ErrDareNotFound
		case errors.Is(err, repository.ErrDareExpired):
			return uuid.Nil, ErrDareClosed
		default:
			return uuid.Nil, fmt.Errorf("failed to create completion: %w", err)
		}
	}

	return completion.CompletionID, nil
}

func (s *CompletionService) GetCompletion(ctx context.Context, completionID uuid.UUID) (*model.CompletedDare, error) {
	completion, err := s.repo.GetCompletionByID(ctx, completionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompletionNotFound
		}
		return nil, fmt.Errorf("failed to get completion: %w", err)
	}

	if !completion.IsActive {
		return nil, ErrCompletionNotFound
	}

	return completion, nil
}

func (s *CompletionService) ListCompletions(ctx context.Context, dareID *uuid.UUID) ([]*model.CompletedDare, error) {
	completions, err := s.repo.ListActiveCompletions(ctx, dareID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	return completions, nil
}
