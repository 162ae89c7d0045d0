package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dareboard/internal/model"
	"dareboard/internal/repository"

	"github.com/google/uuid"
)

type DareService struct {
	repo          DareRepository
	defaultExpiry time.Duration
}

func NewDareService(repo DareRepository, dareExpiryDays int) *DareService {
	return &DareService{
		repo:          repo,
		defaultExpiry: time.Duration(dareExpiryDays) * 24 * time.Hour,
	}
}

func (s *DareService) CreateDare(ctx context.Context, dare *model.Dare) (uuid.UUID, error) {
	if strings.TrimSpace(dare.Title) == "" {
		return uuid.Nil, ErrTitleRequired
	}
	if !dare.Vibe.Valid() {
		return uuid.Nil, ErrInvalidVibe
	}

	now := time.Now().UTC()
	if dare.ExpiresAt.IsZero() {
		dare.ExpiresAt = now.Add(s.defaultExpiry)
	} else if !dare.ExpiresAt.After(now) {
		return uuid.Nil, ErrExpiryInPast
	}

	dare.DareID = uuid.New()
	dare.CreatedAt = now
	dare.IsActive = true
	dare.IsVisible = true

	if err := s.repo.CreateDare(ctx, dare); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create dare: %w", err)
	}

	return dare.DareID, nil
}

func (s *DareService) GetDare(ctx context.Context, dareID uuid.UUID) (*model.Dare, error) {
	dare, err := s.repo.GetDareByID(ctx, dareID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDareNotFound
		}
		return nil, fmt.Errorf("failed to get dare: %w", err)
	}

	// A pruned dare is gone from the outside.
	if !dare.IsVisible {
		return nil, ErrDareNotFound
	}

	return dare, nil
}

func (s *DareService) ListDares(ctx context.Context, vibe string) ([]*model.Dare, error) {
	if vibe != "" && !model.Vibe(vibe).Valid() {
		return nil, ErrInvalidVibe
	}

	dares, err := s.repo.ListVisibleDares(ctx, vibe)
	if err != nil {
		return nil, fmt.Errorf("failed to list dares: %w", err)
	}

	return dares, nil
}

func (s *DareService) HideDare(ctx context.Context, dareID uuid.UUID) error {
	if _, err := s.repo.GetDareByID(ctx, dareID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDareNotFound
		}
		return fmt.Errorf("failed to get dare: %w", err)
	}

	if _, err := s.repo.HideDare(ctx, dareID); err != nil {
		return fmt.Errorf("failed to hide dare: %w", err)
	}

	return nil
}
