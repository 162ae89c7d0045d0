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

// EngagementNotifier receives every successfully created engagement, for the
// live feed. A nil notifier disables broadcasting.
type EngagementNotifier interface {
	EngagementCreated(engagement *model.Engagement)
}

type EngagementService struct {
	repo     EngagementRepository
	notifier EngagementNotifier
}

func NewEngagementService(repo EngagementRepository, notifier EngagementNotifier) *EngagementService {
	return &EngagementService{
		repo:     repo,
		notifier: notifier,
	}
}

func validateTarget(target model.EngagementTarget) error {
	if (target.DareID == nil) == (target.CompletionID == nil) {
		return ErrInvalidTarget
	}
	return nil
}

func (s *EngagementService) CreateEngagement(ctx context.Context, engagement *model.Engagement) (*model.Engagement, error) {
	if engagement.UserID == 0 {
		return nil, ErrAuthRequired
	}
	if err := validateTarget(engagement.Target); err != nil {
		return nil, err
	}
	if !engagement.Type.Valid() {
		return nil, ErrInvalidType
	}

	// Comment text and the tagged-user handle travel in content.
	switch engagement.Type {
	case model.EngagementComment, model.EngagementTag:
		if strings.TrimSpace(engagement.Content) == "" {
			return nil, ErrContentRequired
		}
	}

	engagement.EngagementID = uuid.New()
	engagement.CreatedAt = time.Now().UTC()

	created, err := s.repo.CreateEngagement(ctx, engagement)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound),
			errors.Is(err, repository.ErrTargetInactive):
			return nil, ErrTargetNotFound
		case errors.Is(err, repository.ErrEngagementExists):
			return nil, ErrAlreadyEngaged
		default:
			return nil, fmt.Errorf("failed to create engagement: %w", err)
		}
	}

	if s.notifier != nil {
		s.notifier.EngagementCreated(created)
	}

	return created, nil
}

// DeleteEngagement removes a smile or tag. A missing record is a no-op so
// un-smile keeps toggle semantics.
func (s *EngagementService) DeleteEngagement(ctx context.Context, userID int64, target model.EngagementTarget, t model.EngagementType) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	if err := validateTarget(target); err != nil {
		return err
	}
	if !t.Valid() || !t.Unique() {
		return ErrInvalidType
	}

	err := s.repo.DeleteEngagement(ctx, userID, target, t)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete engagement: %w", err)
	}

	return nil
}

func (s *EngagementService) ListComments(ctx context.Context, target model.EngagementTarget) ([]*model.Engagement, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// Recount tallies a target's engagements straight from the ledger so the
// denormalized counters can be audited against it.
func (s *EngagementService) Recount(ctx context.Context, target model.EngagementTarget) (*model.EngagementCounts, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountEngagements(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to count engagements: %w", err)
	}

	return counts, nil
}
