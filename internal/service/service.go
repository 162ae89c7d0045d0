package service

import (
	"context"
	"errors"
	"time"

	"dareboard/internal/model"

	"github.com/google/uuid"
)

var (
	ErrAuthRequired       = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")
	ErrDareNotFound       = errors.New("dare not found")
	ErrDareClosed         = errors.New("dare no longer accepts completions")
	ErrCompletionNotFound = errors.New("completion not found")
	ErrTargetNotFound     = errors.New("engagement target not found or inactive")
	ErrAlreadyEngaged     = errors.New("engagement already exists")

	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidVibe     = errors.New("invalid vibe")
	ErrExpiryInPast    = errors.New("expiry must be in the future")
	ErrMediaRequired   = errors.New("at least one media url is required")
	ErrInvalidTarget   = errors.New("exactly one of dare_id and completion_id is required")
	ErrInvalidType     = errors.New("invalid engagement type")
	ErrContentRequired = errors.New("content is required for this engagement type")
)

type DareServiceI interface {
	CreateDare(ctx context.Context, dare *model.Dare) (uuid.UUID, error)
	GetDare(ctx context.Context, dareID uuid.UUID) (*model.Dare, error)
	ListDares(ctx context.Context, vibe string) ([]*model.Dare, error)
	HideDare(ctx context.Context, dareID uuid.UUID) error
}

type CompletionServiceI interface {
	CreateCompletion(ctx context.Context, completion *model.CompletedDare) (uuid.UUID, error)
	GetCompletion(ctx context.Context, completionID uuid.UUID) (*model.CompletedDare, error)
	ListCompletions(ctx context.Context, dareID *uuid.UUID) ([]*model.CompletedDare, error)
}

type EngagementServiceI interface {
	CreateEngagement(ctx context.Context, engagement *model.Engagement) (*model.Engagement, error)
	DeleteEngagement(ctx context.Context, userID int64, target model.EngagementTarget, t model.EngagementType) error
	ListComments(ctx context.Context, target model.EngagementTarget) ([]*model.Engagement, error)
	Recount(ctx context.Context, target model.EngagementTarget) (*model.EngagementCounts, error)
}

type LifecycleServiceI interface {
	RunSweep(ctx context.Context) (*model.SweepReport, error)
}

type RankingServiceI interface {
	ExpiringSoon(ctx context.Context, hoursAhead int) ([]*model.Dare, error)
	TrendingDares(ctx context.Context, limit int) ([]*model.Dare, error)
	TrendingCompletions(ctx context.Context, limit int) ([]*model.CompletedDare, error)
}

type UserServiceI interface {
	RegisterUser(ctx context.Context, user *model.User) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type DareRepository interface {
	CreateDare(ctx context.Context, dare *model.Dare) error
	GetDareByID(ctx context.Context, dareID uuid.UUID) (*model.Dare, error)
	ListVisibleDares(ctx context.Context, vibe string) ([]*model.Dare, error)
	ListExpiringDares(ctx context.Context, now time.Time, window time.Duration) ([]*model.Dare, error)
	ExpireDares(ctx context.Context, now time.Time) (int, error)
	ListDarePruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.Dare, error)
	HideDare(ctx context.Context, dareID uuid.UUID) (bool, error)
}

type CompletionRepository interface {
	CreateCompletion(ctx context.Context, completion *model.CompletedDare) error
	GetCompletionByID(ctx context.Context, completionID uuid.UUID) (*model.CompletedDare, error)
	ListActiveCompletions(ctx context.Context, dareID *uuid.UUID) ([]*model.CompletedDare, error)
	ListCompletionPruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.CompletedDare, error)
	DeactivateCompletion(ctx context.Context, completionID uuid.UUID) (bool, error)
}

type EngagementRepository interface {
	CreateEngagement(ctx context.Context, engagement *model.Engagement) (*model.Engagement, error)
	DeleteEngagement(ctx context.Context, userID int64, target model.EngagementTarget, t model.EngagementType) error
	ListComments(ctx context.Context, target model.EngagementTarget) ([]*model.Engagement, error)
	CountEngagements(ctx context.Context, target model.EngagementTarget) (*model.EngagementCounts, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}
