package service

import (
	"context"
	"fmt"
	"time"

	"dareboard/internal/model"
	"dareboard/pkg/logger"

	"go.uber.org/zap"
)

// LifecycleConfig carries the sweep thresholds. Durations are in days.
type LifecycleConfig struct {
	DareExpiryDays          int `yaml:"dareExpiryDays"`
	LowEngagementDays       int `yaml:"lowEngagementDays"`
	CompletionLowSmilesDays int `yaml:"completionLowSmilesDays"`
	MinCompletions          int `yaml:"minCompletions"`
	MinSmiles               int `yaml:"minSmiles"`
	SweepIntervalMinutes    int `yaml:"sweepIntervalMinutes"`
}

func DefaultLifecycleConfig() LifecycleConfig {
	return LifecycleConfig{
		DareExpiryDays:          3,
		LowEngagementDays:       7,
		CompletionLowSmilesDays: 3,
		MinCompletions:          10,
		MinSmiles:               10,
		SweepIntervalMinutes:    60,
	}
}

// LifecycleService is the sweep. It keeps no state between runs; every
// decision is a function of the current data and the clock, so overlapping
// runs only race to apply the same conditional updates.
type LifecycleService struct {
	dares       DareRepository
	completions CompletionRepository
	cfg         LifecycleConfig
}

func NewLifecycleService(dares DareRepository, completions CompletionRepository, cfg LifecycleConfig) *LifecycleService {
	return &LifecycleService{
		dares:       dares,
		completions: completions,
		cfg:         cfg,
	}
}

func (s *LifecycleService) RunSweep(ctx context.Context) (*model.SweepReport, error) {
	log := logger.Logger()
	now := time.Now().UTC()
	report := &model.SweepReport{}

	expired, err := s.dares.ExpireDares(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to expire dares: %w", err)
	}
	report.ExpiredDares = expired

	report.LowEngagementDares = s.pruneDares(ctx, now)
	report.LowSmilesCompletions = s.pruneCompletions(ctx, now)

	log.Info("lifecycle sweep finished",
		zap.Int("expired_dares", report.ExpiredDares),
		zap.Int("low_engagement_dares", report.LowEngagementDares),
		zap.Int("low_smiles_completions", report.LowSmilesCompletions))

	return report, nil
}

// pruneDares hides dares that sat past expiry for the whole grace period
// without reaching the completion threshold. Failures are logged per record
// and never abort the rest of the batch.
func (s *LifecycleService) pruneDares(ctx context.Context, now time.Time) int {
	log := logger.Logger()

	cutoff := now.Add(-time.Duration(s.cfg.LowEngagementDays) * 24 * time.Hour)
	candidates, err := s.dares.ListDarePruneCandidates(ctx, cutoff)
	if err != nil {
		log.Error("failed to list dare prune candidates", zap.Error(err))
		return 0
	}

	pruned := 0
	for _, dare := range candidates {
		if dare.CompletionCount >= s.cfg.MinCompletions {
			continue
		}

		hidden, err := s.dares.HideDare(ctx, dare.DareID)
		if err != nil {
			log.Error("failed to hide low-engagement dare",
				zap.String("dare_id", dare.DareID.String()),
				zap.Error(err))
			continue
		}
		if hidden {
			pruned++
		}
	}

	return pruned
}

func (s *LifecycleService) pruneCompletions(ctx context.Context, now time.Time) int {
	log := logger.Logger()

	cutoff := now.Add(-time.Duration(s.cfg.CompletionLowSmilesDays) * 24 * time.Hour)
	candidates, err := s.completions.ListCompletionPruneCandidates(ctx, cutoff)
	if err != nil {
		log.Error("failed to list completion prune candidates", zap.Error(err))
		return 0
	}

	pruned := 0
	for _, completion := range candidates {
		if completion.SmileCount >= s.cfg.MinSmiles {
			continue
		}

		deactivated, err := s.completions.DeactivateCompletion(ctx, completion.CompletionID)
		if err != nil {
			log.Error("failed to deactivate low-smiles completion",
				zap.String("completion_id", completion.CompletionID.String()),
				zap.Error(err))
			continue
		}
		if deactivated {
			pruned++
		}
	}

	return pruned
}
