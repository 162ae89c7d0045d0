package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dareboard/internal/model"
)

// Trending score weights. Completions carry the most signal, shares spread
// the dare, smiles and comments weigh the same.
const (
	weightCompletion = 4
	weightShare      = 3
	weightSmile      = 2
	weightComment    = 2
)

func dareScore(d *model.Dare) int {
	return d.CompletionCount*weightCompletion +
		d.ShareCount*weightShare +
		d.SmileCount*weightSmile +
		d.CommentCount*weightComment
}

func completionScore(c *model.CompletedDare) int {
	return c.ShareCount*weightShare +
		c.SmileCount*weightSmile +
		c.CommentCount*weightComment
}

type RankingService struct {
	dares       DareRepository
	completions CompletionRepository
}

func NewRankingService(dares DareRepository, completions CompletionRepository) *RankingService {
	return &RankingService{
		dares:       dares,
		completions: completions,
	}
}

func (s *RankingService) ExpiringSoon(ctx context.Context, hoursAhead int) ([]*model.Dare, error) {
	if hoursAhead <= 0 {
		hoursAhead = 24
	}

	dares, err := s.dares.ListExpiringDares(ctx, time.Now().UTC(), time.Duration(hoursAhead)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring dares: %w", err)
	}

	return dares, nil
}

func (s *RankingService) TrendingDares(ctx context.Context, limit int) ([]*model.Dare, error) {
	dares, err := s.dares.ListVisibleDares(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list dares: %w", err)
	}

	// Deterministic order: score desc, newest first, id as final tie-break
	// so repeated calls with unchanged data return the same ranking.
	sort.SliceStable(dares, func(i, j int) bool {
		si, sj := dareScore(dares[i]), dareScore(dares[j])
		if si != sj {
			return si > sj
		}
		if !dares[i].CreatedAt.Equal(dares[j].CreatedAt) {
			return dares[i].CreatedAt.After(dares[j].CreatedAt)
		}
		return dares[i].DareID.String() < dares[j].DareID.String()
	})

	if limit > 0 && len(dares) > limit {
		dares = dares[:limit]
	}

	return dares, nil
}

func (s *RankingService) TrendingCompletions(ctx context.Context, limit int) ([]*model.CompletedDare, error) {
	completions, err := s.completions.ListActiveCompletions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	sort.SliceStable(completions, func(i, j int) bool {
		si, sj := completionScore(completions[i]), completionScore(completions[j])
		if si != sj {
			return si > sj
		}
		if !completions[i].CreatedAt.Equal(completions[j].CreatedAt) {
			return completions[i].CreatedAt.After(completions[j].CreatedAt)
		}
		return completions[i].CompletionID.String() < completions[j].CompletionID.String()
	})

	if limit > 0 && len(completions) > limit {
		completions = completions[:limit]
	}

	return completions, nil
}
