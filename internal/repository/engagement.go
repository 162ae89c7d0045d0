package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dareboard/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Engagement struct {
	EngagementID uuid.UUID  `db:"engagement_id"`
	UserID       int64      `db:"user_telegram_id"`
	Username     string     `db:"username"`
	DareID       *uuid.UUID `db:"dare_id"`
	CompletionID *uuid.UUID `db:"completion_id"`
	Type         string     `db:"engagement_type"`
	Content      string     `db:"content"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (e *Engagement) toModel() *model.Engagement {
	return &model.Engagement{
		EngagementID: e.EngagementID,
		UserID:       e.UserID,
		Username:     e.Username,
		Target: model.EngagementTarget{
			DareID:       e.DareID,
			CompletionID: e.CompletionID,
		},
		Type:      model.EngagementType(e.Type),
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
	}
}

// counterColumn maps an engagement type to the denormalized counter it
// maintains on its target. Tags carry no counter.
func counterColumn(t model.EngagementType) string {
	switch t {
	case model.EngagementSmile:
		return "smile_count"
	case model.EngagementComment:
		return "comment_count"
	case model.EngagementShare:
		return "share_count"
	}
	return ""
}

func (r *Repository) checkEngagementTarget(ctx context.Context, tx *sqlx.Tx, target model.EngagementTarget) error {
	var (
		builder squirrel.SelectBuilder
	)

	if target.DareID != nil {
		builder = squirrel.
			Select("is_visible").
			From("dares").
			Where(squirrel.Eq{"dare_id": *target.DareID})
	} else {
		builder = squirrel.
			Select("is_active").
			From("completed_dares").
			Where(squirrel.Eq{"completion_id": *target.CompletionID})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	var live bool
	err = tx.GetContext(ctx, &live, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !live {
		return ErrTargetInactive
	}

	return nil
}

func bumpTargetCounter(ctx context.Context, tx *sqlx.Tx, target model.EngagementTarget, t model.EngagementType, delta int) error {
	column := counterColumn(t)
	if column == "" {
		return nil
	}
	if target.DareID != nil {
		return incrementDareCounter(ctx, tx, *target.DareID, column, delta)
	}
	return incrementCompletionCounter(ctx, tx, *target.CompletionID, column, delta)
}

// CreateEngagement persists the ledger record and bumps the target's counter
// in one transaction. Smiles and tags are unique per (user, target, type);
// a duplicate fails with ErrEngagementExists. The created record comes back
// with the author's username attached for immediate UI feedback.
func (r *Repository) CreateEngagement(ctx context.Context, engagement *model.Engagement) (*model.Engagement, error) {
	created := *engagement

	err := r.withRetry(ctx, func(tx *sqlx.Tx) error {
		if err := r.checkEngagementTarget(ctx, tx, engagement.Target); err != nil {
			return err
		}

		if engagement.Type.Unique() {
			existsQuery, existsArgs, err := squirrel.
				Select("1").
				From("engagements").
				Where(engagementTupleEq(engagement.UserID, engagement.Target, engagement.Type)).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return err
			}

			var exists bool
			err = tx.GetContext(ctx, &exists, existsQuery, existsArgs...)
			if err == nil {
				return ErrEngagementExists
			} else if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("engagements").
			SetMap(map[string]interface{}{
				"engagement_id":    engagement.EngagementID,
				"user_telegram_id": engagement.UserID,
				"dare_id":          engagement.Target.DareID,
				"completion_id":    engagement.Target.CompletionID,
				"engagement_type":  string(engagement.Type),
				"content":          engagement.Content,
				"created_at":       engagement.CreatedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build engagement insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("failed to insert engagement: %w", err)
		}

		if err := bumpTargetCounter(ctx, tx, engagement.Target, engagement.Type, 1); err != nil {
			return err
		}

		usernameQuery, usernameArgs, err := squirrel.
			Select("username").
			From("users").
			Where(squirrel.Eq{"telegram_id": engagement.UserID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		return tx.GetContext(ctx, &created.Username, usernameQuery, usernameArgs...)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// DeleteEngagement removes the record matching the uniqueness tuple and
// decrements the counter. ErrNotFound when no record matches; the service
// treats that as a no-op to keep toggles idempotent.
func (r *Repository) DeleteEngagement(ctx context.Context, userID int64, target model.EngagementTarget, t model.EngagementType) error {
	return r.withRetry(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Delete("engagements").
			Where(engagementTupleEq(userID, target, t)).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		return bumpTargetCounter(ctx, tx, target, t, -1)
	})
}

func engagementTupleEq(userID int64, target model.EngagementTarget, t model.EngagementType) squirrel.Eq {
	eq := squirrel.Eq{
		"user_telegram_id": userID,
		"engagement_type":  string(t),
	}
	if target.DareID != nil {
		eq["dare_id"] = *target.DareID
	} else {
		eq["completion_id"] = *target.CompletionID
	}
	return eq
}

// ListComments returns a target's comments newest first, joined with the
// author's username.
func (r *Repository) ListComments(ctx context.Context, target model.EngagementTarget) ([]*model.Engagement, error) {
	builder := squirrel.
		Select(
			"e.engagement_id",
			"e.user_telegram_id",
			"u.username",
			"e.dare_id",
			"e.completion_id",
			"e.engagement_type",
			"e.content",
			"e.created_at",
		).
		From("engagements e").
		Join("users u ON u.telegram_id = e.user_telegram_id").
		Where(squirrel.Eq{"e.engagement_type": string(model.EngagementComment)}).
		OrderBy("e.created_at DESC", "e.engagement_id").
		PlaceholderFormat(squirrel.Dollar)

	if target.DareID != nil {
		builder = builder.Where(squirrel.Eq{"e.dare_id": *target.DareID})
	} else {
		builder = builder.Where(squirrel.Eq{"e.completion_id": *target.CompletionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var comments []*Engagement
	err = r.db.SelectContext(ctx, &comments, query, args...)
	if err != nil {
		return nil, err
	}

	commentList := make([]*model.Engagement, len(comments))
	for i, c := range comments {
		commentList[i] = c.toModel()
	}

	return commentList, nil
}

type engagementTally struct {
	Smiles   int `db:"smiles"`
	Comments int `db:"comments"`
	Shares   int `db:"shares"`
	Tags     int `db:"tags"`
}

// CountEngagements recomputes a target's tally from the ledger. Audit and
// reconciliation only; the read path uses the denormalized counters.
func (r *Repository) CountEngagements(ctx context.Context, target model.EngagementTarget) (*model.EngagementCounts, error) {
	builder := squirrel.
		Select(
			"COUNT(*) FILTER (WHERE engagement_type = 'smile') AS smiles",
			"COUNT(*) FILTER (WHERE engagement_type = 'comment') AS comments",
			"COUNT(*) FILTER (WHERE engagement_type = 'share') AS shares",
			"COUNT(*) FILTER (WHERE engagement_type = 'tag') AS tags",
		).
		From("engagements").
		PlaceholderFormat(squirrel.Dollar)

	if target.DareID != nil {
		builder = builder.Where(squirrel.Eq{"dare_id": *target.DareID})
	} else {
		builder = builder.Where(squirrel.Eq{"completion_id": *target.CompletionID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var tally engagementTally
	err = r.db.GetContext(ctx, &tally, query, args...)
	if err != nil {
		return nil, err
	}

	return &model.EngagementCounts{
		Smiles:   tally.Smiles,
		Comments: tally.Comments,
		Shares:   tally.Shares,
		Tags:     tally.Tags,
	}, nil
}
