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
	"github.com/lib/pq"
)

type CompletedDare struct {
	CompletionID uuid.UUID      `db:"completion_id"`
	DareID       uuid.UUID      `db:"dare_id"`
	UserID       int64          `db:"user_telegram_id"`
	MediaURLs    pq.StringArray `db:"media_urls"`
	Caption      string         `db:"caption"`
	Location     string         `db:"location"`
	CreatedAt    time.Time      `db:"created_at"`
	IsActive     bool           `db:"is_active"`
	SmileCount   int            `db:"smile_count"`
	CommentCount int            `db:"comment_count"`
	ShareCount   int            `db:"share_count"`
}

var completionColumns = []string{
	"completion_id",
	"dare_id",
	"user_telegram_id",
	"media_urls",
	"caption",
	"location",
	"created_at",
	"is_active",
	"smile_count",
	"comment_count",
	"share_count",
}

func (c *CompletedDare) toModel() *model.CompletedDare {
	return &model.CompletedDare{
		CompletionID: c.CompletionID,
		DareID:       c.DareID,
		UserID:       c.UserID,
		MediaURLs:    []string(c.MediaURLs),
		Caption:      c.Caption,
		Location:     c.Location,
		CreatedAt:    c.CreatedAt,
		IsActive:     c.IsActive,
		SmileCount:   c.SmileCount,
		CommentCount: c.CommentCount,
		ShareCount:   c.ShareCount,
	}
}

// CreateCompletion inserts the completion and bumps the parent dare's
// completion_count in one transaction. The parent must still accept
// completions.
func (r *Repository) CreateCompletion(ctx context.Context, completion *model.CompletedDare) error {
	return r.withRetry(ctx, func(tx *sqlx.Tx) error {
		checkQuery, checkArgs, err := squirrel.
			Select("is_active").
			From("dares").
			Where(squirrel.Eq{"dare_id": completion.DareID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		var active bool
		err = tx.GetContext(ctx, &active, checkQuery, checkArgs...)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if !active {
			return ErrDareExpired
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("completed_dares").
			SetMap(map[string]interface{}{
				"completion_id":    completion.CompletionID,
				"dare_id":          completion.DareID,
				"user_telegram_id": completion.UserID,
				"media_urls":       pq.StringArray(completion.MediaURLs),
				"caption":          completion.Caption,
				"location":         completion.Location,
				"created_at":       completion.CreatedAt,
				"is_active":        true,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build completion insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("failed to insert completion: %w", err)
		}

		return incrementDareCounter(ctx, tx, completion.DareID, "completion_count", 1)
	})
}

func (r *Repository) GetCompletionByID(ctx context.Context, completionID uuid.UUID) (*model.CompletedDare, error) {
	query, args, err := squirrel.
		Select(completionColumns...).
		From("completed_dares").
		Where(squirrel.Eq{"completion_id": completionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var completion CompletedDare
	err = r.db.GetContext(ctx, &completion, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return completion.toModel(), nil
}

// ListActiveCompletions returns active completions newest first, optionally
// restricted to one dare.
func (r *Repository) ListActiveCompletions(ctx context.Context, dareID *uuid.UUID) ([]*model.CompletedDare, error) {
	builder := squirrel.
		Select(completionColumns...).
		From("completed_dares").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("created_at DESC", "completion_id").
		PlaceholderFormat(squirrel.Dollar)

	if dareID != nil {
		builder = builder.Where(squirrel.Eq{"dare_id": *dareID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var completions []*CompletedDare
	err = r.db.SelectContext(ctx, &completions, query, args...)
	if err != nil {
		return nil, err
	}

	completionList := make([]*model.CompletedDare, len(completions))
	for i, c := range completions {
		completionList[i] = c.toModel()
	}

	return completionList, nil
}

// ListCompletionPruneCandidates returns active completions created at or
// before the cutoff, with aggregates for the threshold check.
func (r *Repository) ListCompletionPruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.CompletedDare, error) {
	query, args, err := squirrel.
		Select(completionColumns...).
		From("completed_dares").
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"created_at": cutoff}).
		OrderBy("created_at ASC", "completion_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var completions []*CompletedDare
	err = r.db.SelectContext(ctx, &completions, query, args...)
	if err != nil {
		return nil, err
	}

	completionList := make([]*model.CompletedDare, len(completions))
	for i, c := range completions {
		completionList[i] = c.toModel()
	}

	return completionList, nil
}

// DeactivateCompletion soft-deletes a completion. Returns false when it was
// already inactive.
func (r *Repository) DeactivateCompletion(ctx context.Context, completionID uuid.UUID) (bool, error) {
	query, args, err := squirrel.
		Update("completed_dares").
		Set("is_active", false).
		Where(squirrel.Eq{"completion_id": completionID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func incrementCompletionCounter(ctx context.Context, tx *sqlx.Tx, completionID uuid.UUID, column string, delta int) error {
	query, args, err := squirrel.
		Update("completed_dares").
		Set(column, squirrel.Expr(fmt.Sprintf("GREATEST(%s + ?, 0)", column), delta)).
		Where(squirrel.Eq{"completion_id": completionID}).
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

	return nil
}
