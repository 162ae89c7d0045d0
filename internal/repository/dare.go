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

type Dare struct {
	DareID          uuid.UUID `db:"dare_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	Hashtag         string    `db:"hashtag"`
	Vibe            string    `db:"vibe"`
	CreatorID       int64     `db:"creator_id"`
	ExpiresAt       time.Time `db:"expires_at"`
	CreatedAt       time.Time `db:"created_at"`
	IsActive        bool      `db:"is_active"`
	IsVisible       bool      `db:"is_visible"`
	CompletionCount int       `db:"completion_count"`
	SmileCount      int       `db:"smile_count"`
	CommentCount    int       `db:"comment_count"`
	ShareCount      int       `db:"share_count"`
}

var dareColumns = []string{
	"dare_id",
	"title",
	"description",
	"hashtag",
	"vibe",
	"creator_id",
	"expires_at",
	"created_at",
	"is_active",
	"is_visible",
	"completion_count",
	"smile_count",
	"comment_count",
	"share_count",
}

func (d *Dare) toModel() *model.Dare {
	return &model.Dare{
		DareID:          d.DareID,
		Title:           d.Title,
		Description:     d.Description,
		Hashtag:         d.Hashtag,
		Vibe:            model.Vibe(d.Vibe),
		CreatorID:       d.CreatorID,
		ExpiresAt:       d.ExpiresAt,
		CreatedAt:       d.CreatedAt,
		IsActive:        d.IsActive,
		IsVisible:       d.IsVisible,
		CompletionCount: d.CompletionCount,
		SmileCount:      d.SmileCount,
		CommentCount:    d.CommentCount,
		ShareCount:      d.ShareCount,
	}
}

func (r *Repository) CreateDare(ctx context.Context, dare *model.Dare) error {
	query, args, err := squirrel.
		Insert("dares").
		SetMap(map[string]interface{}{
			"dare_id":     dare.DareID,
			"title":       dare.Title,
			"description": dare.Description,
			"hashtag":     dare.Hashtag,
			"vibe":        string(dare.Vibe),
			"creator_id":  dare.CreatorID,
			"expires_at":  dare.ExpiresAt,
			"created_at":  dare.CreatedAt,
			"is_active":   true,
			"is_visible":  true,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build dare insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert dare: %w", err)
	}

	return nil
}

func (r *Repository) GetDareByID(ctx context.Context, dareID uuid.UUID) (*model.Dare, error) {
	query, args, err := squirrel.
		Select(dareColumns...).
		From("dares").
		Where(squirrel.Eq{"dare_id": dareID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var dare Dare
	err = r.db.GetContext(ctx, &dare, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return dare.toModel(), nil
}

// ListVisibleDares returns dares still shown in listings, newest first.
// An empty vibe means no filter.
func (r *Repository) ListVisibleDares(ctx context.Context, vibe string) ([]*model.Dare, error) {
	builder := squirrel.
		Select(dareColumns...).
		From("dares").
		Where(squirrel.Eq{"is_visible": true}).
		OrderBy("created_at DESC", "dare_id").
		PlaceholderFormat(squirrel.Dollar)

	if vibe != "" {
		builder = builder.Where(squirrel.Eq{"vibe": vibe})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var dares []*Dare
	err = r.db.SelectContext(ctx, &dares, query, args...)
	if err != nil {
		return nil, err
	}

	dareList := make([]*model.Dare, len(dares))
	for i, d := range dares {
		dareList[i] = d.toModel()
	}

	return dareList, nil
}

// ListExpiringDares returns active dares expiring within the window,
// soonest first.
func (r *Repository) ListExpiringDares(ctx context.Context, now time.Time, window time.Duration) ([]*model.Dare, error) {
	query, args, err := squirrel.
		Select(dareColumns...).
		From("dares").
		Where(squirrel.Eq{"is_active": true, "is_visible": true}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.LtOrEq{"expires_at": now.Add(window)}).
		OrderBy("expires_at ASC", "dare_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var dares []*Dare
	err = r.db.SelectContext(ctx, &dares, query, args...)
	if err != nil {
		return nil, err
	}

	dareList := make([]*model.Dare, len(dares))
	for i, d := range dares {
		dareList[i] = d.toModel()
	}

	return dareList, nil
}

// ExpireDares stops expired dares from accepting new completions.
// The update is conditional, so re-running with the same clock is a no-op.
func (r *Repository) ExpireDares(ctx context.Context, now time.Time) (int, error) {
	query, args, err := squirrel.
		Update("dares").
		Set("is_active", false).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rows), nil
}

// ListDarePruneCandidates returns dares still visible whose expiry is at or
// before the cutoff, with their aggregates for the threshold check.
func (r *Repository) ListDarePruneCandidates(ctx context.Context, cutoff time.Time) ([]*model.Dare, error) {
	query, args, err := squirrel.
		Select(dareColumns...).
		From("dares").
		Where(squirrel.Eq{"is_visible": true}).
		Where(squirrel.LtOrEq{"expires_at": cutoff}).
		OrderBy("expires_at ASC", "dare_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var dares []*Dare
	err = r.db.SelectContext(ctx, &dares, query, args...)
	if err != nil {
		return nil, err
	}

	dareList := make([]*model.Dare, len(dares))
	for i, d := range dares {
		dareList[i] = d.toModel()
	}

	return dareList, nil
}

// HideDare removes a dare from every listing. Returns false when the dare
// was already hidden.
func (r *Repository) HideDare(ctx context.Context, dareID uuid.UUID) (bool, error) {
	query, args, err := squirrel.
		Update("dares").
		Set("is_visible", false).
		Set("is_active", false).
		Where(squirrel.Eq{"dare_id": dareID, "is_visible": true}).
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

// incrementDareCounter applies a relative counter update inside tx so
// concurrent engagements never overwrite each other.
func incrementDareCounter(ctx context.Context, tx *sqlx.Tx, dareID uuid.UUID, column string, delta int) error {
	query, args, err := squirrel.
		Update("dares").
		Set(column, squirrel.Expr(fmt.Sprintf("GREATEST(%s + ?, 0)", column), delta)).
		Where(squirrel.Eq{"dare_id": dareID}).
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
