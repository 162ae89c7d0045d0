package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dareboard/internal/model"

	"github.com/Masterminds/squirrel"
)

type User struct {
	TelegramID       int64     `db:"telegram_id"`
	Handle           string    `db:"handle"`
	Username         string    `db:"username"`
	ProfileImage     string    `db:"profile_image"`
	IsAdmin          bool      `db:"is_admin"`
	RegistrationDate time.Time `db:"registration_date"`
	AuthDate         time.Time `db:"last_auth_date"`
}

func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"telegram_id":       user.TelegramID,
			"handle":            user.Handle,
			"username":          user.Username,
			"profile_image":     user.ProfileImage,
			"is_admin":          user.IsAdmin,
			"registration_date": user.RegistrationDate,
			"last_auth_date":    user.AuthDate,
		}).
		Suffix("ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username, last_auth_date = EXCLUDED.last_auth_date").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user User
	query, args, err := squirrel.
		Select("*").
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.User{
		TelegramID:       user.TelegramID,
		Handle:           user.Handle,
		Username:         user.Username,
		ProfileImage:     user.ProfileImage,
		IsAdmin:          user.IsAdmin,
		RegistrationDate: user.RegistrationDate,
		AuthDate:         user.AuthDate,
	}, nil
}
