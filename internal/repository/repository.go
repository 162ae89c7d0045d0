package repository

import (
	"context"
	"fmt"
	"time"

	"dareboard/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrTargetInactive   = errors.New("target is inactive")
	ErrEngagementExists = errors.New("engagement already exists")
	ErrDareExpired      = errors.New("dare expired")
)

const (
	counterRetryAttempts = 3
	counterRetryBackoff  = 50 * time.Millisecond
)

type Repository struct {
	db *sqlx.DB
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Transaction(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	err = t(tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}

// withRetry re-runs t in a fresh transaction a bounded number of times with
// backoff. Domain sentinels surface immediately; only store failures retry.
func (r *Repository) withRetry(ctx context.Context, t func(tx *sqlx.Tx) error) error {
	var err error
	for attempt := 0; attempt < counterRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(counterRetryBackoff * time.Duration(attempt)):
			}
		}

		err = r.Transaction(ctx, t)
		if err == nil {
			return nil
		}

		switch {
		case errors.Is(err, ErrNotFound),
			errors.Is(err, ErrTargetInactive),
			errors.Is(err, ErrEngagementExists),
			errors.Is(err, ErrDareExpired):
			return err
		}
	}
	return err
}

type Config struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func New(cfg Config) (*Repository, error) {
	url := cfg.GetDatabaseURL()
	db, err := sqlx.Connect("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Logger().Info("Connected to database successfully")

	return &Repository{db: db}, nil
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}
