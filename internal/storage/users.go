package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catetin/catetin/internal/model"
)

// SaveUserTimezone stores or replaces a user's timezone. The zone must
// be a valid IANA name.
func (s *SQLiteStorage) SaveUserTimezone(ctx context.Context, userID int64, zone string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(zone, "zone"); err != nil {
		return err
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, timezone)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET timezone = excluded.timezone`,
		userID, zone)
	if err != nil {
		return fmt.Errorf("failed to save timezone: %w", err)
	}
	return nil
}

// GetUserTimezone returns a user's stored timezone, falling back to the
// default for users who never set one.
func (s *SQLiteStorage) GetUserTimezone(ctx context.Context, userID int64) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var zone string
	err := s.db.QueryRowContext(ctx,
		`SELECT timezone FROM users WHERE user_id = ?`, userID).Scan(&zone)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultTimezone, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read timezone: %w", err)
	}
	return zone, nil
}
