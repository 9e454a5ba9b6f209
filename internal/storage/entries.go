package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/model"
)

// SaveEntry durably appends one spending entry.
func (s *SQLiteStorage) SaveEntry(ctx context.Context, entry *model.Entry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (user_id, description, amount, created_at) VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.Description, entry.Amount, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read entry id: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = createdAt

	return nil
}

// GetEntriesByPeriod returns a user's entries within [start, end),
// oldest first.
func (s *SQLiteStorage) GetEntriesByPeriod(ctx context.Context, userID int64, start, end time.Time) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, description, amount, created_at
		FROM entries
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, id ASC`,
		userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// GetDailyTotals aggregates a user's spending per calendar day in the
// given location over [start, end).
func (s *SQLiteStorage) GetDailyTotals(ctx context.Context, userID int64, start, end time.Time, loc *time.Location) ([]model.DailyTotal, error) {
	entries, err := s.GetEntriesByPeriod(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	totalsByDay := make(map[time.Time]int64)
	var days []time.Time
	for _, e := range entries {
		local := e.CreatedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if _, seen := totalsByDay[day]; !seen {
			days = append(days, day)
		}
		totalsByDay[day] += e.Amount
	}

	totals := make([]model.DailyTotal, 0, len(days))
	for _, day := range days {
		totals = append(totals, model.DailyTotal{Date: day, Total: totalsByDay[day]})
	}
	return totals, nil
}

// ListEntries returns a user's entries, newest first. A non-positive
// limit returns everything.
func (s *SQLiteStorage) ListEntries(ctx context.Context, userID int64, limit int) ([]model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, description, amount, created_at
		FROM entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// DeleteLastEntry removes a user's most recent entry and returns it, or
// common.ErrNotFound when the user has no entries.
func (s *SQLiteStorage) DeleteLastEntry(ctx context.Context, userID int64) (*model.Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var entry model.Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, description, amount, created_at
		FROM entries
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID).
		Scan(&entry.ID, &entry.UserID, &entry.Description, &entry.Amount, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last entry: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}

	return &entry, nil
}

func scanEntries(rows *sql.Rows) ([]model.Entry, error) {
	var entries []model.Entry
	for rows.Next() {
		var entry model.Entry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Description, &entry.Amount, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}
