// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/catetin/catetin/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Entry operations
	SaveEntry(ctx context.Context, entry *model.Entry) error
	GetEntriesByPeriod(ctx context.Context, userID int64, start, end time.Time) ([]model.Entry, error)
	GetDailyTotals(ctx context.Context, userID int64, start, end time.Time, loc *time.Location) ([]model.DailyTotal, error)
	ListEntries(ctx context.Context, userID int64, limit int) ([]model.Entry, error)
	DeleteLastEntry(ctx context.Context, userID int64) (*model.Entry, error)

	// User operations
	SaveUserTimezone(ctx context.Context, userID int64, zone string) error
	GetUserTimezone(ctx context.Context, userID int64) (string, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier delivers structured candidate data and the valid next actions
// to the user. Presentation is entirely the implementer's concern.
type Notifier interface {
	Notify(ctx context.Context, userID int64, note model.Notification) error
}

// TextRecognizer returns raw recognized text for an image. The extraction
// engine never touches image bytes itself.
type TextRecognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}
