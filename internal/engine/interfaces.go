package engine

import (
	"context"

	"github.com/catetin/catetin/internal/model"
)

// EntryWriter is the slice of the persistence contract the engine needs.
// Persist failures are propagated verbatim; the engine never retries.
type EntryWriter interface {
	SaveEntry(ctx context.Context, entry *model.Entry) error
}

// Notifier delivers staged candidates and valid next actions to the user.
type Notifier interface {
	Notify(ctx context.Context, userID int64, note model.Notification) error
}
