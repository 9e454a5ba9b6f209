package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/session"
	"github.com/catetin/catetin/internal/storage"
)

func newSQLiteEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	eng := New(store, session.NewStore(0), receipt.New(), &MockNotifier{})
	return eng, store
}

func TestEngine_ConfirmPersistsToDatabase(t *testing.T) {
	eng, store := newSQLiteEngine(t)
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000\nEs Teh\n6.000")
	require.NoError(t, err)

	saved, err := eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	entries, err := store.ListEntries(ctx, 7, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first from the ledger.
	assert.Equal(t, int64(21000), entries[0].Amount+entries[1].Amount)
}

func TestEngine_CorrectionPersistsToDatabase(t *testing.T) {
	eng, store := newSQLiteEngine(t)
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)
	_, err = eng.RequestCorrection(ctx, 7)
	require.NoError(t, err)

	saved, err := eng.SubmitCorrection(ctx, 7, "Kopi 10000\ngaruk garuk")
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	entries, err := store.ListEntries(ctx, 7, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kopi", entries[0].Description)
	assert.Equal(t, int64(10000), entries[0].Amount)
}
