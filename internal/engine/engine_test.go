package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/model"
	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/session"
)

// mockEntryWriter records persisted entries.
type mockEntryWriter struct {
	failWith error
	entries  []model.Entry
	mu       sync.Mutex
}

func (m *mockEntryWriter) SaveEntry(_ context.Context, entry *model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockEntryWriter) saved() []model.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Entry(nil), m.entries...)
}

func newTestEngine() (*Engine, *mockEntryWriter, *MockNotifier) {
	writer := &mockEntryWriter{}
	notifier := &MockNotifier{}
	eng := New(writer, session.NewStore(0), receipt.New(), notifier)
	return eng, writer, notifier
}

func TestEngine_SubmitAndConfirm(t *testing.T) {
	eng, writer, notifier := newTestEngine()
	ctx := context.Background()

	sess, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000\nEs Teh\n6.000")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, model.StatePendingConfirmation, eng.State(7))

	// The collaborator got the candidate list and all three actions.
	note := notifier.Last()
	require.NotNil(t, note)
	assert.Len(t, note.Candidates, 2)
	assert.ElementsMatch(t,
		[]model.Action{model.ActionConfirm, model.ActionCorrect, model.ActionCancel},
		note.Actions)

	saved, err := eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Equal(t, model.StateIdle, eng.State(7))

	entries := writer.saved()
	require.Len(t, entries, 2)
	assert.Equal(t, "Nasi Goreng", entries[0].Description)
	assert.Equal(t, int64(15000), entries[0].Amount)
	assert.Equal(t, int64(7), entries[0].UserID)
	assert.Equal(t, "Es Teh", entries[1].Description)
	assert.Equal(t, int64(6000), entries[1].Amount)
}

func TestEngine_SubmitEmptyExtraction(t *testing.T) {
	eng, writer, _ := newTestEngine()

	_, err := eng.SubmitReceipt(context.Background(), 7, "TOTAL\nDEBIT")

	require.ErrorIs(t, err, common.ErrEmptyExtraction)
	assert.Equal(t, model.StateIdle, eng.State(7))
	assert.Empty(t, writer.saved())
}

func TestEngine_ConfirmWithoutSession(t *testing.T) {
	// Confirming an empty or already-consumed session never persists
	// and never errors.
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	saved, err := eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)

	// Consume a real session, then confirm again.
	_, err = eng.SubmitReceipt(ctx, 7, "Mie Ayam 12000")
	require.NoError(t, err)
	_, err = eng.Confirm(ctx, 7)
	require.NoError(t, err)

	saved, err = eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
	assert.Len(t, writer.saved(), 1)
}

func TestEngine_ResubmitSupersedes(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)
	_, err = eng.SubmitReceipt(ctx, 7, "Mie Ayam 12000")
	require.NoError(t, err)

	saved, err := eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	entries := writer.saved()
	require.Len(t, entries, 1)
	assert.Equal(t, "Mie Ayam", entries[0].Description)
}

func TestEngine_CorrectionFlow(t *testing.T) {
	eng, writer, notifier := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)

	ok, err := eng.RequestCorrection(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.StateAwaitingCorrection, eng.State(7))

	note := notifier.Last()
	require.NotNil(t, note)
	assert.Empty(t, note.Candidates)
	assert.ElementsMatch(t,
		[]model.Action{model.ActionSubmitCorrectionText, model.ActionCancel},
		note.Actions)

	saved, err := eng.SubmitCorrection(ctx, 7, "Kopi 10000\ngaruk garuk")
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, model.StateIdle, eng.State(7))

	// Only the matching line persisted; the staged OCR guess is gone.
	entries := writer.saved()
	require.Len(t, entries, 1)
	assert.Equal(t, "Kopi", entries[0].Description)
	assert.Equal(t, int64(10000), entries[0].Amount)
}

func TestEngine_CorrectionWithZeroMatchesStillSucceeds(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)
	_, err = eng.RequestCorrection(ctx, 7)
	require.NoError(t, err)

	saved, err := eng.SubmitCorrection(ctx, 7, "garuk garuk\nno amounts here")
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
	assert.Equal(t, model.StateIdle, eng.State(7))
	assert.Empty(t, writer.saved())
}

func TestEngine_CorrectionWithoutPendingSession(t *testing.T) {
	eng, _, _ := newTestEngine()
	ctx := context.Background()

	ok, err := eng.RequestCorrection(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = eng.SubmitCorrection(ctx, 7, "Kopi 10000")
	assert.ErrorIs(t, err, ErrNotAwaitingCorrection)
}

func TestEngine_CorrectionRequiresCorrectionState(t *testing.T) {
	// A pending confirmation does not accept correction text directly.
	eng, _, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)

	_, err = eng.SubmitCorrection(ctx, 7, "Kopi 10000")
	assert.ErrorIs(t, err, ErrNotAwaitingCorrection)
	assert.Equal(t, model.StatePendingConfirmation, eng.State(7))
}

func TestEngine_Cancel(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)

	assert.True(t, eng.Cancel(7))
	assert.Equal(t, model.StateIdle, eng.State(7))
	assert.Empty(t, writer.saved())

	saved, err := eng.Confirm(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)

	assert.False(t, eng.Cancel(7))
}

func TestEngine_CancelWhileAwaitingCorrection(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)
	_, err = eng.RequestCorrection(ctx, 7)
	require.NoError(t, err)

	assert.True(t, eng.Cancel(7))
	assert.Equal(t, model.StateIdle, eng.State(7))
	assert.Empty(t, writer.saved())
}

func TestEngine_PersistErrorPropagates(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 7, "Nasi Goreng\n15.000")
	require.NoError(t, err)

	persistErr := errors.New("disk full")
	writer.failWith = persistErr

	_, err = eng.Confirm(ctx, 7)
	assert.ErrorIs(t, err, persistErr)
}

func TestEngine_LogSpending(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantDescription string
		wantAmount      int64
		wantUserErr     bool
	}{
		{
			name:            "amount with description",
			text:            "kopi 10000",
			wantDescription: "kopi",
			wantAmount:      10000,
		},
		{
			name:            "amount only",
			text:            "25000",
			wantDescription: "uncategorized",
			wantAmount:      25000,
		},
		{
			name:            "first number wins",
			text:            "parkir 2000 motor 5000",
			wantDescription: "parkir motor 5000",
			wantAmount:      2000,
		},
		{
			name:        "no amount",
			text:        "makan siang enak",
			wantUserErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, writer, _ := newTestEngine()

			entry, err := eng.LogSpending(context.Background(), 7, tt.text)
			if tt.wantUserErr {
				var userErr *common.UserError
				require.ErrorAs(t, err, &userErr)
				assert.Empty(t, writer.saved())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDescription, entry.Description)
			assert.Equal(t, tt.wantAmount, entry.Amount)
			require.Len(t, writer.saved(), 1)
		})
	}
}

func TestEngine_UsersAreIndependent(t *testing.T) {
	eng, writer, _ := newTestEngine()
	ctx := context.Background()

	_, err := eng.SubmitReceipt(ctx, 1, "Nasi Goreng\n15.000")
	require.NoError(t, err)
	_, err = eng.SubmitReceipt(ctx, 2, "Mie Ayam 12000")
	require.NoError(t, err)

	saved, err := eng.Confirm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)
	assert.Equal(t, model.StatePendingConfirmation, eng.State(2))

	entries := writer.saved()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].UserID)
}
