// Package engine implements the reconciliation state machine that drives
// the confirm/correct/cancel workflow for staged receipt extractions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/model"
	"github.com/catetin/catetin/internal/receipt"
	"github.com/catetin/catetin/internal/session"
)

// ErrNotAwaitingCorrection is returned when a correction message arrives
// while the user has no session waiting for one. Callers typically route
// the message to LogSpending instead.
var ErrNotAwaitingCorrection = errors.New("no correction pending")

// integerToken matches a purely numeric token in a correction line.
var integerToken = regexp.MustCompile(`^[0-9]+$`)

// Engine orchestrates extraction staging and the per-user
// confirm/correct/cancel workflow. Decisions for a single user are
// processed one at a time; across users everything is independent.
type Engine struct {
	now       func() time.Time
	storage   EntryWriter
	notifier  Notifier
	sessions  *session.Store
	extractor *receipt.Extractor
}

// New creates a reconciliation engine with the given dependencies.
func New(storage EntryWriter, sessions *session.Store, extractor *receipt.Extractor, notifier Notifier) *Engine {
	return &Engine{
		storage:   storage,
		sessions:  sessions,
		extractor: extractor,
		notifier:  notifier,
		now:       time.Now,
	}
}

// State reports where the user currently is in the workflow.
func (e *Engine) State(userID int64) model.SessionState {
	sess := e.sessions.Peek(userID)
	if sess == nil {
		return model.StateIdle
	}
	return sess.State
}

// SubmitReceipt runs the extraction pipeline over raw OCR text and stages
// the result for confirmation, superseding any prior pending session for
// the user. It returns common.ErrEmptyExtraction when nothing usable
// could be read; that is the only fatal-to-the-caller condition.
func (e *Engine) SubmitReceipt(ctx context.Context, userID int64, rawText string) (*model.ExtractionSession, error) {
	candidates, err := e.extractor.Extract(rawText)
	if err != nil {
		slog.Info("Extraction produced no candidates", "user_id", userID)
		return nil, err
	}

	sess := e.sessions.Put(userID, candidates)
	slog.Info("Staged extraction for confirmation",
		"user_id", userID,
		"session_id", sess.ID,
		"candidates", len(candidates))

	if err := e.notify(ctx, userID, model.Notification{
		Candidates: candidates,
		Actions:    []model.Action{model.ActionConfirm, model.ActionCorrect, model.ActionCancel},
	}); err != nil {
		return sess, err
	}
	return sess, nil
}

// Confirm persists every staged candidate 1:1 as a final entry and clears
// the session. Confirming an empty, expired, or already-consumed session
// is a no-op reported as nothing saved, never an error.
func (e *Engine) Confirm(ctx context.Context, userID int64) (int, error) {
	sess := e.sessions.Take(userID)
	if sess == nil || len(sess.Candidates) == 0 {
		slog.Debug("Nothing to save on confirm", "user_id", userID)
		return 0, nil
	}

	saved := 0
	for _, c := range sess.Candidates {
		entry := &model.Entry{
			UserID:      userID,
			Description: c.Name,
			Amount:      c.Amount,
			CreatedAt:   e.now(),
		}
		if err := e.storage.SaveEntry(ctx, entry); err != nil {
			return saved, fmt.Errorf("failed to persist entry %q: %w", c.Name, err)
		}
		saved++
	}

	slog.Info("Confirmed extraction",
		"user_id", userID,
		"session_id", sess.ID,
		"saved", saved)
	return saved, nil
}

// RequestCorrection discards the staged candidates and waits for the
// user's next free-text message, which is authoritative. Returns false
// when there was no pending session.
func (e *Engine) RequestCorrection(ctx context.Context, userID int64) (bool, error) {
	if !e.sessions.MarkAwaitingCorrection(userID) {
		slog.Debug("No pending session to correct", "user_id", userID)
		return false, nil
	}

	err := e.notify(ctx, userID, model.Notification{
		Actions: []model.Action{model.ActionSubmitCorrectionText, model.ActionCancel},
	})
	return true, err
}

// SubmitCorrection parses one correction message line-by-line. Each line
// of the form "<name> <integer>" becomes a persisted entry; other lines
// are skipped silently. The session always returns to idle afterwards,
// even when zero lines matched.
func (e *Engine) SubmitCorrection(ctx context.Context, userID int64, text string) (int, error) {
	sess := e.sessions.Peek(userID)
	if sess == nil || sess.State != model.StateAwaitingCorrection {
		return 0, ErrNotAwaitingCorrection
	}

	// One message only; back to idle no matter what it contained.
	e.sessions.Drop(userID)

	saved := 0
	for _, line := range receipt.SplitLines(text) {
		name, amount, ok := parseCorrectionLine(line)
		if !ok {
			continue
		}
		entry := &model.Entry{
			UserID:      userID,
			Description: name,
			Amount:      amount,
			CreatedAt:   e.now(),
		}
		if err := e.storage.SaveEntry(ctx, entry); err != nil {
			return saved, fmt.Errorf("failed to persist correction %q: %w", name, err)
		}
		saved++
	}

	slog.Info("Correction processed",
		"user_id", userID,
		"session_id", sess.ID,
		"saved", saved)
	return saved, nil
}

// Cancel discards any pending session with no persistence. Returns true
// if a session existed.
func (e *Engine) Cancel(userID int64) bool {
	dropped := e.sessions.Drop(userID)
	if dropped {
		slog.Info("Canceled pending extraction", "user_id", userID)
	}
	return dropped
}

// LogSpending records a free-text spending message: the first purely
// numeric token becomes the amount and the remaining text the
// description. A message without an amount yields a user-visible error.
func (e *Engine) LogSpending(ctx context.Context, userID int64, text string) (*model.Entry, error) {
	tokens := strings.Fields(text)
	amount := int64(-1)
	var rest []string
	for _, tok := range tokens {
		if amount < 0 && integerToken.MatchString(tok) {
			parsed, err := strconv.ParseInt(tok, 10, 64)
			if err == nil {
				amount = parsed
				continue
			}
		}
		rest = append(rest, tok)
	}
	if amount < 0 {
		return nil, common.NewUserError("please include a clear spending amount", nil)
	}

	description := strings.Join(rest, " ")
	if description == "" {
		description = "uncategorized"
	}

	entry := &model.Entry{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		CreatedAt:   e.now(),
	}
	if err := e.storage.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to persist entry: %w", err)
	}

	slog.Info("Logged spending", "user_id", userID, "amount", amount)
	return entry, nil
}

// parseCorrectionLine accepts "<name> <integer>" with a purely numeric
// trailing token.
func parseCorrectionLine(line string) (string, int64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, false
	}
	last := fields[len(fields)-1]
	if !integerToken.MatchString(last) {
		return "", 0, false
	}
	amount, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return strings.Join(fields[:len(fields)-1], " "), amount, true
}

func (e *Engine) notify(ctx context.Context, userID int64, note model.Notification) error {
	if e.notifier == nil {
		return nil
	}
	if err := e.notifier.Notify(ctx, userID, note); err != nil {
		return fmt.Errorf("failed to notify user: %w", err)
	}
	return nil
}
