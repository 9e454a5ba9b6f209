package model

import "time"

// LineKind labels a single OCR text line.
type LineKind string

// Line kind constants.
const (
	LinePrice       LineKind = "PRICE"
	LineProductName LineKind = "PRODUCT_NAME"
	LineNoise       LineKind = "NOISE"
)

// ClassifiedLine is one raw OCR line with its assigned kind. Immutable
// once produced; Index is the position in the original line sequence.
type ClassifiedLine struct {
	Text  string
	Kind  LineKind
	Index int
}

// CandidateRecord is an unconfirmed (name, amount) extraction awaiting
// user action. PriceIndex is -1 when the amount came from the same
// physical line as the name.
type CandidateRecord struct {
	Name       string
	Amount     int64 // minor currency units, always >= the plausibility threshold
	NameIndex  int
	PriceIndex int
}

// SessionState tracks where a staged extraction is in the
// confirm/correct workflow.
type SessionState string

// Session states.
const (
	StateIdle                SessionState = "IDLE"
	StatePendingConfirmation SessionState = "PENDING_CONFIRMATION"
	StateAwaitingCorrection  SessionState = "AWAITING_CORRECTION"
)

// ExtractionSession is the one staged extraction held per user between
// OCR submission and confirmation. ID is only used for log correlation.
type ExtractionSession struct {
	CreatedAt  time.Time
	ID         string
	State      SessionState
	Candidates []CandidateRecord
	UserID     int64
}

// Action is one step the user may take against a staged extraction.
type Action string

// Reconciliation actions.
const (
	ActionConfirm              Action = "CONFIRM"
	ActionCorrect              Action = "CORRECT"
	ActionCancel               Action = "CANCEL"
	ActionSubmitCorrectionText Action = "SUBMIT_CORRECTION_TEXT"
)

// Notification carries structured data to the presentation collaborator.
// Rendering is entirely the collaborator's concern; the engine only
// supplies the candidate list and the set of valid next actions.
type Notification struct {
	Candidates []CandidateRecord
	Actions    []Action
}
