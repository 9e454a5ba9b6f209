package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/catetin/catetin/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidEntry     = errors.New("invalid entry")
	ErrInvalidTimezone  = errors.New("invalid timezone")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEntry validates a single spending entry before persistence.
func validateEntry(entry *model.Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if strings.TrimSpace(entry.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidEntry)
	}
	if entry.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidEntry)
	}
	return nil
}
