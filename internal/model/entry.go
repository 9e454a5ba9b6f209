// Package model defines the core domain models used throughout the application.
package model

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimezone is used for users who never set one.
const DefaultTimezone = "Asia/Jakarta"

// Entry represents a single confirmed spending record. It is the only
// entity handed to the persistence layer; the pipeline's intermediate
// shapes never leave the extraction engine.
type Entry struct {
	CreatedAt   time.Time
	Description string
	ID          int64
	UserID      int64
	Amount      int64 // minor currency units
}

// DailyTotal aggregates one day's spending for summary views.
type DailyTotal struct {
	Date  time.Time
	Total int64
}

// FormatAmount renders a minor-unit amount with dot grouping,
// e.g. 15000 becomes "Rp 15.000".
func FormatAmount(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	if amount < 0 {
		return "Rp " + digits
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return "Rp " + strings.Join(groups, ".")
}
