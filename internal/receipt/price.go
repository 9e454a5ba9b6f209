package receipt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Price normalization errors. Both cause the candidate to be dropped,
// never the whole extraction to abort.
var (
	// ErrUnparseable indicates no digits remained after stripping.
	ErrUnparseable = errors.New("price unparseable")
	// ErrBelowThreshold indicates the parsed value is too small to be a
	// plausible receipt amount.
	ErrBelowThreshold = errors.New("price below plausibility threshold")
)

// DefaultMinAmount is the minimum plausible amount in minor currency
// units. Anything smaller is treated as an OCR misread.
const DefaultMinAmount = 500

// DefaultCurrencyPrefixes are stripped case-insensitively before parsing.
var DefaultCurrencyPrefixes = []string{"rp", "idr"}

// NumericFormat describes the locale convention of a raw price token.
type NumericFormat struct {
	GroupSep   string
	DecimalSep string
}

// DefaultNumericFormat is the Indonesian convention: dot groups,
// comma decimals.
var DefaultNumericFormat = NumericFormat{GroupSep: ".", DecimalSep: ","}

// Normalizer parses locale-formatted price strings into canonical
// integer minor-currency units.
type Normalizer struct {
	format    NumericFormat
	prefixes  []string
	minAmount int64
}

// NewNormalizer creates a price normalizer. Zero-value arguments fall
// back to the Indonesian defaults.
func NewNormalizer(format NumericFormat, prefixes []string, minAmount int64) *Normalizer {
	if format.GroupSep == "" && format.DecimalSep == "" {
		format = DefaultNumericFormat
	}
	if len(prefixes) == 0 {
		prefixes = DefaultCurrencyPrefixes
	}
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}
	lowered := make([]string, len(prefixes))
	for i, p := range prefixes {
		lowered[i] = strings.ToLower(p)
	}
	return &Normalizer{
		format:    format,
		prefixes:  lowered,
		minAmount: minAmount,
	}
}

// MinAmount returns the plausibility threshold in minor units.
func (n *Normalizer) MinAmount() int64 {
	return n.minAmount
}

// Normalize parses a raw price token into minor currency units.
// Fractional parts are truncated. The result is never negative and
// never below the plausibility threshold.
func (n *Normalizer) Normalize(raw string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range n.prefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}

	if n.format.GroupSep != "" {
		s = strings.ReplaceAll(s, n.format.GroupSep, "")
	}
	if n.format.DecimalSep != "" {
		s = strings.Replace(s, n.format.DecimalSep, ".", 1)
	}

	s = keepNumeric(s)
	if !strings.ContainsAny(s, "0123456789") {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	amount := d.IntPart()
	if amount < n.minAmount {
		return 0, fmt.Errorf("%w: %d < %d", ErrBelowThreshold, amount, n.minAmount)
	}
	return amount, nil
}

// keepNumeric drops everything except digits and the first decimal point.
func keepNumeric(s string) string {
	var b strings.Builder
	sawPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !sawPoint:
			sawPoint = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
