package receipt

import (
	"strings"

	"github.com/catetin/catetin/internal/common"
	"github.com/catetin/catetin/internal/model"
)

// Config holds the tunables of the extraction pipeline.
type Config struct {
	Format           NumericFormat
	StopWords        []string
	CurrencyPrefixes []string
	MinAmount        int64
}

// DefaultConfig returns the Indonesian-receipt defaults.
func DefaultConfig() Config {
	return Config{
		StopWords:        DefaultStopWords,
		CurrencyPrefixes: DefaultCurrencyPrefixes,
		Format:           DefaultNumericFormat,
		MinAmount:        DefaultMinAmount,
	}
}

// Extractor runs the full classify -> pair -> normalize pipeline over a
// block of raw OCR text. The pipeline is pure and synchronous; running it
// twice on identical text yields identical candidates.
type Extractor struct {
	classifier *Classifier
	pairer     *Pairer
}

// New creates an extractor with default configuration.
func New() *Extractor {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an extractor with custom configuration.
func NewWithConfig(cfg Config) *Extractor {
	normalizer := NewNormalizer(cfg.Format, cfg.CurrencyPrefixes, cfg.MinAmount)
	return &Extractor{
		classifier: NewClassifier(cfg.StopWords),
		pairer:     NewPairer(normalizer),
	}
}

// Extract converts raw OCR text into candidate records. It is maximally
// permissive internally: unreadable lines are dropped, not failed. It
// returns common.ErrEmptyExtraction only when the aggregate result is
// unusable, i.e. zero candidates survived.
func (e *Extractor) Extract(raw string) ([]model.CandidateRecord, error) {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return nil, common.ErrEmptyExtraction
	}

	classified := e.classifier.Classify(lines)
	candidates := e.pairer.Pair(classified)
	if len(candidates) == 0 {
		return nil, common.ErrEmptyExtraction
	}
	return candidates, nil
}

// SplitLines breaks raw text into trimmed, non-empty lines, preserving
// order. Pairing depends on adjacency, so order is significant.
func SplitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
