// Package receipt implements the OCR receipt extraction pipeline: line
// classification, name/price pairing, and price normalization.
package receipt

import (
	"regexp"
	"strings"

	"github.com/catetin/catetin/internal/model"
)

// DefaultStopWords marks lines that belong to receipt chrome rather than
// purchased items. Matching is case-insensitive substring containment.
var DefaultStopWords = []string{
	"subtotal",
	"total",
	"payment",
	"debit",
	"thank",
	"check",
	"closed",
	"tunai",
	"kembali",
	"kembalian",
	"terima kasih",
	"ppn",
	"pajak",
	"kasir",
}

// priceTokenPattern matches a line consisting solely of digits plus group
// or decimal separators, minimum 4 characters.
var priceTokenPattern = regexp.MustCompile(`^[0-9.,]{4,}$`)

// Classifier labels raw OCR lines. It is a pure function holder: the same
// input always yields the same output and malformed input degrades to
// noise rather than failing.
type Classifier struct {
	stopWords []string
}

// NewClassifier creates a classifier with the given stop-word set.
// An empty set falls back to DefaultStopWords.
func NewClassifier(stopWords []string) *Classifier {
	if len(stopWords) == 0 {
		stopWords = DefaultStopWords
	}
	lowered := make([]string, len(stopWords))
	for i, w := range stopWords {
		lowered[i] = strings.ToLower(w)
	}
	return &Classifier{stopWords: lowered}
}

// Classify labels each line. Input lines are expected trimmed and
// non-empty; blank removal happens upstream.
func (c *Classifier) Classify(lines []string) []model.ClassifiedLine {
	classified := make([]model.ClassifiedLine, 0, len(lines))
	for i, line := range lines {
		classified = append(classified, model.ClassifiedLine{
			Text:  line,
			Index: i,
			Kind:  c.kindOf(line),
		})
	}
	return classified
}

func (c *Classifier) kindOf(line string) model.LineKind {
	if c.isStopWordLine(line) {
		return model.LineNoise
	}
	if priceTokenPattern.MatchString(line) {
		if strings.ContainsAny(line, "0123456789") {
			return model.LinePrice
		}
		// Separator-only artifact.
		return model.LineNoise
	}
	if len(line) > 3 {
		return model.LineProductName
	}
	return model.LineNoise
}

func (c *Classifier) isStopWordLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, w := range c.stopWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
