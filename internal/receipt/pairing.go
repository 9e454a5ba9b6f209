package receipt

import (
	"log/slog"
	"regexp"

	"github.com/catetin/catetin/internal/model"
)

// inlinePattern matches a line carrying both a leading product name and a
// trailing price token, optionally currency-prefixed.
var inlinePattern = regexp.MustCompile(`^(.+?)\s+(?:[Rr][Pp]\.?\s*)?([0-9][0-9.,]*)$`)

// Pairer combines classified lines into candidate records.
//
// Two strategies are supported. A product-name line that already carries a
// trailing price token is resolved inline, taking precedence so the same
// tokens are never double-counted. Remaining lines are paired
// sequentially: each maximal run of product-name lines is zipped, strictly
// in reading order, against the next maximal run of price lines. Unmatched
// leftovers on either side are dropped silently; this is a known lossy
// heuristic, not an error.
type Pairer struct {
	normalizer *Normalizer
}

// NewPairer creates a pairing engine using the given price normalizer.
func NewPairer(normalizer *Normalizer) *Pairer {
	return &Pairer{normalizer: normalizer}
}

// Pair walks the classified lines in original order and returns the
// candidates that survive price normalization.
func (p *Pairer) Pair(classified []model.ClassifiedLine) []model.CandidateRecord {
	var out []model.CandidateRecord
	var names, prices []model.ClassifiedLine

	flush := func() {
		n := min(len(names), len(prices))
		for i := 0; i < n; i++ {
			if rec, ok := p.candidate(names[i].Text, prices[i].Text, names[i].Index, prices[i].Index); ok {
				out = append(out, rec)
			}
		}
		if len(names) != len(prices) {
			slog.Debug("Dropping unmatched lines",
				"names", len(names),
				"prices", len(prices))
		}
		names = names[:0]
		prices = prices[:0]
	}

	for _, line := range classified {
		switch line.Kind {
		case model.LineProductName:
			if rec, ok := p.inline(line); ok {
				out = append(out, rec)
				continue
			}
			if len(prices) > 0 {
				flush()
			}
			names = append(names, line)
		case model.LinePrice:
			if len(names) == 0 {
				// Price with no preceding name run; dropped.
				continue
			}
			prices = append(prices, line)
		default:
			// Noise never participates in pairing.
		}
	}
	flush()

	return out
}

// inline resolves a line that carries both name and price.
func (p *Pairer) inline(line model.ClassifiedLine) (model.CandidateRecord, bool) {
	m := inlinePattern.FindStringSubmatch(line.Text)
	if m == nil {
		return model.CandidateRecord{}, false
	}
	return p.candidate(m[1], m[2], line.Index, -1)
}

func (p *Pairer) candidate(name, rawPrice string, nameIndex, priceIndex int) (model.CandidateRecord, bool) {
	amount, err := p.normalizer.Normalize(rawPrice)
	if err != nil {
		slog.Debug("Dropping candidate with bad price",
			"name", name,
			"raw_price", rawPrice,
			"error", err)
		return model.CandidateRecord{}, false
	}
	return model.CandidateRecord{
		Name:       name,
		Amount:     amount,
		NameIndex:  nameIndex,
		PriceIndex: priceIndex,
	}, true
}
