package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Normalize(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		raw      string
		expected int64
	}{
		{
			name:     "grouped thousands",
			raw:      "15.000",
			expected: 15000,
		},
		{
			name:     "plain integer",
			raw:      "12000",
			expected: 12000,
		},
		{
			name:     "currency prefix stripped",
			raw:      "Rp 25.000",
			expected: 25000,
		},
		{
			name:     "uppercase prefix",
			raw:      "RP10.000",
			expected: 10000,
		},
		{
			name:     "fractional part truncated",
			raw:      "12.000,75",
			expected: 12000,
		},
		{
			name:    "below plausibility threshold",
			raw:     "300",
			wantErr: ErrBelowThreshold,
		},
		{
			name:    "zero",
			raw:     "0.000",
			wantErr: ErrBelowThreshold,
		},
		{
			name:    "no digits",
			raw:     "Rp ---",
			wantErr: ErrUnparseable,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: ErrUnparseable,
		},
		{
			name:     "stray glyphs dropped",
			raw:      "1O.500", // the letter survives keepNumeric as nothing
			expected: 1500,
		},
	}

	normalizer := NewNormalizer(NumericFormat{}, nil, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizer.Normalize(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizer_NeverBelowThresholdOnSuccess(t *testing.T) {
	normalizer := NewNormalizer(NumericFormat{}, nil, 0)

	inputs := []string{
		"15.000", "500", "499", "0", "-1000", "Rp 1", "garbage",
		"1.000.000", "750", "3,50", "10,5", "rp rp rp", "00000",
	}
	for _, raw := range inputs {
		amount, err := normalizer.Normalize(raw)
		if err != nil {
			continue
		}
		assert.GreaterOrEqual(t, amount, int64(DefaultMinAmount), "input %q", raw)
	}
}

func TestNormalizer_CustomThresholdAndPrefix(t *testing.T) {
	normalizer := NewNormalizer(NumericFormat{GroupSep: ",", DecimalSep: "."}, []string{"usd"}, 100)

	got, err := normalizer.Normalize("USD 1,250.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), got)

	_, err = normalizer.Normalize("USD 0.50")
	require.ErrorIs(t, err, ErrBelowThreshold)
}
