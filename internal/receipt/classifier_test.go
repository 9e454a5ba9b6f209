package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catetin/catetin/internal/model"
)

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected model.LineKind
	}{
		{
			name:     "grouped price token",
			line:     "15.000",
			expected: model.LinePrice,
		},
		{
			name:     "plain price token",
			line:     "12000",
			expected: model.LinePrice,
		},
		{
			name:     "comma separated price token",
			line:     "1,500,000",
			expected: model.LinePrice,
		},
		{
			name:     "short number is noise",
			line:     "300",
			expected: model.LineNoise,
		},
		{
			name:     "product name",
			line:     "Nasi Goreng",
			expected: model.LineProductName,
		},
		{
			name:     "product name with trailing price stays product",
			line:     "Mie Ayam 12000",
			expected: model.LineProductName,
		},
		{
			name:     "stop word wins over inline shape",
			line:     "SUBTOTAL 21000",
			expected: model.LineNoise,
		},
		{
			name:     "stop word case insensitive",
			line:     "Terima Kasih",
			expected: model.LineNoise,
		},
		{
			name:     "indonesian chrome line",
			line:     "TUNAI 50000",
			expected: model.LineNoise,
		},
		{
			name:     "short junk is noise",
			line:     "ab",
			expected: model.LineNoise,
		},
		{
			name:     "separator-only token is noise",
			line:     "....",
			expected: model.LineNoise,
		},
	}

	classifier := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify([]string{tt.line})
			require.Len(t, got, 1)
			assert.Equal(t, tt.expected, got[0].Kind)
			assert.Equal(t, tt.line, got[0].Text)
			assert.Equal(t, 0, got[0].Index)
		})
	}
}

func TestClassifier_PreservesOrderAndIndices(t *testing.T) {
	classifier := NewClassifier(nil)
	lines := []string{"Nasi Goreng", "15.000", "Es Teh", "6.000"}

	classified := classifier.Classify(lines)

	require.Len(t, classified, len(lines))
	for i, line := range classified {
		assert.Equal(t, i, line.Index)
		assert.Equal(t, lines[i], line.Text)
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier := NewClassifier(nil)
	lines := []string{"Kopi Susu", "10.000", "TOTAL", "zz"}

	first := classifier.Classify(lines)
	second := classifier.Classify(lines)

	assert.Equal(t, first, second)
}

func TestClassifier_CustomStopWords(t *testing.T) {
	classifier := NewClassifier([]string{"gesamt"})

	got := classifier.Classify([]string{"GESAMT 21000", "SUBTOTAL 21000"})

	require.Len(t, got, 2)
	assert.Equal(t, model.LineNoise, got[0].Kind)
	// Default stop words no longer apply once a custom set is given.
	assert.Equal(t, model.LineProductName, got[1].Kind)
}
