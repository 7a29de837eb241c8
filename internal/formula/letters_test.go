package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLetterFormulaExpandsPieces(t *testing.T) {
	m, err := ParseLetterFormula("48x48*2 + 30*3 + 15")
	require.NoError(t, err)
	require.Len(t, m.Pieces, 6)

	// 48x48: regular branch, max(48, 2304/20 = 115.2) -> 115
	assert.Equal(t, 115.0, m.Pieces[0].LinearInches)
	assert.Equal(t, m.Pieces[0], m.Pieces[1], "replicated pieces should be identical")

	// Bare linear-inch entries pass through unchanged
	assert.Equal(t, 30.0, m.Pieces[2].LinearInches)
	assert.Equal(t, 15.0, m.Pieces[5].LinearInches)

	assert.Equal(t, 6, m.PieceCount())
	assert.InDelta(t, 115+115+30+30+30+15, m.TotalWidth(), 0.001)
}

func TestParseLetterFormulaDimensionLeds(t *testing.T) {
	m, err := ParseLetterFormula("10x5")
	require.NoError(t, err)
	require.Len(t, m.Pieces, 1)
	// 10x5 -> linear inches max(10, 50/20) = 10, small-letter LED curve -> 7
	assert.Equal(t, 10.0, m.Pieces[0].LinearInches)
	assert.Equal(t, 7, m.Pieces[0].LedCount)
	assert.Equal(t, 7, m.LedCount())
}

func TestParseLetterFormulaParenthesizedDimensions(t *testing.T) {
	m, err := ParseLetterFormula("(12x8)*2")
	require.NoError(t, err)
	require.Len(t, m.Pieces, 2)
	assert.Equal(t, 12.0, m.Pieces[0].LinearInches)
}

func TestParseLetterFormulaRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "48x", "x48", "48xx24", "10*", "10*2.5", "(12x8", "(15)*2", "5 & 3"} {
		_, err := ParseLetterFormula(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseGroupedPairs(t *testing.T) {
	m, err := ParseGroupedPairs("12,15,18..7,8,9")
	require.NoError(t, err)
	require.Len(t, m.Pieces, 3)
	assert.Equal(t, 15.0, m.Pieces[1].LinearInches)
	assert.Equal(t, 8, m.Pieces[1].LedCount)
	assert.Equal(t, 24, m.LedCount())
	assert.InDelta(t, 45.0, m.TotalWidth(), 0.001)
	assert.Equal(t, m.TotalWidth(), m.TotalPerimeter(), "perimeter is an alias of total width")
}

func TestParseGroupedPairsRejectsMismatchedLengths(t *testing.T) {
	_, err := ParseGroupedPairs("12,15..7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lengths differ")
}

func TestParseGroupedPairsRejectsBadValues(t *testing.T) {
	for _, input := range []string{"12,abc..7,8", "12,15..7.5,8", "..", "12..", "12,-3..7,8"} {
		_, err := ParseGroupedPairs(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestClassifyValuePrecedence(t *testing.T) {
	cases := []struct {
		input string
		want  ValueFormat
	}{
		{"", FormatEmpty},
		{"   ", FormatEmpty},
		{"12,15,18..7,8,9", FormatGrouped},
		// The grouped separator wins even when formula operators are present
		{"12x4..7", FormatGrouped},
		{"48x48*12 + 30*12 + 15", FormatFormula},
		{"10x5", FormatFormula},
		{"(12x8)*2", FormatFormula},
		{"144", FormatNumber},
		{"3.5", FormatNumber},
		{"12abc", FormatUnknown},
		{"1e5", FormatUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyValue(c.input), "input %q", c.input)
	}
}

func TestParseChannelLetterValueScalarFallback(t *testing.T) {
	m, err := ParseChannelLetterValue("36")
	require.NoError(t, err)
	assert.Empty(t, m.Pieces)
	assert.Equal(t, 36.0, m.TotalWidth())
	assert.Equal(t, 1, m.PieceCount())
	assert.Equal(t, 0, m.LedCount(), "scalar entries carry no per-piece LED data")
}

func TestParseChannelLetterValueRouting(t *testing.T) {
	_, err := ParseChannelLetterValue("")
	assert.Error(t, err)

	m, err := ParseChannelLetterValue("12,15..7,8")
	require.NoError(t, err)
	assert.Len(t, m.Pieces, 2)

	m, err = ParseChannelLetterValue("10x5 + 8x8")
	require.NoError(t, err)
	assert.Len(t, m.Pieces, 2)

	_, err = ParseChannelLetterValue("garbage")
	assert.Error(t, err)
}
