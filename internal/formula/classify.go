package formula

import (
	"fmt"
	"strings"

	"github.com/JonBeak/signquote/internal/model"
)

// ValueFormat identifies which channel letter input format a raw value uses.
type ValueFormat int

const (
	FormatEmpty   ValueFormat = iota
	FormatGrouped             // Paired lists: "12,15,18..7,8,9"
	FormatFormula             // Sizing formula: "48x48*12 + 30*12 + 15"
	FormatNumber              // Bare linear-inch total
	FormatUnknown
)

func (f ValueFormat) String() string {
	switch f {
	case FormatEmpty:
		return "empty"
	case FormatGrouped:
		return "grouped"
	case FormatFormula:
		return "formula"
	case FormatNumber:
		return "number"
	default:
		return "unknown"
	}
}

// ClassifyValue determines the input format of a channel letter value.
// Precedence is fixed and order-dependent: the grouped separator is checked
// before any formula operator, because a grouped value may legally contain
// commas and digits that would otherwise read as formula fragments. Only
// then are formula operators scanned, with a bare number as the final case.
func ClassifyValue(raw string) ValueFormat {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return FormatEmpty
	}
	if strings.Contains(trimmed, GroupedSeparator) {
		return FormatGrouped
	}
	if strings.ContainsAny(trimmed, "xX+*()") {
		return FormatFormula
	}
	if res := ValidateNumeric(trimmed, NumericConstraints{}); res.IsValid {
		return FormatNumber
	}
	return FormatUnknown
}

// ParseChannelLetterValue classifies a raw value and routes it to the right
// parser, producing channel letter metrics. A bare number becomes a scalar
// fallback with no per-piece breakdown.
func ParseChannelLetterValue(raw string) (model.ChannelLetterMetrics, error) {
	switch ClassifyValue(raw) {
	case FormatEmpty:
		return model.ChannelLetterMetrics{}, fmt.Errorf("value is empty")
	case FormatGrouped:
		return ParseGroupedPairs(strings.TrimSpace(raw))
	case FormatFormula:
		return ParseLetterFormula(raw)
	case FormatNumber:
		res := ValidateNumeric(raw, NumericConstraints{})
		if res.Value <= 0 {
			return model.ChannelLetterMetrics{}, fmt.Errorf("linear inches must be positive")
		}
		return model.ChannelLetterMetrics{Scalar: res.Value}, nil
	default:
		return model.ChannelLetterMetrics{}, fmt.Errorf("unrecognized format: '%s'", strings.TrimSpace(raw))
	}
}
