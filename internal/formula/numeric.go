// Package formula implements the grid's strict numeric input validation,
// the arithmetic ("pin count") expression evaluator, and the channel letter
// sizing formula language with its supporting geometry calculations.
package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NumericConstraints controls what ValidateNumeric accepts.
type NumericConstraints struct {
	AllowNegative bool
	AllowEmpty    bool
	MinValue      *float64
	MaxValue      *float64
	DecimalPlaces *int // Max digits after the decimal point; nil = unlimited
}

// NumericResult is the outcome of strict numeric validation.
type NumericResult struct {
	IsValid bool
	IsEmpty bool
	Value   float64
	Error   string
}

var (
	numericSigned   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	numericUnsigned = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ValidateNumeric parses raw text against an anchored numeric grammar.
// Partial matches ("12abc"), scientific notation ("1e5"), and malformed
// decimals (".5", "1.2.3") are rejected outright rather than being
// truncated by a lenient cast. Every higher-level template depends on this
// strictness.
func ValidateNumeric(raw string, c NumericConstraints) NumericResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if c.AllowEmpty {
			return NumericResult{IsValid: true, IsEmpty: true}
		}
		return NumericResult{Error: "value is required"}
	}

	re := numericUnsigned
	if c.AllowNegative {
		re = numericSigned
	}
	if !re.MatchString(trimmed) {
		if !c.AllowNegative && strings.HasPrefix(trimmed, "-") {
			return NumericResult{Error: "negative values are not allowed"}
		}
		return NumericResult{Error: fmt.Sprintf("'%s' is not a valid number", trimmed)}
	}

	if c.DecimalPlaces != nil {
		if idx := strings.Index(trimmed, "."); idx >= 0 {
			if decimals := len(trimmed) - idx - 1; decimals > *c.DecimalPlaces {
				return NumericResult{Error: fmt.Sprintf("at most %d decimal place(s) allowed", *c.DecimalPlaces)}
			}
		}
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return NumericResult{Error: fmt.Sprintf("'%s' is not a valid number", trimmed)}
	}

	if c.MinValue != nil && value < *c.MinValue {
		return NumericResult{Error: fmt.Sprintf("value must be at least %g", *c.MinValue)}
	}
	if c.MaxValue != nil && value > *c.MaxValue {
		return NumericResult{Error: fmt.Sprintf("value must be at most %g", *c.MaxValue)}
	}

	return NumericResult{IsValid: true, Value: value}
}

// Float64Ptr returns a pointer to v, for constraint literals.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v, for constraint literals.
func IntPtr(v int) *int { return &v }
