// Package validate implements the grid's context-aware validation engine:
// the polymorphic template set, the per-row validation context with its
// two-phase builder, and the orchestrating engine with its results store.
package validate

import "github.com/JonBeak/signquote/internal/model"

// ParsedKind tags the closed variant of textual forms a field can parse to.
// Downstream calculation switches over the kind are meant to be exhaustive;
// stringly-typed branching on the raw text is not allowed past this point.
type ParsedKind int

const (
	ParsedEmpty    ParsedKind = iota
	ParsedLiteral             // "yes"/"no" toggles and free text
	ParsedNumber              // A bare numeric value
	ParsedCurrency            // A $-prefixed amount
	ParsedNumbers             // Dimension tuples and numeric lists
	ParsedParts               // Delimited text parts
	ParsedMetrics             // Channel letter metrics
)

// ParsedValue is the typed value of a cell that passed validation.
type ParsedValue struct {
	Kind    ParsedKind
	Literal string
	Number  float64
	Numbers []float64
	Parts   []string
	Metrics *model.ChannelLetterMetrics
}

// ValidationResult is the outcome of validating one cell.
//
// Parsed carries the literal typed value; Calculated carries a derived
// business quantity distinct from it (for example, "yes" parses to the
// literal toggle but calculates to a concrete LED count).
type ValidationResult struct {
	IsValid        bool
	Error          string
	ExpectedFormat string
	Parsed         *ParsedValue
	Calculated     *ParsedValue
}

// Valid builds a passing result with a parsed value.
func Valid(parsed ParsedValue) ValidationResult {
	return ValidationResult{IsValid: true, Parsed: &parsed}
}

// ValidWithCalc builds a passing result with both a parsed value and a
// derived calculated value.
func ValidWithCalc(parsed, calculated ParsedValue) ValidationResult {
	return ValidationResult{IsValid: true, Parsed: &parsed, Calculated: &calculated}
}

// Invalid builds a failing result with a message and an expected-format hint.
func Invalid(message, expectedFormat string) ValidationResult {
	return ValidationResult{Error: message, ExpectedFormat: expectedFormat}
}

// EmptyValue is the parsed value for a legitimately blank optional cell.
func EmptyValue() ParsedValue { return ParsedValue{Kind: ParsedEmpty} }

// LiteralValue builds a literal parsed value.
func LiteralValue(s string) ParsedValue { return ParsedValue{Kind: ParsedLiteral, Literal: s} }

// NumberValue builds a numeric parsed value.
func NumberValue(v float64) ParsedValue { return ParsedValue{Kind: ParsedNumber, Number: v} }

// CurrencyValue builds a currency parsed value.
func CurrencyValue(v float64) ParsedValue { return ParsedValue{Kind: ParsedCurrency, Number: v} }

// NumbersValue builds a numeric tuple parsed value.
func NumbersValue(vs ...float64) ParsedValue { return ParsedValue{Kind: ParsedNumbers, Numbers: vs} }

// PartsValue builds a delimited-parts parsed value.
func PartsValue(parts []string) ParsedValue { return ParsedValue{Kind: ParsedParts, Parts: parts} }

// MetricsValue builds a channel letter metrics parsed value.
func MetricsValue(m model.ChannelLetterMetrics) ParsedValue {
	return ParsedValue{Kind: ParsedMetrics, Metrics: &m}
}
