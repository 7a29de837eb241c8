package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/JonBeak/signquote/internal/model"
)

// Channel letter sizing formula grammar:
//
//	Formula := Term ('+' Term)*
//	Term    := Factor ('*' NUMBER)?
//	Factor  := NUMBER | NUMBER 'x' NUMBER | '(' NUMBER 'x' NUMBER ')'
//
// A dimension factor (width x height) is converted to linear inches and an
// LED count through the geometry calculator; a bare number is already a
// linear-inch value. '*N' replicates the preceding factor N times. Pricing
// is piece-granular, so the expanded per-piece list is kept, not just the
// totals.

type letterTokenKind int

const (
	letterNumber letterTokenKind = iota
	letterPlus
	letterStar
	letterDim // 'x' between two numbers
	letterLParen
	letterRParen
)

type letterToken struct {
	kind  letterTokenKind
	value float64
}

type letterParser struct {
	tokens []letterToken
	pos    int
}

// ParseLetterFormula evaluates a sizing formula like "48x48*12 + 30*12 + 15"
// into expanded channel letter metrics.
func ParseLetterFormula(input string) (model.ChannelLetterMetrics, error) {
	tokens, err := tokenizeLetterFormula(input)
	if err != nil {
		return model.ChannelLetterMetrics{}, err
	}

	p := &letterParser{tokens: tokens}
	pieces, err := p.parseFormula()
	if err != nil {
		return model.ChannelLetterMetrics{}, err
	}
	if p.pos != len(p.tokens) {
		return model.ChannelLetterMetrics{}, fmt.Errorf("unexpected token at position %d", p.pos)
	}
	return model.ChannelLetterMetrics{Pieces: pieces}, nil
}

func tokenizeLetterFormula(input string) ([]letterToken, error) {
	var tokens []letterToken
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case unicode.IsSpace(rune(ch)):
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				i++
			}
			v, err := strconv.ParseFloat(input[start:i], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number '%s'", input[start:i])
			}
			tokens = append(tokens, letterToken{kind: letterNumber, value: v})
		case ch == '+':
			tokens = append(tokens, letterToken{kind: letterPlus})
			i++
		case ch == '*':
			tokens = append(tokens, letterToken{kind: letterStar})
			i++
		case ch == 'x' || ch == 'X':
			tokens = append(tokens, letterToken{kind: letterDim})
			i++
		case ch == '(':
			tokens = append(tokens, letterToken{kind: letterLParen})
			i++
		case ch == ')':
			tokens = append(tokens, letterToken{kind: letterRParen})
			i++
		default:
			return nil, fmt.Errorf("unexpected character '%c'", ch)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty formula")
	}
	return tokens, nil
}

func (p *letterParser) parseFormula() ([]model.LetterPiece, error) {
	pieces, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && p.tokens[p.pos].kind == letterPlus {
		p.pos++
		more, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, more...)
	}
	return pieces, nil
}

func (p *letterParser) parseTerm() ([]model.LetterPiece, error) {
	piece, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	quantity := 1
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == letterStar {
		p.pos++
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != letterNumber {
			return nil, fmt.Errorf("expected a quantity after '*'")
		}
		raw := p.tokens[p.pos].value
		if raw < 1 || raw != math.Trunc(raw) {
			return nil, fmt.Errorf("quantity must be a positive whole number, got %g", raw)
		}
		quantity = int(raw)
		p.pos++
	}

	pieces := make([]model.LetterPiece, quantity)
	for i := range pieces {
		pieces[i] = piece
	}
	return pieces, nil
}

func (p *letterParser) parseFactor() (model.LetterPiece, error) {
	if p.pos >= len(p.tokens) {
		return model.LetterPiece{}, fmt.Errorf("unexpected end of formula")
	}

	parenthesized := false
	if p.tokens[p.pos].kind == letterLParen {
		parenthesized = true
		p.pos++
	}

	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != letterNumber {
		return model.LetterPiece{}, fmt.Errorf("expected a number")
	}
	first := p.tokens[p.pos].value
	p.pos++

	// Dimension pair: NUMBER 'x' NUMBER
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == letterDim {
		p.pos++
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != letterNumber {
			return model.LetterPiece{}, fmt.Errorf("expected a height after 'x'")
		}
		height := p.tokens[p.pos].value
		p.pos++
		if parenthesized {
			if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != letterRParen {
				return model.LetterPiece{}, fmt.Errorf("missing closing parenthesis")
			}
			p.pos++
		}
		if first <= 0 || height <= 0 {
			return model.LetterPiece{}, fmt.Errorf("dimensions must be positive")
		}
		li := LinearInches(first, height)
		return model.LetterPiece{
			LinearInches: li,
			LedCount:     LedCount(first, height, li),
		}, nil
	}

	if parenthesized {
		return model.LetterPiece{}, fmt.Errorf("parentheses must contain a dimension pair")
	}
	if first <= 0 {
		return model.LetterPiece{}, fmt.Errorf("linear inches must be positive")
	}

	// Bare linear-inch value
	return model.LetterPiece{
		LinearInches: first,
		LedCount:     LedsForLinearInches(first),
	}, nil
}

// GroupedSeparator splits the linear-inch list from the LED-count list in
// the grouped pair-list format, e.g. "12,15,18..7,8,9".
const GroupedSeparator = ".."

// ParseGroupedPairs parses the grouped pair-list format: a comma list of
// linear-inch values, the grouped separator, then a comma list of LED
// counts of equal length.
func ParseGroupedPairs(input string) (model.ChannelLetterMetrics, error) {
	parts := strings.SplitN(input, GroupedSeparator, 2)
	if len(parts) != 2 {
		return model.ChannelLetterMetrics{}, fmt.Errorf("grouped format requires a '%s' separator", GroupedSeparator)
	}

	inches, err := parseFloatList(parts[0])
	if err != nil {
		return model.ChannelLetterMetrics{}, fmt.Errorf("linear inches list: %w", err)
	}
	leds, err := parseIntList(parts[1])
	if err != nil {
		return model.ChannelLetterMetrics{}, fmt.Errorf("LED count list: %w", err)
	}
	if len(inches) != len(leds) {
		return model.ChannelLetterMetrics{}, fmt.Errorf("list lengths differ: %d linear-inch values vs %d LED counts", len(inches), len(leds))
	}

	pieces := make([]model.LetterPiece, len(inches))
	for i := range inches {
		pieces[i] = model.LetterPiece{LinearInches: inches[i], LedCount: leds[i]}
	}
	return model.ChannelLetterMetrics{Pieces: pieces}, nil
}

func parseFloatList(s string) ([]float64, error) {
	var values []float64
	for _, part := range strings.Split(s, ",") {
		res := ValidateNumeric(part, NumericConstraints{})
		if !res.IsValid {
			return nil, fmt.Errorf("%s", res.Error)
		}
		if res.Value <= 0 {
			return nil, fmt.Errorf("values must be positive, got %g", res.Value)
		}
		values = append(values, res.Value)
	}
	return values, nil
}

func parseIntList(s string) ([]int, error) {
	var values []int
	zero := 0
	for _, part := range strings.Split(s, ",") {
		res := ValidateNumeric(part, NumericConstraints{DecimalPlaces: &zero})
		if !res.IsValid {
			return nil, fmt.Errorf("%s", res.Error)
		}
		values = append(values, int(res.Value))
	}
	return values, nil
}
