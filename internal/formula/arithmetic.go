package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Arithmetic expression grammar:
//
//	Expression := Term (('+'|'-') Term)*
//	Term       := Factor (('*'|'/'|'x'|'X') Factor)*
//	Factor     := NUMBER
//
// Multiplicative operators bind tighter than additive ones, so
// "50 + 25x9" evaluates to 275. Division by zero is a parse-time error.

type arithTokenKind int

const (
	arithNumber arithTokenKind = iota
	arithOp
)

type arithToken struct {
	kind  arithTokenKind
	value float64
	op    byte
}

type arithParser struct {
	tokens []arithToken
	pos    int
}

// EvaluateArithmetic evaluates a pin-count style expression. A bare number
// short-circuits the parser entirely.
func EvaluateArithmetic(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("empty expression")
	}

	// Fast path: the whole input is a single number. The strict pattern is
	// used rather than strconv alone so that scientific notation and stray
	// signs fall through to the tokenizer and fail there.
	if numericSigned.MatchString(trimmed) {
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return v, nil
		}
	}

	tokens, err := tokenizeArithmetic(trimmed)
	if err != nil {
		return 0, err
	}

	p := &arithParser{tokens: tokens}
	result, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.tokens) {
		return 0, fmt.Errorf("unexpected token at position %d", p.pos)
	}
	return result, nil
}

func tokenizeArithmetic(input string) ([]arithToken, error) {
	var tokens []arithToken
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
			tokens = append(tokens, arithToken{kind: arithNumber, value: v})
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == 'x' || ch == 'X':
			tokens = append(tokens, arithToken{kind: arithOp, op: ch})
			i++
		default:
			return nil, fmt.Errorf("unexpected character '%c'", ch)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return tokens, nil
}

func (p *arithParser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind != arithOp || (tok.op != '+' && tok.op != '-') {
			break
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if tok.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *arithParser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.kind != arithOp {
			break
		}
		if tok.op != '*' && tok.op != '/' && tok.op != 'x' && tok.op != 'X' {
			break
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if tok.op == '/' {
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		} else {
			left *= right
		}
	}
	return left, nil
}

func (p *arithParser) parseFactor() (float64, error) {
	if p.pos >= len(p.tokens) {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	tok := p.tokens[p.pos]
	if tok.kind != arithNumber {
		return 0, fmt.Errorf("expected a number")
	}
	p.pos++
	return tok.value, nil
}
