package calc

import (
	"errors"
	"math"
	"strconv"
)

var errNonFiniteResult = errors.New("result is not a finite number")

type lexeme struct {
	op  byte // 0 for numbers
	num float64
	pos int
}

// Eval evaluates a flat infix expression over + - / x (or *) with standard
// precedence and left associativity. A single leading sign is allowed on the
// first operand; parentheses are not.
func Eval(expr string) (float64, error) {
	if expr == "" {
		return 0, malformed(expr, "empty expression")
	}
	items, err := lex(expr)
	if err != nil {
		return 0, err
	}

	i := 0
	sign := 1.0
	if items[0].op == '+' || items[0].op == '-' {
		if items[0].op == '-' {
			sign = -1
		}
		i++
	}
	first, err := operandAt(expr, items, i)
	if err != nil {
		return 0, err
	}
	i++

	total := 0.0
	term := sign * first
	pending := byte('+')
	for i < len(items) {
		op := items[i].op
		if op == 0 {
			return 0, malformed(expr, "unexpected number at %d", items[i].pos)
		}
		n, err := operandAt(expr, items, i+1)
		if err != nil {
			return 0, err
		}
		switch op {
		case '*':
			term *= n
		case '/':
			term /= n
		default:
			total = apply(total, pending, term)
			pending = op
			term = n
		}
		i += 2
	}
	total = apply(total, pending, term)

	if math.IsInf(total, 0) || math.IsNaN(total) {
		return 0, nonFinite(expr, errNonFiniteResult)
	}
	if total == 0 {
		// drop negative zero
		total = 0
	}
	return total, nil
}

// FormatResult renders a value in canonical decimal form without exponent.
func FormatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func apply(acc float64, op byte, v float64) float64 {
	if op == '-' {
		return acc - v
	}
	return acc + v
}

func operandAt(expr string, items []lexeme, i int) (float64, error) {
	if i >= len(items) {
		return 0, malformed(expr, "expression ends with an operator")
	}
	if items[i].op != 0 {
		return 0, malformed(expr, "unexpected operator %q at %d", items[i].op, items[i].pos)
	}
	return items[i].num, nil
}

func lex(expr string) ([]lexeme, error) {
	var out []lexeme
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case isDigit(c) || c == decimalDot:
			start := i
			dots := 0
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == decimalDot) {
				if expr[i] == decimalDot {
					dots++
				}
				i++
			}
			lit := expr[start:i]
			if dots > 1 || lit == "." {
				return nil, malformed(expr, "invalid number %q at %d", lit, start)
			}
			n, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				if errors.Is(err, strconv.ErrRange) {
					return nil, nonFinite(expr, err)
				}
				return nil, malformed(expr, "invalid number %q at %d", lit, start)
			}
			out = append(out, lexeme{num: n, pos: start})
		case c == OpMultiply || c == '*':
			out = append(out, lexeme{op: '*', pos: i})
			i++
		case c == OpAdd || c == OpSubtract || c == OpDivide:
			out = append(out, lexeme{op: c, pos: i})
			i++
		default:
			return nil, malformed(expr, "unexpected character %q at %d", c, i)
		}
	}
	return out, nil
}
