package calc

import "strings"

// Kind classifies a token.
type Kind int

const (
	KindInvalid Kind = iota
	KindDigit
	KindDecimal
	KindOperator
	KindClear
	KindDelete
	KindEvaluate
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindOperator:
		return "operator"
	case KindClear:
		return "clear"
	case KindDelete:
		return "delete"
	case KindEvaluate:
		return "evaluate"
	default:
		return "invalid"
	}
}

// Internal operator symbols. x is multiplication.
const (
	OpAdd      = '+'
	OpSubtract = '-'
	OpDivide   = '/'
	OpMultiply = 'x'
	decimalDot = '.'
)

// Token is one unit of input. Char is set for digits, decimals and operators.
type Token struct {
	Kind Kind
	Char byte
}

func Digit(c byte) Token { return Token{Kind: KindDigit, Char: c} }
func Operator(op byte) Token { return Token{Kind: KindOperator, Char: op} }
func Decimal() Token { return Token{Kind: KindDecimal, Char: decimalDot} }
func ClearToken() Token { return Token{Kind: KindClear} }
func DeleteToken() Token { return Token{Kind: KindDelete} }
func EvaluateToken() Token { return Token{Kind: KindEvaluate} }

func (t Token) String() string {
	if t.Char != 0 {
		return t.Kind.String() + "(" + string(t.Char) + ")"
	}
	return t.Kind.String()
}

// ParseToken maps a button label or key name to a token. Button actions use
// the names reset, del and equals.
func ParseToken(label string) (Token, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	switch s {
	case "reset", "clear":
		return ClearToken(), true
	case "del", "delete", "backspace":
		return DeleteToken(), true
	case "equals", "=", "enter":
		return EvaluateToken(), true
	case "*", "×":
		return Operator(OpMultiply), true
	}
	if len(s) != 1 {
		return Token{}, false
	}
	c := s[0]
	switch {
	case isDigit(c):
		return Digit(c), true
	case c == decimalDot:
		return Decimal(), true
	case isOperator(c):
		return Operator(c), true
	}
	return Token{}, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOperator(c byte) bool {
	return c == OpAdd || c == OpSubtract || c == OpDivide || c == OpMultiply
}
