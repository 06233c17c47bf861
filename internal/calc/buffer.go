package calc

import (
	"errors"
	"strings"
)

// Display receives the rendered text after every accepted mutation.
type Display interface {
	SetDisplayText(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) SetDisplayText(text string) { f(text) }

// Evaluation is the outcome of a successful Evaluate.
type Evaluation struct {
	Expression string
	Result     string
	Value      float64
}

// Buffer holds the expression being typed. The zero value is an empty buffer
// with no display attached.
type Buffer struct {
	text    string
	inError bool
	display Display
}

// NewBuffer returns an empty buffer that renders to display (may be nil).
func NewBuffer(display Display) *Buffer {
	return &Buffer{display: display}
}

// Text returns the raw, unformatted expression.
func (b *Buffer) Text() string { return b.text }

// InError reports whether the last evaluation failed and no token has been
// accepted since.
func (b *Buffer) InError() bool { return b.inError }

// Rendered returns the text a display should show.
func (b *Buffer) Rendered() string {
	if b.inError {
		return ErrorText
	}
	return Format(b.text)
}

// Apply dispatches any token, commands included. It reports whether the
// buffer changed state.
func (b *Buffer) Apply(t Token) bool {
	switch t.Kind {
	case KindClear:
		b.Clear()
		return true
	case KindDelete:
		b.DeleteLast()
		return true
	case KindEvaluate:
		_, err := b.Evaluate()
		return !errors.Is(err, ErrNothingToEvaluate)
	default:
		return b.Accept(t)
	}
}

// Accept applies a digit, decimal or operator token. It reports false when
// the token was discarded, in which case nothing is rendered.
func (b *Buffer) Accept(t Token) bool {
	if t.Kind != KindDigit && t.Kind != KindDecimal && t.Kind != KindOperator {
		return false
	}

	text := b.text
	if b.inError {
		text = ""
	}

	next, ok := acceptInto(text, t)
	if !ok {
		return false
	}
	b.text = next
	b.inError = false
	b.render()
	return true
}

func acceptInto(text string, t Token) (string, bool) {
	switch t.Kind {
	case KindOperator:
		if !isOperator(t.Char) || text == "" {
			return text, false
		}
		last := text[len(text)-1]
		if isOperator(last) || last == decimalDot {
			return text[:len(text)-1] + string(t.Char), true
		}
		return text + string(t.Char), true
	case KindDecimal:
		if strings.IndexByte(currentSegment(text), decimalDot) >= 0 {
			return text, false
		}
		return text + string(decimalDot), true
	case KindDigit:
		if !isDigit(t.Char) {
			return text, false
		}
		if text == "0" {
			return string(t.Char), true
		}
		return text + string(t.Char), true
	}
	return text, false
}

// currentSegment returns the operand being typed: everything after the last
// operator.
func currentSegment(text string) string {
	for i := len(text) - 1; i >= 0; i-- {
		if isOperator(text[i]) {
			return text[i+1:]
		}
	}
	return text
}

// Clear empties the buffer and drops any error state.
func (b *Buffer) Clear() {
	b.text = ""
	b.inError = false
	b.render()
}

// DeleteLast removes the final character. On an empty buffer it only drops
// the error state.
func (b *Buffer) DeleteLast() {
	if b.text != "" {
		b.text = b.text[:len(b.text)-1]
	}
	b.inError = false
	b.render()
}

// Evaluate computes the buffer. On success the canonical result replaces the
// buffer. On failure the buffer is emptied, the error state is set and the
// *EvalError is returned for bookkeeping. An empty buffer is left untouched
// and ErrNothingToEvaluate is returned.
func (b *Buffer) Evaluate() (Evaluation, error) {
	if b.text == "" {
		return Evaluation{}, ErrNothingToEvaluate
	}
	expr := b.text
	v, err := Eval(expr)
	if err != nil {
		b.text = ""
		b.inError = true
		b.render()
		return Evaluation{Expression: expr}, err
	}
	b.text = FormatResult(v)
	b.inError = false
	b.render()
	return Evaluation{Expression: expr, Result: b.text, Value: v}, nil
}

func (b *Buffer) render() {
	if b.display != nil {
		b.display.SetDisplayText(b.Rendered())
	}
}
