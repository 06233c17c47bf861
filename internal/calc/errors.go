package calc

import (
	"errors"
	"fmt"
)

// ErrNothingToEvaluate is returned by Buffer.Evaluate on an empty buffer.
var ErrNothingToEvaluate = errors.New("nothing to evaluate")

// ErrorKind is a coarse-grained categorization for evaluation failures.
type ErrorKind string

const (
	KindMalformed ErrorKind = "malformed"
	KindNonFinite ErrorKind = "non_finite"
)

// EvalError wraps an evaluation failure with the expression and a kind.
type EvalError struct {
	Op   string
	Kind ErrorKind
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Expr != "" {
		base += fmt.Sprintf(" (expr=%q)", e.Expr)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an EvalError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

func malformed(expr string, format string, args ...any) error {
	return &EvalError{Op: "calc.eval", Kind: KindMalformed, Expr: expr, Err: fmt.Errorf(format, args...)}
}

func nonFinite(expr string, err error) error {
	return &EvalError{Op: "calc.eval", Kind: KindNonFinite, Expr: expr, Err: err}
}
