package calc

import (
	"errors"
	"strings"
	"testing"
)

type recordingDisplay struct {
	calls []string
}

func (r *recordingDisplay) SetDisplayText(text string) { r.calls = append(r.calls, text) }

func (r *recordingDisplay) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

// typeKeys feeds each character of keys through ParseToken and Apply.
func typeKeys(t *testing.T, b *Buffer, keys string) {
	t.Helper()
	for _, r := range keys {
		tok, ok := ParseToken(string(r))
		if !ok {
			t.Fatalf("no token for %q", r)
		}
		b.Apply(tok)
	}
}

func TestAcceptDigitsConcatenate(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"1", "1"},
		{"123", "123"},
		{"0", "0"},
		{"05", "5"},
		{"007", "7"},
		{"100", "100"},
		{"1000200", "1000200"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			b := NewBuffer(nil)
			typeKeys(t, b, tt.keys)
			if got := b.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeadingZeroOnlyCollapsesLoneZero(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "5+05")
	if got := b.Text(); got != "5+05" {
		t.Fatalf("Text() = %q, want %q", got, "5+05")
	}

	b = NewBuffer(nil)
	typeKeys(t, b, "0.5")
	if got := b.Text(); got != "0.5" {
		t.Fatalf("Text() = %q, want %q", got, "0.5")
	}
}

func TestOperatorOnEmptyBufferIsDiscarded(t *testing.T) {
	for _, op := range []string{"+", "-", "/", "x"} {
		t.Run(op, func(t *testing.T) {
			d := &recordingDisplay{}
			b := NewBuffer(d)
			tok, _ := ParseToken(op)
			if b.Accept(tok) {
				t.Fatal("expected operator to be discarded")
			}
			if b.Text() != "" {
				t.Fatalf("Text() = %q, want empty", b.Text())
			}
			if len(d.calls) != 0 {
				t.Fatalf("expected no render, got %v", d.calls)
			}
		})
	}
}

func TestOperatorReplacesTrailingOperator(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"12+", "12+"},
		{"12+-", "12-"},
		{"12+-x/", "12/"},
		{"3x+", "3+"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			b := NewBuffer(nil)
			typeKeys(t, b, tt.keys)
			if got := b.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperatorReplaceKeepsLength(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "45x")
	before := len(b.Text())
	if !b.Accept(Operator(OpSubtract)) {
		t.Fatal("expected replacement to be accepted")
	}
	if len(b.Text()) != before {
		t.Fatalf("len = %d, want %d", len(b.Text()), before)
	}
}

// An operator after a trailing decimal drops the dot.
func TestOperatorReplacesTrailingDecimal(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "12.")
	if !b.Accept(Operator(OpAdd)) {
		t.Fatal("expected operator to be accepted")
	}
	if got := b.Text(); got != "12+" {
		t.Fatalf("Text() = %q, want %q", got, "12+")
	}
}

func TestDecimalOncePerSegment(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{".", "."},
		{"..", "."},
		{"1.2.3", "1.23"},
		{"1.5+2.5", "1.5+2.5"},
		{"1.5+2..5", "1.5+2.5"},
		{"0.", "0."},
		{"7+.", "7+."},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			b := NewBuffer(nil)
			typeKeys(t, b, tt.keys)
			if got := b.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecondDecimalIsNoOp(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "3.1")
	renders := len(d.calls)
	if b.Accept(Decimal()) {
		t.Fatal("expected decimal to be discarded")
	}
	if b.Text() != "3.1" {
		t.Fatalf("Text() = %q, want %q", b.Text(), "3.1")
	}
	if len(d.calls) != renders {
		t.Fatal("discarded token should not render")
	}
}

func TestEvaluateSuccess(t *testing.T) {
	tests := []struct {
		keys    string
		want    string
		display string
	}{
		{"2+2", "4", "4"},
		{"5x3", "15", "15"},
		{"2+3x4", "14", "14"},
		{"10-4-3", "3", "3"},
		{"8/4/2", "1", "1"},
		{"1000x1000", "1000000", "1,000,000"},
		{"7/2", "3.5", "3.5"},
		{"2-5", "-3", "-3"},
		{"12.", "12", "12"},
		{".5+.5", "1", "1"},
		{"0.1+0.2", "0.30000000000000004", "0.30000000000000004"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			d := &recordingDisplay{}
			b := NewBuffer(d)
			typeKeys(t, b, tt.keys)
			ev, err := b.Evaluate()
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if ev.Result != tt.want || b.Text() != tt.want {
				t.Fatalf("result = %q, buffer = %q, want %q", ev.Result, b.Text(), tt.want)
			}
			if ev.Expression != tt.keys {
				t.Fatalf("expression = %q, want %q", ev.Expression, tt.keys)
			}
			if d.last() != tt.display {
				t.Fatalf("display = %q, want %q", d.last(), tt.display)
			}
			if b.InError() {
				t.Fatal("unexpected error state")
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "6/0")
	_, err := b.Evaluate()
	if !IsKind(err, KindNonFinite) {
		t.Fatalf("err = %v, want non-finite", err)
	}
	if d.last() != ErrorText {
		t.Fatalf("display = %q, want %q", d.last(), ErrorText)
	}
	if b.Text() != "" {
		t.Fatalf("Text() = %q, want empty", b.Text())
	}
	if !b.InError() {
		t.Fatal("expected error state")
	}
}

func TestEvaluateOverflowIsNonFinite(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "9"+strings.Repeat("9", 200)+"x9"+strings.Repeat("9", 200))
	_, err := b.Evaluate()
	if !IsKind(err, KindNonFinite) {
		t.Fatalf("err = %v, want non-finite", err)
	}
}

func TestEvaluateMalformed(t *testing.T) {
	for _, keys := range []string{"5+", "7+.", "."} {
		t.Run(keys, func(t *testing.T) {
			d := &recordingDisplay{}
			b := NewBuffer(d)
			typeKeys(t, b, keys)
			_, err := b.Evaluate()
			if !IsKind(err, KindMalformed) {
				t.Fatalf("err = %v, want malformed", err)
			}
			if d.last() != ErrorText || b.Text() != "" || !b.InError() {
				t.Fatalf("display = %q, buffer = %q, inError = %v", d.last(), b.Text(), b.InError())
			}
		})
	}
}

func TestEvaluateEmptyIsNoOp(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	_, err := b.Evaluate()
	if !errors.Is(err, ErrNothingToEvaluate) {
		t.Fatalf("err = %v, want ErrNothingToEvaluate", err)
	}
	if len(d.calls) != 0 {
		t.Fatalf("expected no render, got %v", d.calls)
	}
	if b.Apply(EvaluateToken()) {
		t.Fatal("Apply(evaluate) on empty buffer should report no change")
	}
}

func TestResultChainsIntoNextExpression(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "2+2=x3=")
	if got := b.Text(); got != "12" {
		t.Fatalf("Text() = %q, want %q", got, "12")
	}
	typeKeys(t, b, "5")
	if got := b.Text(); got != "125" {
		t.Fatalf("Text() = %q, want %q", got, "125")
	}
}

func TestNegativeResultCanContinue(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "2-5=+10=")
	if got := b.Text(); got != "7" {
		t.Fatalf("Text() = %q, want %q", got, "7")
	}
}

func TestDigitAfterErrorStartsFresh(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "6/0=")
	if !b.InError() {
		t.Fatal("expected error state")
	}
	if !b.Accept(Digit('7')) {
		t.Fatal("expected digit to be accepted")
	}
	if b.Text() != "7" || b.InError() {
		t.Fatalf("Text() = %q, inError = %v", b.Text(), b.InError())
	}
	if d.last() != "7" {
		t.Fatalf("display = %q, want %q", d.last(), "7")
	}
}

func TestDecimalAfterErrorStartsFresh(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "1/0=")
	typeKeys(t, b, ".5")
	if b.Text() != ".5" {
		t.Fatalf("Text() = %q, want %q", b.Text(), ".5")
	}
}

func TestOperatorAfterErrorIsDiscardedAndKeepsError(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "1/0=")
	if b.Accept(Operator(OpAdd)) {
		t.Fatal("expected operator to be discarded on the empty buffer")
	}
	if !b.InError() || b.Rendered() != ErrorText {
		t.Fatalf("inError = %v, rendered = %q", b.InError(), b.Rendered())
	}
}

func TestClearAndDeleteLeaveErrorState(t *testing.T) {
	for _, tok := range []Token{ClearToken(), DeleteToken()} {
		t.Run(tok.String(), func(t *testing.T) {
			d := &recordingDisplay{}
			b := NewBuffer(d)
			typeKeys(t, b, "1/0=")
			b.Apply(tok)
			if b.InError() {
				t.Fatal("expected error state to be cleared")
			}
			if d.last() != "0" {
				t.Fatalf("display = %q, want %q", d.last(), "0")
			}
		})
	}
}

func TestDeleteUntilEmpty(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "12+3")
	for i := 0; i < 4; i++ {
		b.DeleteLast()
	}
	if b.Text() != "" {
		t.Fatalf("Text() = %q, want empty", b.Text())
	}
	b.DeleteLast()
	if b.Text() != "" {
		t.Fatalf("Text() = %q after extra delete, want empty", b.Text())
	}
}

func TestDeleteSteps(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "12+3")
	want := []string{"12+", "12", "1", ""}
	for _, w := range want {
		b.DeleteLast()
		if b.Text() != w {
			t.Fatalf("Text() = %q, want %q", b.Text(), w)
		}
	}
}

func TestClearResets(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "123x4")
	b.Clear()
	if b.Text() != "" {
		t.Fatalf("Text() = %q, want empty", b.Text())
	}
	if d.last() != "0" {
		t.Fatalf("display = %q, want %q", d.last(), "0")
	}
}

func TestRenderAfterEveryAcceptedToken(t *testing.T) {
	d := &recordingDisplay{}
	b := NewBuffer(d)
	typeKeys(t, b, "1234")
	want := []string{"1", "12", "123", "1,234"}
	if len(d.calls) != len(want) {
		t.Fatalf("renders = %v, want %v", d.calls, want)
	}
	for i := range want {
		if d.calls[i] != want[i] {
			t.Fatalf("render[%d] = %q, want %q", i, d.calls[i], want[i])
		}
	}
}

func TestBufferInvariantsHold(t *testing.T) {
	b := NewBuffer(nil)
	typeKeys(t, b, "..1..2+-x/..3.4x+5=..6+/7")
	text := b.Text()
	for i := 1; i < len(text); i++ {
		if isOperator(text[i]) && isOperator(text[i-1]) {
			t.Fatalf("adjacent operators in %q", text)
		}
	}
	for _, seg := range strings.FieldsFunc(text, func(r rune) bool { return r < 128 && isOperator(byte(r)) }) {
		if strings.Count(seg, ".") > 1 {
			t.Fatalf("segment %q in %q has more than one decimal point", seg, text)
		}
	}
}

func TestDisplayFuncAdapter(t *testing.T) {
	var got string
	b := NewBuffer(DisplayFunc(func(text string) { got = text }))
	typeKeys(t, b, "9")
	if got != "9" {
		t.Fatalf("display = %q, want %q", got, "9")
	}
}
