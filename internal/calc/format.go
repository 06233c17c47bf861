package calc

import "strings"

// ErrorText is the sentinel shown after a failed evaluation.
const ErrorText = "Error"

// Format inserts a comma every three digits in the integer part of each
// operand. Digits after a decimal point are left alone. Empty input formats
// to "0". Format is not idempotent; always pass the raw buffer text.
func Format(text string) string {
	if text == "" {
		return "0"
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/3)
	for i := 0; i < len(text); {
		if !isDigit(text[i]) {
			b.WriteByte(text[i])
			i++
			continue
		}
		start := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		run := text[start:i]
		if start > 0 && text[start-1] == decimalDot {
			b.WriteString(run)
			continue
		}
		writeGrouped(&b, run)
	}
	return b.String()
}

func writeGrouped(b *strings.Builder, run string) {
	lead := len(run) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(run[:lead])
	for i := lead; i < len(run); i += 3 {
		b.WriteByte(',')
		b.WriteString(run[i : i+3])
	}
}
