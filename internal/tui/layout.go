package tui

import (
	"fmt"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/theme"
)

// The calculator panel is drawn at the top-left corner with fixed geometry so
// mouse coordinates can be mapped back to keys without inspecting the frame.
const (
	buttonWidth  = 7
	buttonHeight = 3
	buttonGap    = 1
	keypadCols   = 4
	keypadRows   = 5

	panelWidth = keypadCols*buttonWidth + (keypadCols-1)*buttonGap

	headerRow     = 0
	toggleRow     = 1
	displayTop    = 2
	displayHeight = 3
	keypadTop     = displayTop + displayHeight
	panelHeight   = keypadTop + keypadRows*buttonHeight

	// Toggle track occupies the last seven columns of the toggle row; the
	// three position labels sit above its odd cells.
	trackWidth = 7
	trackLeft  = panelWidth - trackWidth
)

type keyStyle int

const (
	keyPlain keyStyle = iota
	keyAccent
	keyEquals
)

type button struct {
	Label string
	Token calc.Token
	Col   int
	Row   int
	Span  int
	Style keyStyle
}

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (b button) rect() rect {
	return rect{
		X: b.Col * (buttonWidth + buttonGap),
		Y: keypadTop + b.Row*buttonHeight,
		W: b.Span*buttonWidth + (b.Span-1)*buttonGap,
		H: buttonHeight,
	}
}

var keypad = buildKeypad()

func buildKeypad() []button {
	rows := [][]string{
		{"7", "8", "9", "DEL"},
		{"4", "5", "6", "+"},
		{"1", "2", "3", "-"},
		{".", "0", "/", "x"},
	}
	var out []button
	for r, labels := range rows {
		for c, label := range labels {
			out = append(out, newButton(label, c, r, 1))
		}
	}
	out = append(out, newButton("RESET", 0, 4, 2), newButton("=", 2, 4, 2))
	return out
}

func newButton(label string, col, row, span int) button {
	tok, ok := calc.ParseToken(label)
	if !ok {
		panic(fmt.Sprintf("keypad label %q does not map to a token", label))
	}
	style := keyPlain
	switch tok.Kind {
	case calc.KindDelete, calc.KindClear:
		style = keyAccent
	case calc.KindEvaluate:
		style = keyEquals
	}
	return button{Label: label, Token: tok, Col: col, Row: row, Span: span, Style: style}
}

// keypadRow returns the buttons on row r in column order.
func keypadRow(r int) []button {
	var out []button
	for _, b := range keypad {
		if b.Row == r {
			out = append(out, b)
		}
	}
	return out
}

// buttonAt hit-tests panel coordinates against the keypad. Gaps between
// keys hit nothing.
func buttonAt(x, y int) (button, bool) {
	for _, b := range keypad {
		if b.rect().contains(x, y) {
			return b, true
		}
	}
	return button{}, false
}

// themeLabelX is the column of the label (and track cell) for p.
func themeLabelX(p theme.Position) int {
	return trackLeft + 1 + 2*(int(p)-1)
}

// themeHit is a click on the toggle. Labels carry a position; the track
// only advances.
type themeHit struct {
	Pos   theme.Position
	Cycle bool
}

// themeAt hit-tests the toggle. Labels must be hit exactly; anywhere on the
// track cycles forward.
func themeAt(x, y int) (themeHit, bool) {
	switch y {
	case headerRow:
		for _, p := range theme.All() {
			if x == themeLabelX(p) {
				return themeHit{Pos: p}, true
			}
		}
	case toggleRow:
		if x >= trackLeft && x < trackLeft+trackWidth {
			return themeHit{Cycle: true}, true
		}
	}
	return themeHit{}, false
}
