package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskcalc/internal/theme"
)

// ---------------------------------------------------------------------------
// Panel: header, toggle, display, keypad
// ---------------------------------------------------------------------------

func renderPanel(display string, pos theme.Position) string {
	pal := theme.PaletteFor(pos)
	parts := []string{
		renderHeader(pos, pal),
		renderToggle(pos, pal),
		renderDisplay(display, pal),
	}
	for r := 0; r < keypadRows; r++ {
		parts = append(parts, renderKeypadRow(keypadRow(r), pal))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(pos theme.Position, pal theme.Palette) string {
	title := lipgloss.NewStyle().Foreground(pal.Text).Bold(true).Render("calc")
	label := lipgloss.NewStyle().Foreground(pal.Text).Render("THEME")

	var nums strings.Builder
	for _, p := range theme.All() {
		style := lipgloss.NewStyle().Foreground(pal.Text)
		if p == pos {
			style = style.Bold(true).Underline(true)
		}
		nums.WriteString(style.Render(string(rune('0' + int(p)))))
		nums.WriteString(" ")
	}

	left := title
	gap := themeLabelX(theme.First) - 2 - ansi.StringWidth("THEME") - ansi.StringWidth("calc")
	return left + strings.Repeat(" ", gap) + label + "  " + nums.String()
}

func renderToggle(pos theme.Position, pal theme.Palette) string {
	track := make([]rune, trackWidth)
	for i := range track {
		track[i] = ' '
	}
	track[0], track[trackWidth-1] = '(', ')'
	for _, p := range theme.All() {
		if p == pos {
			track[themeLabelX(p)-trackLeft] = '●'
		}
	}
	style := lipgloss.NewStyle().Foreground(pal.EqualsFace).Background(pal.Toggle)
	return strings.Repeat(" ", trackLeft) + style.Render(string(track))
}

func renderDisplay(text string, pal theme.Palette) string {
	inner := panelWidth - 4 // border and padding
	if w := ansi.StringWidth(text); w > inner {
		text = ansi.TruncateLeft(text, w-inner+1, "…")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Toggle).
		Background(pal.Screen).
		Foreground(pal.Text).
		Bold(true).
		Padding(0, 1).
		Width(panelWidth - 2).
		Align(lipgloss.Right).
		Render(text)
}

func renderKeypadRow(buttons []button, pal theme.Palette) string {
	cells := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			cells = append(cells, strings.Repeat(" ", buttonGap))
		}
		cells = append(cells, renderKey(b, pal))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func renderKey(b button, pal theme.Palette) string {
	face, edge, text := pal.KeyFace, pal.KeyText, pal.KeyText
	switch b.Style {
	case keyAccent:
		face, edge, text = pal.AccentFace, pal.AccentEdge, pal.AccentText
	case keyEquals:
		face, edge, text = pal.EqualsFace, pal.EqualsEdge, pal.EqualsText
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(edge).
		Background(face).
		Foreground(text).
		Bold(true).
		Width(b.rect().W - 2).
		Align(lipgloss.Center).
		Render(b.Label)
}

// ---------------------------------------------------------------------------
// Chrome: status line and footer
// ---------------------------------------------------------------------------

var (
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	helpDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

func renderFooter(bindings []key.Binding, width int) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, helpKeyStyle.Render(help.Key)+" "+helpDescStyle.Render(help.Desc))
	}
	return truncate(strings.Join(parts, "  "), width)
}

func renderStatus(text string, isErr bool, width int) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	if isErr {
		return truncate(errorStyle.Render(flat), width)
	}
	return truncate(statusStyle.Render(flat), width)
}

func truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
