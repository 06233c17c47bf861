package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/database/repository"
	"github.com/jask/jaskcalc/internal/theme"
)

const (
	historyExprWidth   = 18
	historyResultWidth = 14
	historyTimeout     = 3 * time.Second
)

// HistoryStore persists the calculation tape.
type HistoryStore interface {
	Add(ctx context.Context, e repository.HistoryEntry, keep int) (repository.HistoryEntry, error)
	Recent(ctx context.Context, limit int) ([]repository.HistoryEntry, error)
	Clear(ctx context.Context) error
}

type historyLoadedMsg struct {
	entries []repository.HistoryEntry
	err     error
}

type historyAddedMsg struct {
	entry repository.HistoryEntry
	err   error
}

type historyClearedMsg struct{ err error }

func newHistoryTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Expression", Width: historyExprWidth},
			{Title: "Result", Width: historyResultWidth},
		}),
		table.WithHeight(panelHeight-2),
		table.WithFocused(false),
	)
	return t
}

func historyRows(entries []repository.HistoryEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			ansi.Truncate(calc.Format(e.Expression), historyExprWidth, "…"),
			ansi.Truncate(calc.Format(e.Result), historyResultWidth, "…"),
		})
	}
	return rows
}

func (a *App) setHistory(entries []repository.HistoryEntry) {
	a.entries = entries
	a.history.SetRows(historyRows(entries))
}

func (a *App) renderHistory(pal theme.Palette) string {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(pal.Toggle).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Cell
	a.history.SetStyles(styles)

	body := a.history.View()
	if len(a.entries) == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, statusStyle.Render("No calculations yet."))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Toggle).
		Render(body)
}

func (a *App) loadHistoryCmd() tea.Cmd {
	store, limit := a.repos.History, a.historySize
	ctx := a.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, historyTimeout)
		defer cancel()
		entries, err := store.Recent(ctx, limit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (a *App) addHistoryCmd(ev calc.Evaluation) tea.Cmd {
	store, keep := a.repos.History, a.historySize
	ctx := a.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, historyTimeout)
		defer cancel()
		entry, err := store.Add(ctx, repository.HistoryEntry{
			Expression: ev.Expression,
			Result:     ev.Result,
		}, keep)
		return historyAddedMsg{entry: entry, err: err}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	store := a.repos.History
	ctx := a.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, historyTimeout)
		defer cancel()
		return historyClearedMsg{err: store.Clear(ctx)}
	}
}
