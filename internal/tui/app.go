// Package tui is the Bubble Tea front end: it turns key presses and mouse
// clicks into calculator tokens and theme changes, and renders the panel.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/database/repository"
	"github.com/jask/jaskcalc/internal/theme"
)

const themeTimeout = 2 * time.Second

// Repos are the persistence collaborators. History may be nil, which
// disables the tape.
type Repos struct {
	Themes  theme.Store
	History HistoryStore
}

// Options configures New.
type Options struct {
	Theme       theme.Position
	HistorySize int
	Keys        *KeyRegistry
	Logger      *slog.Logger
}

// screen is the render sink the buffer writes to.
type screen struct{ text string }

func (s *screen) SetDisplayText(text string) { s.text = text }

// App ties the buffer, toggle and history together.
type App struct {
	ctx      context.Context
	repos    Repos
	log      *slog.Logger
	keys     *KeyRegistry
	commands *CommandRegistry

	buf    *calc.Buffer
	screen *screen
	theme  theme.Position

	historySize int
	history     table.Model
	entries     []repository.HistoryEntry
	showHistory bool

	commandMode bool
	input       textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

func New(ctx context.Context, repos Repos, opts Options) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := opts.Keys
	if keys == nil {
		keys = NewKeyRegistry()
	}
	pos := opts.Theme
	if !pos.Valid() {
		pos = theme.Default
	}

	sc := &screen{}
	buf := calc.NewBuffer(sc)
	sc.text = buf.Rendered()

	in := textinput.New()
	in.Prompt = ":"
	in.Placeholder = "theme next"
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)

	return &App{
		ctx:         ctx,
		repos:       repos,
		log:         log,
		keys:        keys,
		commands:    NewCommandRegistry(),
		buf:         buf,
		screen:      sc,
		theme:       pos,
		historySize: opts.HistorySize,
		history:     newHistoryTable(),
		showHistory: repos.History != nil,
		input:       in,
	}
}

// Theme returns the active toggle position.
func (a *App) Theme() theme.Position { return a.theme }

// Display returns the text currently shown on the calculator screen.
func (a *App) Display() string { return a.screen.text }

func (a *App) Init() tea.Cmd {
	if a.repos.History == nil {
		return nil
	}
	return a.loadHistoryCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	case tea.KeyMsg:
		if a.commandMode {
			return a.handleCommandKey(msg)
		}
		return a.handleKeypadKey(msg)
	case tea.MouseMsg:
		return a.handleMouse(msg)
	case themeSavedMsg:
		if msg.err != nil {
			a.log.Warn("theme.save.failed", "theme", msg.pos.String(), "err", msg.err)
			a.setError(fmt.Sprintf("Could not save theme: %v", msg.err))
		}
		return a, nil
	case historyLoadedMsg:
		if msg.err != nil {
			a.log.Warn("history.load.failed", "err", msg.err)
			a.setError(fmt.Sprintf("Could not load history: %v", msg.err))
			return a, nil
		}
		a.setHistory(msg.entries)
		return a, nil
	case historyAddedMsg:
		if msg.err != nil {
			a.log.Warn("history.add.failed", "err", msg.err)
			a.setError(fmt.Sprintf("Could not save history: %v", msg.err))
			return a, nil
		}
		entries := append([]repository.HistoryEntry{msg.entry}, a.entries...)
		if a.historySize > 0 && len(entries) > a.historySize {
			entries = entries[:a.historySize]
		}
		a.setHistory(entries)
		return a, nil
	case historyClearedMsg:
		if msg.err != nil {
			a.log.Warn("history.clear.failed", "err", msg.err)
			a.setError(fmt.Sprintf("Could not clear history: %v", msg.err))
			return a, nil
		}
		a.setHistory(nil)
		a.setStatus("History cleared.")
		return a, nil
	}
	return a, nil
}

func (a *App) handleKeypadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(msg.String(), scopeKeypad); b != nil {
		return a, a.runAction(b.Action)
	}
	if tok, ok := calc.ParseToken(msg.String()); ok {
		return a, a.press(tok)
	}
	return a, nil
}

func (a *App) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := a.keys.Lookup(msg.String(), scopeCommand); b != nil {
		switch b.Action {
		case actionRun:
			line := a.input.Value()
			a.closeCommand()
			cmd, err := a.commands.Run(line, a)
			if err != nil {
				a.setError(err.Error())
				return a, nil
			}
			return a, cmd
		case actionClose:
			a.closeCommand()
			return a, nil
		case actionQuit:
			a.quitting = true
			return a, tea.Quit
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return a, nil
	}
	if b, ok := buttonAt(msg.X, msg.Y); ok {
		return a, a.press(b.Token)
	}
	if hit, ok := themeAt(msg.X, msg.Y); ok {
		if hit.Cycle {
			return a, a.setTheme(a.theme.Next())
		}
		return a, a.setTheme(hit.Pos)
	}
	return a, nil
}

func (a *App) runAction(action Action) tea.Cmd {
	switch action {
	case actionEvaluate:
		return a.press(calc.EvaluateToken())
	case actionDelete:
		return a.press(calc.DeleteToken())
	case actionClear:
		return a.press(calc.ClearToken())
	case actionCycleTheme:
		return a.setTheme(a.theme.Next())
	case actionTheme1:
		return a.setTheme(theme.First)
	case actionTheme2:
		return a.setTheme(theme.Second)
	case actionTheme3:
		return a.setTheme(theme.Third)
	case actionToggleHistory:
		a.showHistory = !a.showHistory
	case actionCommandMode:
		return a.openCommand()
	case actionQuit:
		a.quitting = true
		return tea.Quit
	}
	return nil
}

// press routes one token through the buffer.
func (a *App) press(tok calc.Token) tea.Cmd {
	if tok.Kind != calc.KindEvaluate {
		if !a.buf.Apply(tok) {
			a.log.Debug("calc.token.discarded", "token", tok.String(), "buffer", a.buf.Text())
		}
		a.setStatus("")
		return nil
	}

	ev, err := a.buf.Evaluate()
	switch {
	case errors.Is(err, calc.ErrNothingToEvaluate):
		return nil
	case err != nil:
		kind := calc.ErrorKind("")
		var evalErr *calc.EvalError
		if errors.As(err, &evalErr) {
			kind = evalErr.Kind
		}
		a.log.Info("calc.evaluate.failed", "expr", ev.Expression, "kind", string(kind), "err", err)
		a.setStatus("")
		return nil
	}
	a.log.Debug("calc.evaluate", "expr", ev.Expression, "result", ev.Result)
	a.setStatus(fmt.Sprintf("%s = %s", calc.Format(ev.Expression), calc.Format(ev.Result)))
	if a.repos.History == nil {
		return nil
	}
	return a.addHistoryCmd(ev)
}

type themeSavedMsg struct {
	pos theme.Position
	err error
}

// setTheme switches the palette and persists the choice. Reselecting the
// active position is a no-op.
func (a *App) setTheme(p theme.Position) tea.Cmd {
	if !p.Valid() || p == a.theme {
		return nil
	}
	a.theme = p
	a.log.Debug("theme.changed", "theme", p.String())
	if a.repos.Themes == nil {
		return nil
	}
	store, ctx := a.repos.Themes, a.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, themeTimeout)
		defer cancel()
		return themeSavedMsg{pos: p, err: theme.Save(ctx, store, p)}
	}
}

func (a *App) openCommand() tea.Cmd {
	a.commandMode = true
	a.input.Reset()
	return a.input.Focus()
}

func (a *App) closeCommand() {
	a.commandMode = false
	a.input.Blur()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

func (a *App) scope() string {
	if a.commandMode {
		return scopeCommand
	}
	return scopeKeypad
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	body := renderPanel(a.screen.text, a.theme)
	if a.showHistory && a.repos.History != nil {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", a.renderHistory(theme.PaletteFor(a.theme)))
	}

	var status string
	if a.commandMode {
		status = a.input.View()
	} else {
		status = renderStatus(a.status, a.statusErr, a.width)
	}
	footer := renderFooter(a.keys.HelpBindings(a.scope()), a.width)
	return strings.Join([]string{body, status, footer}, "\n")
}
