package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskcalc/internal/theme"
)

// ErrUnknownCommand is returned for command lines naming no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// suggestDistance is the largest edit distance still offered as a suggestion.
const suggestDistance = 2

type Command struct {
	Name        string
	Usage       string
	Description string
	Execute     func(a *App, args []string) (tea.Cmd, error)
}

type CommandRegistry struct {
	commands []Command
	byName   map[string]Command
}

func NewCommandRegistry() *CommandRegistry {
	r := &CommandRegistry{}
	r.commands = []Command{
		{
			Name:        "theme",
			Usage:       "theme <1|2|3|next>",
			Description: "Switch the color theme",
			Execute: func(a *App, args []string) (tea.Cmd, error) {
				if len(args) != 1 {
					return nil, fmt.Errorf("usage: theme <1|2|3|next>")
				}
				if strings.EqualFold(args[0], "next") {
					return a.setTheme(a.theme.Next()), nil
				}
				p, err := theme.ParsePosition(args[0])
				if err != nil {
					return nil, err
				}
				return a.setTheme(p), nil
			},
		},
		{
			Name:        "clear",
			Usage:       "clear",
			Description: "Reset the expression",
			Execute: func(a *App, args []string) (tea.Cmd, error) {
				a.buf.Clear()
				return nil, nil
			},
		},
		{
			Name:        "history",
			Usage:       "history [show|hide|clear]",
			Description: "Toggle or clear the history tape",
			Execute: func(a *App, args []string) (tea.Cmd, error) {
				if len(args) == 0 {
					a.showHistory = !a.showHistory
					return nil, nil
				}
				switch strings.ToLower(args[0]) {
				case "show":
					a.showHistory = true
				case "hide":
					a.showHistory = false
				case "clear":
					if a.repos.History == nil {
						return nil, fmt.Errorf("history is not available")
					}
					return a.clearHistoryCmd(), nil
				default:
					return nil, fmt.Errorf("usage: history [show|hide|clear]")
				}
				return nil, nil
			},
		},
		{
			Name:        "help",
			Usage:       "help [command]",
			Description: "List commands or show one command's usage",
			Execute: func(a *App, args []string) (tea.Cmd, error) {
				if len(args) > 0 {
					cmd, ok := r.Lookup(args[0])
					if !ok {
						return nil, fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
					}
					a.setStatus(cmd.Usage + ": " + cmd.Description)
					return nil, nil
				}
				names := make([]string, 0, len(r.commands))
				for _, cmd := range r.All() {
					names = append(names, cmd.Name)
				}
				a.setStatus("commands: " + strings.Join(names, ", "))
				return nil, nil
			},
		},
		{
			Name:        "quit",
			Usage:       "quit",
			Description: "Exit jaskcalc",
			Execute: func(a *App, args []string) (tea.Cmd, error) {
				a.quitting = true
				return tea.Quit, nil
			},
		},
	}
	r.byName = make(map[string]Command, len(r.commands))
	for _, cmd := range r.commands {
		r.byName[cmd.Name] = cmd
	}
	return r
}

func (r *CommandRegistry) All() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

func (r *CommandRegistry) Lookup(name string) (Command, bool) {
	cmd, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// Suggest returns the closest command name within suggestDistance edits.
func (r *CommandRegistry) Suggest(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	type candidate struct {
		name string
		dist int
	}
	var cands []candidate
	for _, cmd := range r.commands {
		d := levenshtein.ComputeDistance(name, cmd.Name)
		if d <= suggestDistance {
			cands = append(cands, candidate{cmd.Name, d})
		}
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	return cands[0].name, true
}

// Run parses a command line and executes it against a.
func (r *CommandRegistry) Run(line string, a *App) (tea.Cmd, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, ok := r.Lookup(fields[0])
	if !ok {
		if s, found := r.Suggest(fields[0]); found {
			return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownCommand, fields[0], s)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	return cmd.Execute(a, fields[1:])
}
