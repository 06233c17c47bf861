package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/jaskcalc/internal/calc"
	"github.com/jask/jaskcalc/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
	// Hidden bindings are resolvable but left out of the footer.
	Hidden bool
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopeKeypad  = "keypad"
	scopeCommand = "command"
)

const (
	actionQuit          Action = "quit"
	actionEvaluate      Action = "evaluate"
	actionDelete        Action = "delete"
	actionClear         Action = "clear"
	actionCycleTheme    Action = "cycle_theme"
	actionTheme1        Action = "theme_1"
	actionTheme2        Action = "theme_2"
	actionTheme3        Action = "theme_3"
	actionCommandMode   Action = "command_mode"
	actionToggleHistory Action = "toggle_history"
	actionRun           Action = "run"
	actionClose         Action = "close"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}
	hidden := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}, Hidden: true})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	// Digits, operators and "." have no bindings; they fall through to
	// calc.ParseToken.
	reg(scopeKeypad, actionEvaluate, []string{"enter", "="}, "equals")
	reg(scopeKeypad, actionDelete, []string{"backspace", "delete"}, "del")
	reg(scopeKeypad, actionClear, []string{"esc"}, "reset")
	reg(scopeKeypad, actionCycleTheme, []string{"t"}, "theme")
	hidden(scopeKeypad, actionTheme1, []string{"f1"}, "theme 1")
	hidden(scopeKeypad, actionTheme2, []string{"f2"}, "theme 2")
	hidden(scopeKeypad, actionTheme3, []string{"f3"}, "theme 3")
	reg(scopeKeypad, actionToggleHistory, []string{"h"}, "history")
	reg(scopeKeypad, actionCommandMode, []string{":"}, "command")
	reg(scopeKeypad, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopeCommand, actionRun, []string{"enter"}, "run")
	reg(scopeCommand, actionClose, []string{"esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil || len(b.Keys) == 0 {
		return
	}
	normKeys := normalizeKeyList(b.Keys)
	if len(normKeys) == 0 {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = append([]string(nil), normKeys...)
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if b.Hidden || len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	return r.indexByScope[scope][keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// Single runes keep their case so "H" and "h" can differ.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// tokenActions are the keypad actions that stand in for a calculator key.
var tokenActions = map[Action]calc.Kind{
	actionEvaluate: calc.KindEvaluate,
	actionDelete:   calc.KindDelete,
	actionClear:    calc.KindClear,
}

// ApplyKeybindingConfig replaces the keys of existing bindings. Each entry
// must name a known scope and action exactly once, keys must not collide
// within a scope, and a key the keypad already understands (digits, ".",
// operators, "=") may only go to the action it would trigger anyway.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.KeyBinding) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	for _, o := range items {
		target, keys, err := r.resolveOverride(o)
		if err != nil {
			return err
		}
		id := target.Scopes[0] + "/" + string(target.Action)
		if seen[id] {
			return fmt.Errorf("keybinding %s: duplicated entry", id)
		}
		seen[id] = true
		for _, k := range keys {
			if err := checkCalcKey(target, k); err != nil {
				return err
			}
		}
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		owner := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := owner[k]; ok {
					return fmt.Errorf("keybinding conflict in %s: %q is bound to both %s and %s", scope, k, prev, b.Action)
				}
				owner[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) resolveOverride(o config.KeyBinding) (*Binding, []string, error) {
	scope := strings.TrimSpace(o.Scope)
	action := Action(strings.TrimSpace(o.Action))
	switch {
	case scope == "":
		return nil, nil, fmt.Errorf("keybinding: scope is required")
	case action == "":
		return nil, nil, fmt.Errorf("keybinding %s: action is required", scope)
	}
	keys := normalizeKeyList(o.Keys)
	if len(keys) == 0 {
		return nil, nil, fmt.Errorf("keybinding %s/%s: keys are required", scope, action)
	}
	bindings, ok := r.bindingsByScope[scope]
	if !ok {
		return nil, nil, fmt.Errorf("keybinding %s/%s: unknown scope", scope, action)
	}
	for _, b := range bindings {
		if b.Action == action {
			return b, keys, nil
		}
	}
	return nil, nil, fmt.Errorf("keybinding %s/%s: unknown action in scope", scope, action)
}

// checkCalcKey rejects binding a calculator key to an unrelated action in the
// scopes the keypad resolves through. Such a binding would shadow the key.
func checkCalcKey(b *Binding, k string) error {
	scope := b.Scopes[0]
	if scope != scopeKeypad && scope != scopeGlobal {
		return nil
	}
	tok, ok := calc.ParseToken(k)
	if !ok {
		return nil
	}
	if kind, isToken := tokenActions[b.Action]; isToken && kind == tok.Kind {
		return nil
	}
	return fmt.Errorf("keybinding %s/%s: %q is a calculator key (%s)", scope, b.Action, k, tok)
}

// ExportKeybindingConfig returns the current bindings in file order.
func (r *KeyRegistry) ExportKeybindingConfig() []config.KeyBinding {
	if r == nil {
		return nil
	}
	var out []config.KeyBinding
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, config.KeyBinding{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
