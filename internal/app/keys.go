package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/ui/help"
)

// Action is a function that executes a keybinding's behavior.
type Action func(m *Model) (Model, tea.Cmd)

// ActionBinding combines a display binding with its action for dispatch.
type ActionBinding struct {
	help.HelpBinding        // embedded for display (Binding, Category, Order)
	Action           Action // nil = display-only (no action)
}

// dispatchKey iterates through bindings and executes the first matching
// action. Returns nil, nil if no binding matches.
func dispatchKey(m *Model, msg tea.KeyMsg, bindings []ActionBinding) (*Model, tea.Cmd) {
	for _, ab := range bindings {
		if key.Matches(msg, ab.Binding) && ab.Action != nil {
			newModel, cmd := ab.Action(m)
			return &newModel, cmd
		}
	}
	return nil, nil
}

// ToHelpBindings extracts display-only bindings from action bindings.
func ToHelpBindings(abs []ActionBinding) []help.HelpBinding {
	result := make([]help.HelpBinding, len(abs))
	for i, ab := range abs {
		result[i] = ab.HelpBinding
	}
	return result
}

// statusBarBindings lists the bindings the driver's help status bar shows
// when a module requests help (view.Data.Help). Pinned entries are the
// ones every module shares regardless of state.
func statusBarBindings(k KeyMap) []help.HelpBinding {
	return []help.HelpBinding{
		{Binding: k.MoveUp, Category: CategoryNav, Order: 0, Pinned: true},
		{Binding: k.MoveDown, Category: CategoryNav, Order: 0, Pinned: true},
		{Binding: k.ShowCommit, Category: CategoryNav, Order: 1},
		{Binding: k.ShowDiff, Category: CategoryNav, Order: 1},
		{Binding: k.ToggleVisualMode, Category: CategoryVisual, Order: 2},
		{Binding: k.ActionPick, Category: CategoryActions, Order: 2},
		{Binding: k.ActionReword, Category: CategoryActions, Order: 2},
		{Binding: k.ActionEdit, Category: CategoryActions, Order: 2},
		{Binding: k.ActionSquash, Category: CategoryActions, Order: 2},
		{Binding: k.ActionFixup, Category: CategoryActions, Order: 2},
		{Binding: k.ActionDrop, Category: CategoryActions, Order: 2},
		{Binding: k.ActionBreak, Category: CategoryActions, Order: 3},
		{Binding: k.InsertLine, Category: CategoryActions, Order: 3},
		{Binding: k.SwapUp, Category: CategoryActions, Order: 3},
		{Binding: k.SwapDown, Category: CategoryActions, Order: 3},
		{Binding: k.Undo, Category: CategoryActions, Order: 3},
		{Binding: k.Redo, Category: CategoryActions, Order: 3},
		{Binding: k.OpenInEditor, Category: CategoryActions, Order: 3},
		{Binding: k.SearchStart, Category: CategorySearch, Order: 3},
		{Binding: k.SearchNext, Category: CategorySearch, Order: 4},
		{Binding: k.SearchPrevious, Category: CategorySearch, Order: 4},
		{Binding: k.Rebase, Category: CategoryActions, Order: 1, Pinned: true},
		{Binding: k.Abort, Category: CategoryActions, Order: 1, Pinned: true},
		{Binding: k.Help, Category: CategoryNav, Order: 0, Pinned: true},
	}
}

const (
	CategoryNav     help.Category = "Navigation"
	CategoryActions help.Category = "Actions"
	CategoryVisual  help.Category = "Visual"
	CategorySearch  help.Category = "Search"
)

// KeyMap holds every binding named in spec.md's external-interfaces key
// table, resolved from config.Config.KeyBindings (falling back to the
// package's own defaults for any binding the config omits).
type KeyMap struct {
	MoveUp       key.Binding
	MoveDown     key.Binding
	MoveUpStep   key.Binding
	MoveDownStep key.Binding
	MoveHome     key.Binding
	MoveEnd      key.Binding
	Left         key.Binding
	Right        key.Binding

	ToggleVisualMode key.Binding

	ActionPick   key.Binding
	ActionReword key.Binding
	ActionEdit   key.Binding
	ActionSquash key.Binding
	ActionFixup  key.Binding
	ActionDrop   key.Binding
	ActionBreak  key.Binding
	EditLine     key.Binding
	InsertLine   key.Binding
	Duplicate    key.Binding
	Delete       key.Binding

	SwapUp   key.Binding
	SwapDown key.Binding

	Undo key.Binding
	Redo key.Binding

	OpenInEditor key.Binding
	ShowCommit   key.Binding
	ShowDiff     key.Binding

	SearchStart    key.Binding
	SearchNext     key.Binding
	SearchPrevious key.Binding

	Abort      key.Binding
	ForceAbort key.Binding
	Rebase     key.Binding
	ForceRebase key.Binding

	Help key.Binding

	ConfirmYes key.Binding
	ConfirmNo  key.Binding

	Enter  key.Binding
	Escape key.Binding
}

// NewKeyMap builds a KeyMap from resolved configuration, a single key
// string per binding (the config layer already validated non-emptiness).
func NewKeyMap(cfg config.Config) KeyMap {
	defaults, _ := config.Load(nil, func(string) string { return "" })
	b := func(name, desc, label string) key.Binding {
		k := cfg.KeyBindings[name]
		if k == "" {
			k = defaults.KeyBindings[name]
		}
		return key.NewBinding(key.WithKeys(k), key.WithHelp(label, desc))
	}
	return KeyMap{
		MoveUp:       b("move_up", "up", "↑"),
		MoveDown:     b("move_down", "down", "↓"),
		MoveUpStep:   b("move_up_step", "page up", "pgup"),
		MoveDownStep: b("move_down_step", "page down", "pgdn"),
		MoveHome:     b("move_home", "top", "home"),
		MoveEnd:      b("move_end", "bottom", "end"),
		Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "scroll left")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "scroll right")),

		ToggleVisualMode: b("toggle_visual_mode", "toggle visual", "v"),

		ActionPick:   b("action_pick", "pick", "p"),
		ActionReword: b("action_reword", "reword", "r"),
		ActionEdit:   b("action_edit", "edit", "e"),
		ActionSquash: b("action_squash", "squash", "s"),
		ActionFixup:  b("action_fixup", "fixup", "f"),
		ActionDrop:   b("action_drop", "drop", "d"),
		ActionBreak:  b("action_break", "toggle break", "b"),
		EditLine:     b("action_edit_line", "edit content", "E"),
		InsertLine:   b("insert_line", "insert line", "I"),
		Duplicate:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Delete:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),

		SwapUp:   b("swap_selected_up", "swap up", "K"),
		SwapDown: b("swap_selected_down", "swap down", "J"),

		Undo: b("undo", "undo", "u"),
		Redo: b("redo", "redo", "ctrl+r"),

		OpenInEditor: b("open_in_external_editor", "open in $EDITOR", "!"),
		ShowCommit:   b("show_commit", "show commit", "enter"),
		ShowDiff:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle diff")),

		SearchStart:    b("search_start", "search", "/"),
		SearchNext:     b("search_next", "next match", "n"),
		SearchPrevious: b("search_previous", "prev match", "N"),

		Abort:       b("abort", "abort", "q"),
		ForceAbort:  b("force_abort", "force abort", "Q"),
		Rebase:      b("rebase", "rebase", "w"),
		ForceRebase: b("force_rebase", "force rebase", "W"),

		Help: b("help", "help", "?"),

		ConfirmYes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		ConfirmNo:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),

		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "confirm")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("⎋", "cancel")),
	}
}
