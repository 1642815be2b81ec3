package config

import "os"

// Config is the fully parsed, validated set of values this project reads
// from a host Git configuration store.
type Config struct {
	AutoSelectNext bool

	DiffIgnoreWhitespace DiffIgnoreWhitespace
	DiffShowWhitespace   DiffShowWhitespace
	DiffTabWidth         int
	DiffTabSymbol        string
	DiffSpaceSymbol      string
	DiffContext          int
	DiffRenames          DiffRenames

	CommentChar string

	// Editor is the resolved "run an external editor" command: core.editor,
	// falling back to $VISUAL then $EDITOR.
	Editor string

	KeyBindings map[string]string
	Theme       map[string]ThemeColor
}

// bindingNames is the closed set of actions/navigation/modifiers a key
// binding key may name.
var bindingNames = map[string]string{
	"move_up": "up", "move_down": "down",
	"move_up_step": "pageup", "move_down_step": "pagedown",
	"move_home": "home", "move_end": "end",
	"toggle_visual_mode": "v",
	"action_pick": "p", "action_reword": "r", "action_edit": "e",
	"action_squash": "s", "action_fixup": "f", "action_drop": "d",
	"action_break": "b", "action_edit_line": "E",
	"swap_selected_up": "K", "swap_selected_down": "J",
	"undo": "u", "redo": "ctrl+r",
	"open_in_external_editor": "!",
	"show_commit": "enter",
	"search_start": "/", "search_next": "n", "search_previous": "N",
	"abort": "q", "force_abort": "Q",
	"rebase": "w", "force_rebase": "W",
	"help": "?", "insert_line": "I",
}

var themeNames = []string{
	"color_foreground", "color_background", "color_selected_background",
	"color_diff_add_foreground", "color_diff_remove_foreground",
	"color_diff_context_foreground", "color_diff_whitespace_foreground",
	"color_indicator_add", "color_indicator_drop", "color_indicator_edit",
	"color_indicator_fixup", "color_indicator_pick", "color_indicator_reword",
	"color_indicator_squash", "color_indicator_selected",
}

func defaultConfig() Config {
	bindings := make(map[string]string, len(bindingNames))
	for k, v := range bindingNames {
		bindings[k] = v
	}
	return Config{
		AutoSelectNext:       false,
		DiffIgnoreWhitespace: IgnoreWhitespaceNone,
		DiffShowWhitespace:   ShowWhitespaceNone,
		DiffTabWidth:         4,
		DiffTabSymbol:        "→",
		DiffSpaceSymbol:      "·",
		DiffContext:          3,
		DiffRenames:          RenamesOff,
		CommentChar:          "#",
		KeyBindings:          bindings,
		Theme:                make(map[string]ThemeColor),
	}
}

// Load resolves every configuration key from source, applying defaults for
// absent keys and returning the first InvalidConfig hit for a present but
// malformed value.
func Load(source ConfigSource, env func(string) string) (Config, error) {
	if env == nil {
		env = os.Getenv
	}
	cfg := defaultConfig()

	var err error
	if cfg.AutoSelectNext, err = parseBool("autoSelectNext", get(source, "autoSelectNext"), cfg.AutoSelectNext); err != nil {
		return Config{}, err
	}
	if cfg.DiffIgnoreWhitespace, err = parseDiffIgnoreWhitespace("diffIgnoreWhitespace", get(source, "diffIgnoreWhitespace")); err != nil {
		return Config{}, err
	}
	if cfg.DiffShowWhitespace, err = parseDiffShowWhitespace("diffShowWhitespace", get(source, "diffShowWhitespace")); err != nil {
		return Config{}, err
	}
	if cfg.DiffTabWidth, err = parseIntInRange("diffTabWidth", get(source, "diffTabWidth"), cfg.DiffTabWidth, 1, 32); err != nil {
		return Config{}, err
	}
	if cfg.DiffTabSymbol, err = parseSingleChar("diffTabSymbol", get(source, "diffTabSymbol"), cfg.DiffTabSymbol); err != nil {
		return Config{}, err
	}
	if cfg.DiffSpaceSymbol, err = parseSingleChar("diffSpaceSymbol", get(source, "diffSpaceSymbol"), cfg.DiffSpaceSymbol); err != nil {
		return Config{}, err
	}
	if cfg.CommentChar, err = parseSingleChar("commentChar", get(source, "commentChar"), cfg.CommentChar); err != nil {
		return Config{}, err
	}
	if cfg.DiffContext, err = parseIntInRange("diff.context", get(source, "diff.context"), cfg.DiffContext, 0, 100); err != nil {
		return Config{}, err
	}
	if cfg.DiffRenames, err = parseDiffRenames("diff.renames", get(source, "diff.renames")); err != nil {
		return Config{}, err
	}

	for name := range bindingNames {
		if raw := get(source, name); raw != "" {
			cfg.KeyBindings[name] = raw
		}
	}
	for _, name := range themeNames {
		if raw := get(source, name); raw != "" {
			color, err := parseThemeColor(name, raw)
			if err != nil {
				return Config{}, err
			}
			cfg.Theme[name] = color
		}
	}

	cfg.Editor = resolveEditor(source, env)

	return cfg, nil
}

func get(source ConfigSource, key string) string {
	if source == nil {
		return ""
	}
	v, _ := source.Value(key)
	return v
}

// resolveEditor applies core.editor, then $VISUAL, then $EDITOR, then a
// plain "vi" as a last resort — the order spec.md's external-interfaces
// section documents.
func resolveEditor(source ConfigSource, env func(string) string) string {
	if v := get(source, "core.editor"); v != "" {
		return v
	}
	if v := env("VISUAL"); v != "" {
		return v
	}
	if v := env("EDITOR"); v != "" {
		return v
	}
	return "vi"
}
