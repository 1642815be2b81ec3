package config

import (
	"io"
	"strings"

	gitconfig "github.com/go-git/go-git/v5/plumbing/format/config"
)

// ConfigSource resolves a dotted key (e.g. "diff.context", "autoSelectNext")
// to its raw string value. Locating/opening the actual host configuration
// store is out of scope; callers provide one.
type ConfigSource interface {
	Value(key string) (string, bool)
}

// MapSource is a ConfigSource backed by an in-memory map, used by tests and
// by callers that have already gathered values from elsewhere.
type MapSource map[string]string

func (m MapSource) Value(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// defaultSection is where single-word keys (autoSelectNext, commentChar,
// diffTabWidth, ...) live; dotted keys (diff.context, core.editor) resolve
// to their own section instead.
const defaultSection = "interactive-rebase-tool"

// GitConfigSource adapts go-git's git-config-format parser (the same
// format family as .gitignore, already in the dependency graph) to
// ConfigSource.
type GitConfigSource struct {
	cfg *gitconfig.Config
}

// ParseGitConfig reads a git-config-format document (e.g. the contents of
// .git/config).
func ParseGitConfig(r io.Reader) (*GitConfigSource, error) {
	cfg := gitconfig.New()
	if err := gitconfig.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	return &GitConfigSource{cfg: cfg}, nil
}

func (g *GitConfigSource) Value(key string) (string, bool) {
	section, option := splitKey(key)
	s := g.cfg.Section(section)
	if !s.HasOption(option) {
		return "", false
	}
	return s.Option(option), true
}

// splitKey maps a dotted config key to (section, option); single-word keys
// live under defaultSection.
func splitKey(key string) (section, option string) {
	if i := strings.LastIndex(key, "."); i >= 0 {
		return key[:i], key[i+1:]
	}
	return defaultSection, key
}
