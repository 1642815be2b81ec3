// Package main is the entry point for rit, a terminal UI for editing and
// running a git interactive-rebase instruction sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/app"
	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/diff"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/todo"
)

const licenseText = `rit is distributed under the terms of the MIT license.
See the LICENSE file shipped with this distribution for the full text.`

// maxRealVersionLen is the upper bound for a "real" semver tag.
// Pseudo-versions are very long (40+ chars); real versions are short.
const maxRealVersionLen = 20

// resolveVersion returns the module version from build info, or "".
func resolveVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return ""
	}

	if len(info.Main.Version) > maxRealVersionLen {
		return "(devel)"
	}

	return info.Main.Version
}

func versionOrUnknown() string {
	if v := resolveVersion(); v != "" {
		return v
	}
	return "unknown"
}

// exitCodeFor maps the driver's terminal ExitCode to the process status
// spec.md's CLI surface documents.
func exitCodeFor(code app.ExitCode) int {
	switch code {
	case app.ExitGood:
		return 0
	case app.ExitAbort:
		return 1
	case app.ExitKill:
		return 2
	case app.ExitConfigError:
		return 3
	case app.ExitFileReadError:
		return 4
	case app.ExitFileWriteError:
		return 5
	case app.ExitStateError:
		return 6
	default:
		return 6
	}
}

// gitDir resolves the repository root: $GIT_DIR if set, otherwise the
// working directory (go-git's own DetectDotGit walk takes it from there).
func gitDir(env func(string) string) (string, error) {
	if d := env("GIT_DIR"); d != "" {
		return d, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

// loadConfig reads the repository's git config file and resolves a Config
// from it. A missing config file is not an error: every key just falls
// back to its default (and the editor env fallback still applies).
func loadConfig(repoPath string, env func(string) string) (config.Config, error) {
	f, err := os.Open(filepath.Join(repoPath, ".git", "config"))
	if err != nil {
		if os.IsNotExist(err) {
			return config.Load(nil, env)
		}
		return config.Config{}, fmt.Errorf("opening git config: %w", err)
	}
	defer f.Close()

	source, err := config.ParseGitConfig(f)
	if err != nil {
		return config.Config{}, fmt.Errorf("parsing git config: %w", err)
	}
	return config.Load(source, env)
}

func run(ctx context.Context, args []string, stdout, stderr *os.File) (app.ExitCode, error) {
	fs := flag.NewFlagSet("rit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "print the version and exit")
	fs.BoolVar(showVersion, "v", false, "print the version and exit (shorthand)")
	showLicense := fs.Bool("license", false, "print license information and exit")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(logLevel, "l", "", "log level (shorthand)")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return app.ExitGood, nil
		}
		return app.ExitConfigError, fmt.Errorf("parsing flags: %w", err)
	}

	if *showVersion {
		fmt.Fprintf(stdout, "rit %s\n", versionOrUnknown())
		return app.ExitGood, nil
	}
	if *showLicense {
		fmt.Fprintln(stdout, licenseText)
		return app.ExitGood, nil
	}

	rest := fs.Args()
	if len(rest) != 1 {
		fmt.Fprintln(stderr, "usage: rit [-v|--version] [-h|--help] [--license] <todo-file>")
		return app.ExitConfigError, fmt.Errorf("expected exactly one positional argument, got %d", len(rest))
	}
	todoPath := rest[0]

	log, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
		log, _ = logger.New("")
	}
	defer log.Close()

	dir, err := gitDir(os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return app.ExitConfigError, err
	}

	repo, err := diff.Open(dir)
	if err != nil {
		fmt.Fprintf(stderr, "error: not a git repository: %v\n", err)
		return app.ExitConfigError, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadConfig(dir, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return app.ExitConfigError, err
	}

	model := app.New(todoPath, repo, cfg, todo.Options{CommentPrefix: cfg.CommentChar}, log)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return app.ExitStateError, fmt.Errorf("running program: %w", err)
	}

	done, ok := final.(app.Model)
	if !ok {
		return app.ExitStateError, fmt.Errorf("unexpected final model type %T", final)
	}
	if code := done.ExitCode(); code != nil {
		if derr := done.Err(); derr != nil {
			fmt.Fprintf(stderr, "error: %v\n", derr)
		}
		return *code, nil
	}
	return app.ExitGood, nil
}

func main() {
	ctx := context.Background()
	code, err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err != nil && code == app.ExitGood {
		code = app.ExitStateError
	}
	os.Exit(exitCodeFor(code))
}
