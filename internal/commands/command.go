// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"go.uber.org/zap"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/theme"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	// Commands like help, version, login, logout return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// Env is what the dispatcher hands to a command.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Store and Prefs are nil unless NeedsStore returns true. Prefs is the
	// storage the store persists to; it also holds the theme.
	Store *task.Store
	Prefs storage.Storage

	// Theme is the loaded display theme.
	Theme theme.Theme

	Logger *zap.Logger

	// Remote creates the push target. Nil disables push.
	Remote service.Factory

	// Auth runs login and token checks. Nil disables login.
	Auth service.Authenticator

	// Exec runs one command line against this Env. Set by the dispatcher
	// for the shell.
	Exec func(ctx context.Context, args []string, out, errOut io.Writer) int

	// Interactive is true inside the shell.
	Interactive bool
}

// Quiet reports whether informational output is suppressed.
func (e *Env) Quiet() bool {
	return e.Config != nil && e.Config.Quiet
}

// Log returns the logger, or a no-op logger when none was set.
func (e *Env) Log() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
