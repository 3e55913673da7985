package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/theme"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd shows or changes the display theme.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the display theme" }
func (c *ThemeCmd) Usage() string     { return "todo theme [light|dark|toggle]" }
func (c *ThemeCmd) NeedsStore() bool  { return true }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(out, "theme: %s\n", env.Theme)
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	next := env.Theme.Toggle()
	if args[0] != "toggle" {
		var err error
		if next, err = theme.Parse(args[0]); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	env.Theme = next
	if err := theme.Save(ctx, env.Prefs, next); err != nil {
		if !env.Quiet() {
			fmt.Fprintf(out, "theme: %s\n", next)
		}
		fmt.Fprintf(errOut, "%s: %v\n", SaveWarning, err)
		return exitcode.StorageError
	}
	if !env.Quiet() {
		fmt.Fprintf(out, "theme: %s\n", next)
	}
	return exitcode.Success
}
