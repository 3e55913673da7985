package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Replace the text of a task" }
func (c *EditCmd) Usage() string     { return "todo edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return report(errOut, ErrTaskRefRequired)
	}
	if len(args) == 1 {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	ref, err := ParseTaskRef(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	target, err := ref.Resolve(env.Store)
	if err != nil {
		return report(errOut, err)
	}

	t, err := env.Store.Update(ctx, target.ID, strings.Join(args[1:], " "))
	return finish(env, out, errOut, "updated: "+t.Text, err)
}
