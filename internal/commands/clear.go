package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string     { return "todo clear" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	n, err := env.Store.ClearCompleted(ctx)
	msg := "nothing to clear"
	if n > 0 {
		msg = fmt.Sprintf("cleared %d completed task(s)", n)
	}
	return finish(env, out, errOut, msg, err)
}
