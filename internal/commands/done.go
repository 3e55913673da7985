package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Each referenced task flips between
// completed and pending.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle tasks between completed and pending" }
func (c *DoneCmd) Usage() string     { return "todo done <ref>..." }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	targets, err := resolveAll(env.Store, refs)
	if err != nil {
		return report(errOut, err)
	}

	code := exitcode.Success
	for _, target := range targets {
		t, err := env.Store.Toggle(ctx, target.ID)
		verb := "reopened: "
		if t.Completed {
			verb = "completed: "
		}
		if rc := finish(env, out, errOut, verb+t.Text, err); rc != exitcode.Success {
			code = rc
		}
	}
	return code
}
