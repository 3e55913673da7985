package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/task"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "todo rm <ref>..." }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run removes each referenced task. An id that matches nothing is already
// absent, so it succeeds without a change; out-of-range numbers and
// ambiguous prefixes are errors.
func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var targets []task.Task
	absent := 0
	seen := make(map[string]bool)
	for _, ref := range refs {
		t, err := ref.Resolve(env.Store)
		var nf *task.NotFoundError
		if errors.As(err, &nf) && ref.Position == 0 && nf.Reason == "" {
			absent++
			continue
		}
		if err != nil {
			return report(errOut, err)
		}
		if !seen[t.ID] {
			seen[t.ID] = true
			targets = append(targets, t)
		}
	}

	code := exitcode.Success
	for _, t := range targets {
		err := env.Store.Remove(ctx, t.ID)
		if rc := finish(env, out, errOut, "removed: "+t.Text, err); rc != exitcode.Success {
			code = rc
		}
	}
	if absent > 0 && len(targets) == 0 && !env.Quiet() {
		fmt.Fprintln(out, "ok")
	}
	return code
}
