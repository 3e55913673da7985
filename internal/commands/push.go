package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd copies pending tasks to a remote list, skipping tasks whose text
// already matches an open remote task.
type PushCmd struct {
	listName string
	dryRun   bool
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetDryRun sets dry-run mode (for testing).
func (c *PushCmd) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy pending tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>] [--dry-run]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
	fs.BoolVar(&c.dryRun, "n", false, "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if env.Remote == nil {
		fmt.Fprintln(errOut, "error: no remote service configured")
		return exitcode.UserError
	}

	svc, err := env.Remote(ctx, env.Config)
	if err != nil {
		return report(errOut, err)
	}

	var list service.TaskList
	if c.listName != "" {
		list, err = svc.ResolveList(ctx, c.listName)
	} else {
		list, err = svc.DefaultList(ctx)
	}
	if err != nil {
		return report(errOut, err)
	}

	remote, err := svc.ListOpenTasks(ctx, list.ID)
	if err != nil {
		return report(errOut, err)
	}
	have := make(map[string]bool, len(remote))
	for _, r := range remote {
		have[strings.TrimSpace(r.Title)] = true
	}

	// Oldest first: the remote list shows the latest insert on top, like
	// the local list.
	pending := env.Store.Filter(task.StatusPending)
	pushed := 0
	for i := len(pending) - 1; i >= 0; i-- {
		t := pending[i]
		if have[t.Text] {
			env.Log().Debug("skipping task already on remote", zap.String("id", t.ID))
			continue
		}
		if c.dryRun {
			if !env.Quiet() {
				fmt.Fprintf(out, "would push: %s\n", t.Text)
			}
		} else if err := svc.CreateTask(ctx, list.ID, t.Text); err != nil {
			if pushed > 0 && !env.Quiet() {
				fmt.Fprintf(out, "pushed %d task(s)\n", pushed)
			}
			return report(errOut, err)
		}
		have[t.Text] = true
		pushed++
	}

	env.Log().Debug("push finished",
		zap.String("list", list.Title), zap.Int("pushed", pushed), zap.Bool("dryRun", c.dryRun))
	if !env.Quiet() {
		if c.dryRun {
			fmt.Fprintf(out, "would push %d task(s)\n", pushed)
		} else {
			fmt.Fprintf(out, "pushed %d task(s)\n", pushed)
		}
	}
	return exitcode.Success
}
