package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also what `todo` with no
// arguments runs.
type ListCmd struct {
	filter string
	long   bool
	loc    *time.Location
}

// SetFilter sets the status filter (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

// SetLong selects the long format (for testing).
func (c *ListCmd) SetLong(long bool) {
	c.long = long
}

// SetLocation sets the zone for created-at dates (for testing).
func (c *ListCmd) SetLocation(loc *time.Location) {
	c.loc = loc
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	names := make([]string, len(task.Statuses))
	for i, st := range task.Statuses {
		names[i] = string(st)
	}
	return "todo list [--filter " + strings.Join(names, "|") + "] [--long] [status]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(task.StatusAll), "")
	fs.StringVar(&c.filter, "f", string(task.StatusAll), "")
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

// Run prints the tasks matching the filter. Numbers are positions in the
// full list so they stay valid as references while filtering.
func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	filter := c.filter
	if len(args) == 1 {
		filter = args[0]
	}
	status := task.ParseStatus(filter)

	var opts []output.Option
	if c.loc != nil {
		opts = append(opts, output.WithLocation(c.loc))
	}
	p := output.NewPrinter(out, env.Theme, opts...)
	shown := 0
	for i, t := range env.Store.Tasks() {
		if !status.Matches(t) {
			continue
		}
		if c.long {
			p.FormatTaskLong(i+1, t)
		} else {
			p.FormatTask(i+1, t)
		}
		shown++
	}

	if shown == 0 && !env.Quiet() {
		p.FormatEmpty()
	}
	return exitcode.Success
}
