package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                   List all tasks
  todo list [--filter <status>] [--long] [status]
                                         List tasks; status is all, completed or pending
  todo add <text...>                     Add a task (alias: create)
  todo edit <ref> <text...>              Replace a task's text (alias: update)
  todo done <ref>...                     Toggle completed/pending (alias: toggle)
  todo rm <ref>...                       Delete tasks (alias: delete)
  todo clear                             Delete all completed tasks
  todo stats                             Count total, completed and pending tasks
  todo theme [light|dark|toggle]         Show or set the display theme
  todo shell                             Interactive session (exit or quit to leave)
  todo push [--list <name>] [--dry-run]  Copy pending tasks to Google Tasks
  todo login                             Authenticate with Google
  todo logout                            Remove stored credentials
  todo help
  todo version

A <ref> is a task number as shown by list, or a task id or id prefix
(at least 6 characters, see list --long).

Common flags:
  --config <dir>      Override config directory
  --storage <driver>  file, sqlite, mysql, redis or memory
  --quiet             Suppress informational output
  --debug             Print debug logs to stderr
`
