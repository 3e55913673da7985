package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/google/shlex"

	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&ShellCmd{})
}

// Prompt is the shell prompt.
const Prompt = "todo> "

// LineReader reads one input line at a time. It returns io.EOF when input
// ends and readline.ErrInterrupt on Ctrl-C.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// LineReaderFactory opens the shell input.
type LineReaderFactory func(cfg *config.Config, names []string, out, errOut io.Writer) (LineReader, error)

// ShellCmd runs an interactive session: the store is loaded once and every
// line is dispatched like a command line until exit, quit or EOF. Lines are
// split with shell quoting, so "Buy  milk" stays one argument as typed.
type ShellCmd struct {
	newReader LineReaderFactory
}

// SetReaderFactory replaces the terminal input (for testing).
func (c *ShellCmd) SetReaderFactory(f LineReaderFactory) {
	c.newReader = f
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Start an interactive session" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if env.Interactive {
		fmt.Fprintln(errOut, "error: already in shell")
		return exitcode.UserError
	}
	if env.Exec == nil {
		fmt.Fprintln(errOut, "error: shell is not available")
		return exitcode.UserError
	}

	newReader := c.newReader
	if newReader == nil {
		newReader = NewReadline
	}
	rl, err := newReader(env.Config, DefaultRegistry.Names(), out, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	defer rl.Close()

	env.Interactive = true
	defer func() { env.Interactive = false }()

	if !env.Quiet() {
		fmt.Fprintln(out, "type help for commands, exit to quit")
	}

	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}

		fields, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid input: %v\n", err)
			continue
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}
		env.Exec(ctx, fields, out, errOut)
	}
	return exitcode.Success
}

// NewReadline opens a terminal line editor with history in the config
// directory and completion of command names.
func NewReadline(cfg *config.Config, names []string, out, errOut io.Writer) (LineReader, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(names)+2)
	for _, name := range append(names, "exit", "quit") {
		items = append(items, readline.PcItem(name))
	}

	history := ""
	if err := cfg.EnsureDir(); err == nil {
		history = cfg.HistoryPath()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     history,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
		Stderr:          errOut,
	})
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return rl, nil
}
