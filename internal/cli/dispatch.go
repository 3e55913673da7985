package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/storage"
	"todo/internal/task"
	"todo/internal/theme"
)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	open     StorageOpener
	remote   service.Factory
	auth     service.Authenticator
}

// NewDispatcher creates a dispatcher. open provides durable storage for
// commands that need the task store; remote and auth may be nil, which
// disables push and login.
func NewDispatcher(registry *commands.Registry, open StorageOpener, remote service.Factory, auth service.Authenticator) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		open:     open,
		remote:   remote,
		auth:     auth,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	storage   string
	quiet     bool
	debug     bool
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(args[0], "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}

	positional, flags, code, ok := d.parse(cmd, args[1:], errOut)
	if !ok {
		return code
	}

	cfg, err := config.Load(flags.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config error: %v\n", err)
		return exitcode.ConfigError
	}
	if flags.storage != "" {
		cfg.Storage.Driver = flags.storage
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(errOut, "error: config error: %v\n", err)
			return exitcode.ConfigError
		}
	}
	cfg.Quiet = cfg.Quiet || flags.quiet
	cfg.Debug = cfg.Debug || flags.debug

	logger, level := logging.New(errOut, cfg.Debug)
	defer func() { _ = logger.Sync() }()

	env := &commands.Env{
		Config: cfg,
		Theme:  theme.Light,
		Logger: logger,
		Remote: d.remote,
		Auth:   d.auth,
	}

	if cmd.NeedsStore() {
		st, err := d.open(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: storage error: %v\n", err)
			return exitcode.StorageError
		}
		defer func() {
			if err := st.Close(); err != nil {
				logger.Warn("closing storage", zap.Error(err))
			}
		}()

		if code, ok := d.attachStore(ctx, env, st, level, errOut); !ok {
			return code
		}
	}

	return cmd.Run(ctx, env, positional, out, errOut)
}

// attachStore hydrates the task store and theme from st into env. level
// filters env.Logger and everything derived from it, the store included.
func (d *Dispatcher) attachStore(ctx context.Context, env *commands.Env, st storage.Storage, level zap.AtomicLevel, errOut io.Writer) (int, bool) {
	opts := []task.Option{task.WithLogger(env.Logger)}
	if key := env.Config.Storage.Key; key != "" {
		opts = append(opts, task.WithKey(key))
	}

	store, err := task.Open(ctx, st, opts...)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError, false
	}

	th, err := theme.Load(ctx, st)
	if err != nil {
		env.Logger.Warn("using default theme", zap.Error(err))
	}

	env.Store = store
	env.Prefs = st
	env.Theme = th
	env.Exec = func(ctx context.Context, args []string, out, errOut io.Writer) int {
		return d.exec(ctx, env, level, args, out, errOut)
	}
	env.Logger.Debug("session opened",
		zap.String("driver", env.Config.Storage.Driver), zap.Int("tasks", store.Len()))
	return exitcode.Success, true
}

// exec runs one shell line against an open session. The session's store,
// storage and config directory cannot change; --quiet and --debug apply to
// the line only.
func (d *Dispatcher) exec(ctx context.Context, session *commands.Env, level zap.AtomicLevel, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}

	positional, flags, code, ok := d.parse(cmd, args[1:], errOut)
	if !ok {
		return code
	}
	if flags.configDir != "" || flags.storage != "" {
		fmt.Fprintln(errOut, "error: --config and --storage cannot be changed inside the shell")
		return exitcode.UserError
	}

	cfg := *session.Config
	cfg.Quiet = cfg.Quiet || flags.quiet
	env := *session
	env.Config = &cfg
	if flags.debug && level.Level() > zapcore.DebugLevel {
		prev := level.Level()
		level.SetLevel(zapcore.DebugLevel)
		defer level.SetLevel(prev)
	}

	code = cmd.Run(ctx, &env, positional, out, errOut)
	session.Theme = env.Theme
	return code
}

// parse applies the common and command flags to args.
func (d *Dispatcher) parse(cmd commands.Command, args []string, errOut io.Writer) ([]string, commonFlags, int, bool) {
	var flags commonFlags

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	fs.StringVar(&flags.configDir, "config", "", "")
	fs.StringVar(&flags.storage, "storage", "", "")
	fs.BoolVar(&flags.quiet, "quiet", false, "")
	fs.BoolVar(&flags.debug, "debug", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()
		switch {
		case strings.HasPrefix(errStr, "flag needs an argument:"):
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
		case strings.HasPrefix(errStr, "flag provided but not defined:"):
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
		default:
			fmt.Fprintf(errOut, "error: %s\n", errStr)
		}
		return nil, flags, exitcode.UserError, false
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") && positional[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return nil, flags, exitcode.UserError, false
	}
	return positional, flags, exitcode.Success, true
}
