package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	mmqa "github.com/mmqa-toolkit/mmqa/pkg"
	"github.com/spf13/cobra"
)

const progName = "mmqa"

// Exit codes
const (
	exitSuccess    = 0
	exitCLIError   = 2
	exitUnexpected = 3
)

const apologyMessage = "An unexpected error occurred. Please report this issue."

func main() {
	ctx, stop := setupSignalContext(context.Background(), os.Stderr)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// usageError marks a command line the parser rejected
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// globalOptions holds flags shared by every subcommand
type globalOptions struct {
	verbose    bool
	configPath string
	overrides  []string
}

// app carries the per-invocation state of the command line
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	cfg     *mmqa.Config
	global  globalOptions
	started bool // set once a subcommand begins its own work
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: mmqa.NewLogger(stderr, slog.LevelWarn),
		cfg:    mmqa.DefaultConfig(),
	}
}

// run executes the command line and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	a := newApp(stdout, stderr)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Unexpected error", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintf(stderr, "\n%s\n", apologyMessage)
			code = exitUnexpected
		}
	}()

	rootCmd := a.rootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	return a.exitCode(err)
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           progName,
		Short:         "Detect duplicate files in datasets",
		Long:          `mmqa scans a dataset directory, hashes every regular file and reports groups of byte-identical files.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return &usageError{err: fmt.Errorf("a command is required (try '%s scan --help')", progName)}
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.global.verbose, "verbose", "v", false, "enable verbose logging (DEBUG level)")
	flags.StringVar(&a.global.configPath, "config", "", "INI configuration file (default: $XDG_CONFIG_HOME/"+mmqa.UserConfigFile+" when present)")
	flags.StringArrayVar(&a.global.overrides, "set", nil, "override a configuration value (key:value, repeatable)")

	rootCmd.AddCommand(a.scanCommand())
	return rootCmd
}

// configure loads configuration and builds the logger.
// Precedence: --set over the config file over defaults; --verbose wins for the level.
func (a *app) configure() error {
	configPath := a.global.configPath
	if configPath == "" {
		configPath, _ = mmqa.FindConfigFile()
	}
	cfg, err := mmqa.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(a.global.overrides); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := mmqa.ParseLogLevel(cfg.GetVerboseConfig().Level)
	if err != nil {
		return &mmqa.ConfigurationError{Field: "verbose.level", Value: cfg.GetVerboseConfig().Level, Err: err}
	}
	if a.global.verbose {
		level = slog.LevelDebug
	}
	a.logger = mmqa.NewLogger(a.stderr, level)

	if path := cfg.ConfigPath(); path != "" {
		a.logger.Debug("Loaded configuration", "path", path)
	}
	return nil
}

// exitCode reports err to the user and maps it onto an exit code
func (a *app) exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}

	if errors.Is(err, context.Canceled) {
		a.logger.Warn("Interrupted by user")
		return exitUnexpected
	}

	var (
		usageErr  *usageError
		configErr *mmqa.ConfigurationError
		dirErr    *mmqa.DirectoryAccessError
		outputErr *mmqa.OutputWriteError
	)
	switch {
	case errors.As(err, &usageErr), errors.As(err, &configErr), errors.As(err, &dirErr), errors.As(err, &outputErr):
		a.logger.Debug("Command failed", "code", mmqa.ErrorCodeOf(err), "error", err)
		fmt.Fprintf(a.stderr, "%s: %v\n", progName, err)
		return exitCLIError
	case !a.started:
		// cobra reports unknown commands and arguments as plain errors
		fmt.Fprintf(a.stderr, "%s: %v\n", progName, err)
		return exitCLIError
	default:
		a.logger.Error("Unexpected error", "code", mmqa.ErrorCodeOf(err), "error", err)
		fmt.Fprintf(a.stderr, "\n%s\n", apologyMessage)
		return exitUnexpected
	}
}
