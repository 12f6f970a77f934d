// Package cli wires configuration, logging and a store backend into the tada
// subcommands.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada-cloud/internal/config"
	"github.com/idilsaglam/tada-cloud/internal/logging"
	"github.com/idilsaglam/tada-cloud/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// annotation telling the root pre-run to log to a file instead of stderr
const logToFile = "log-to-file"

// usageError marks bad arguments; Run maps it to ExitUsage.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errReported is returned once the failure has already been printed, so Run
// only sets the exit code.
var errReported = errors.New("already reported")

type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	a := &app{log: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(ui.Out)
	root.SetErr(ui.Err)

	err := root.Execute()
	_ = a.log.Sync()
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	switch {
	case errors.Is(err, errReported):
		return ExitError
	case errors.As(err, &ue):
		ui.Fail(ue.msg)
		fmt.Fprintln(ui.Err, ui.Dim("Hint: run `tada --help` for usage"))
		return ExitUsage
	}
	ui.Fail(err.Error())
	return ExitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - todos in your terminal, stored locally or remotely",
		Long: `tada keeps a list of todos with a status, free text content and categories.

Run without a subcommand to open the interactive screen.`,
		Args:              noArgs,
		Annotations:       map[string]string{logToFile: "true"},
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ~/.tada/config.yaml and ./.tada/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.tuiCmd(),
		a.lsCmd(),
		a.addCmd(),
		a.statusCmd(),
		a.rmCmd(),
		a.showCmd(),
		a.serveCmd(),
		a.authCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.verbose {
		cfg.Log.Level = "debug"
	}

	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	var path string
	if cmd.Annotations[logToFile] != "" {
		// the interactive screen owns stderr
		if path, err = cfg.LogPath(); err != nil {
			return err
		}
	}
	log, err := logging.New(cfg.Log, path)
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("cmd", cmd.Name()))
	a.log.Debug("config loaded", zap.String("backend", cfg.Store.Backend))
	return nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func maxArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}
