package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssfrag/config"
	"cssfrag/misc"
	"cssfrag/process"
	"cssfrag/state"
)

// setup runs after command line is parsed and before any subcommand.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	var err error
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if err := startReport(env, configFile); err != nil {
			return ctx, err
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// startReport opens debug report and puts both requested and effective
// configuration into it.
func startReport(env *state.LocalEnv, configFile string) (err error) {
	if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
		return fmt.Errorf("unable to prepare debug reporter: %w", err)
	}
	if len(configFile) > 0 {
		if err := env.Rpt.StoreCopy("config/"+filepath.Base(configFile), configFile); err != nil {
			return fmt.Errorf("unable to store configuration in debug report: %w", err)
		}
	}
	if data, err := config.Dump(env.Cfg); err == nil {
		env.Rpt.StoreData("config/effective.yaml", data)
	}
	return nil
}

// teardown runs after subcommand, including failed ones.
func teardown(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	// log is synced, from here on errors go to stderr
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

func removeEmptyPanicLog(destination string) error {
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	fname := filepath.Join(filepath.Dir(destination), misc.GetAppName()+"-panic.log")
	if fi, err := os.Stat(fname); err != nil || fi.Size() > 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// onExitError is called before teardown so error still makes it into the
// log and the report.
func onExitError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasLogged = true
	}
}

// errWasLogged is set when error already made it into the program log.
var errWasLogged bool

// onUsageError leaves reporting to onExitError or main.
func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func onCommandNotFound(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "tokenizer and fragment parser for CSS and LESS stylesheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          setup,
		After:           teardown,
		OnUsageError:    onUsageError,
		ExitErrHandler:  onExitError,
		CommandNotFound: onCommandNotFound,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: process.Commands(onUsageError),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	err := newApp().Run(ctx, os.Args)
	stop()

	if err == nil {
		return
	}
	// log may be absent (argument parsing) or already closed
	if !errWasLogged {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
	}
	os.Exit(1)
}
