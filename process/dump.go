package process

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssfrag/config"
	"cssfrag/state"
)

// DumpConfig writes either embedded defaults or effective configuration.
func DumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "actual"
		err  error
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().First()
	if len(fname) == 0 {
		env.Log.Debug("Writing configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = stdout(cmd).Write(data)
		return err
	}

	env.Log.Info("Writing configuration", zap.String("state", kind), zap.String("file", fname))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
