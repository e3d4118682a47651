package deploy

import (
	"context"
	"errors"

	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	"github.com/urfave/cli/v2"
)

// Operation is a single-shot action run against a ready service.
type Operation func(ctx context.Context, cliCtx *cli.Context, s *Service) error

// Main returns the cli action running op once: config is read and checked
// before anything touches the network.
func Main(version string, op Operation) cli.ActionFunc {
	return func(cliCtx *cli.Context) (err error) {
		cfg, err := NewConfig(cliCtx)
		if err != nil {
			return err
		}
		if err := cfg.Check(); err != nil {
			return err
		}

		l := oplog.NewLogger(cliCtx.App.ErrWriter, cfg.LogConfig)
		l.Info("Starting zks-multisig", "version", version, "command", cliCtx.Command.Name, "dryRun", cfg.DryRun)

		ctx := cliCtx.Context
		s, err := NewService(ctx, version, cfg, l)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.Stop(context.Background()))
		}()

		return op(ctx, cliCtx, s)
	}
}
