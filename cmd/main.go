package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	"github.com/ethereum-optimism/optimism/op-service/opio"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jinmel/zks-multisig/deploy"
	"github.com/jinmel/zks-multisig/flags"
)

var (
	Version   = "v0.0.1"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	oplog.SetupDefaults()

	app := cli.NewApp()
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Version = opservice.FormatVersion(Version, GitCommit, GitDate, "")
	app.Name = "zks-multisig"
	app.Usage = "operator tooling for a two-owner multisig account"
	app.Description = "Builds rollup EIP-712 transactions from a multisig account, signs them with every owner key and submits them"
	app.Commands = []*cli.Command{
		{
			Name:   "set-limit",
			Usage:  "Set the daily spending limit of a token and print the resulting limit",
			Flags:  []cli.Flag{flags.TokenFlag, flags.LimitAmountFlag},
			Action: deploy.Main(Version, deploy.SetLimit),
		},
		{
			Name:   "remove-limit",
			Usage:  "Remove the spending limit of a token",
			Flags:  []cli.Flag{flags.TokenFlag},
			Action: deploy.Main(Version, deploy.RemoveLimit),
		},
		{
			Name:   "transfer",
			Usage:  "Transfer ETH out of the multisig account",
			Flags:  []cli.Flag{flags.RecipientFlag, flags.TransferAmountFlag},
			Action: deploy.Main(Version, deploy.Transfer),
		},
		{
			Name:   "get-limit",
			Usage:  "Print the spending limit of a token",
			Flags:  []cli.Flag{flags.TokenFlag},
			Action: deploy.Main(Version, deploy.ShowLimit),
		},
		{
			Name:   "owners",
			Usage:  "Compare the configured owner keys with the owners stored in the account",
			Action: deploy.Main(Version, deploy.ShowOwners),
		},
	}

	ctx := opio.WithInterruptBlocker(context.Background())
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Crit("Application failed", "message", err)
	}
}
