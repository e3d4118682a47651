package deploy

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/jinmel/zks-multisig/flags"
	"github.com/jinmel/zks-multisig/zksync"
)

func parseAddress(name, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", name, s)
	}
	return common.HexToAddress(s), nil
}

// SetLimit sets the spending limit of --token to --amount and prints the limit
// the account reports afterwards.
func SetLimit(ctx context.Context, cliCtx *cli.Context, s *Service) error {
	token, err := parseAddress("token", cliCtx.String(flags.TokenFlag.Name))
	if err != nil {
		return err
	}
	amount, err := zksync.ParseEther(cliCtx.String(flags.LimitAmountFlag.Name))
	if err != nil {
		return err
	}

	res, limit, err := s.Backend.SetSpendingLimit(ctx, token, amount)
	if res != nil {
		WriteResult(cliCtx.App.Writer, res)
	}
	if err != nil {
		return err
	}
	if limit != nil {
		WriteLimit(cliCtx.App.Writer, token, *limit)
	}
	return nil
}

func RemoveLimit(ctx context.Context, cliCtx *cli.Context, s *Service) error {
	token, err := parseAddress("token", cliCtx.String(flags.TokenFlag.Name))
	if err != nil {
		return err
	}
	res, err := s.Backend.RemoveSpendingLimit(ctx, token)
	if res != nil {
		WriteResult(cliCtx.App.Writer, res)
	}
	return err
}

// Transfer sends --amount of ETH from the account to --to, or to the operator
// wallet when no recipient is given.
func Transfer(ctx context.Context, cliCtx *cli.Context, s *Service) error {
	to := s.Wallet
	if r := cliCtx.String(flags.RecipientFlag.Name); r != "" {
		addr, err := parseAddress("recipient", r)
		if err != nil {
			return err
		}
		to = addr
	}
	amount, err := zksync.ParseEther(cliCtx.String(flags.TransferAmountFlag.Name))
	if err != nil {
		return err
	}

	res, err := s.Backend.TransferETH(ctx, to, amount)
	if err != nil {
		return err
	}
	WriteResult(cliCtx.App.Writer, res)
	return nil
}

func ShowLimit(ctx context.Context, cliCtx *cli.Context, s *Service) error {
	token, err := parseAddress("token", cliCtx.String(flags.TokenFlag.Name))
	if err != nil {
		return err
	}
	limit, err := s.Backend.GetLimit(ctx, token)
	if err != nil {
		return err
	}
	WriteLimit(cliCtx.App.Writer, token, limit)
	return nil
}

func ShowOwners(ctx context.Context, cliCtx *cli.Context, s *Service) error {
	statuses, err := s.Backend.CheckOwners(ctx)
	if err != nil {
		return err
	}
	WriteOwners(cliCtx.App.Writer, statuses)
	return nil
}
