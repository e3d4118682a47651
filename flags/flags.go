package flags

import (
	"time"

	opservice "github.com/ethereum-optimism/optimism/op-service"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	"github.com/urfave/cli/v2"

	"github.com/jinmel/zks-multisig/zksync"
)

const EnvVarPrefix = "ZKS_MULTISIG"

// PrivateKeyEnvVar is read unprefixed so existing operator environments keep working.
const PrivateKeyEnvVar = "ZKS_PRIVATE_KEY"

func prefixEnvVars(name string) []string {
	return opservice.PrefixEnvVar(EnvVarPrefix, name)
}

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a TOML file providing defaults for the flags below",
		EnvVars: prefixEnvVars("CONFIG"),
	}
	L2EthRpcFlag = &cli.StringFlag{
		Name:    "l2-eth-rpc",
		Usage:   "HTTP provider URL of the rollup node",
		Value:   "https://zksync2-testnet.zksync.dev",
		EnvVars: prefixEnvVars("L2_ETH_RPC"),
	}
	AccountFlag = &cli.StringFlag{
		Name:    "account",
		Usage:   "Address of the two-owner multisig account",
		Value:   "0x450558EbA6Ed9B3a6D6847462cb991489ABf713A",
		EnvVars: prefixEnvVars("ACCOUNT"),
	}
	PrivateKeyFlag = &cli.StringFlag{
		Name:    "private-key",
		Usage:   "Operator wallet private key. Its address is the default transfer recipient",
		EnvVars: []string{PrivateKeyEnvVar},
	}
	OwnerKeysFlag = &cli.StringSliceFlag{
		Name:  "owner-key",
		Usage: "Owner private keys, in the order the account stores its owners",
		Value: cli.NewStringSlice(
			"0x6f842fb8656fb2311a9e9e6a62126f25fe0fd56ede5d338200a7ed5f54d48696",
			"0x236949b919816c077a90125f96220791756fa963b7d4c316282dd0500158eb27",
		),
		EnvVars: prefixEnvVars("OWNER_KEYS"),
	}
	OwnerMnemonicFlag = &cli.StringFlag{
		Name:    "owner-mnemonic",
		Usage:   "Mnemonic to derive owner keys from. Takes precedence over --owner-key",
		EnvVars: prefixEnvVars("OWNER_MNEMONIC"),
	}
	OwnerHDPathsFlag = &cli.StringSliceFlag{
		Name:    "owner-hd-path",
		Usage:   "Derivation paths used with --owner-mnemonic, one per owner",
		Value:   cli.NewStringSlice("m/44'/60'/0'/0/0", "m/44'/60'/0'/0/1"),
		EnvVars: prefixEnvVars("OWNER_HD_PATHS"),
	}
	GasLimitFlag = &cli.Uint64Flag{
		Name:    "gas-limit",
		Usage:   "Gas limit of multisig transactions",
		Value:   20_000_000,
		EnvVars: prefixEnvVars("GAS_LIMIT"),
	}
	GasPerPubdataFlag = &cli.Uint64Flag{
		Name:    "gas-per-pubdata",
		Usage:   "Gas per pubdata byte limit of multisig transactions",
		Value:   zksync.DefaultGasPerPubdataLimit,
		EnvVars: prefixEnvVars("GAS_PER_PUBDATA"),
	}
	DryRunFlag = &cli.BoolFlag{
		Name:    "dry-run",
		Usage:   "Sign and serialize transactions without sending them",
		EnvVars: prefixEnvVars("DRY_RUN"),
	}
	ReceiptPollIntervalFlag = &cli.DurationFlag{
		Name:    "receipt-poll-interval",
		Usage:   "Delay between receipt lookups while waiting for inclusion",
		Value:   2 * time.Second,
		EnvVars: prefixEnvVars("RECEIPT_POLL_INTERVAL"),
	}
	ReceiptMaxAttemptsFlag = &cli.IntFlag{
		Name:    "receipt-max-attempts",
		Usage:   "Number of receipt lookups before giving up",
		Value:   150,
		EnvVars: prefixEnvVars("RECEIPT_MAX_ATTEMPTS"),
	}
)

// Command flags.
var (
	TokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Token the spending limit applies to",
		Value: zksync.ETHAddress.Hex(),
	}
	LimitAmountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "Spending limit, in ether units",
		Value: "0.005",
	}
	TransferAmountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "Amount to transfer, in ether units",
		Value: "0.0049",
	}
	RecipientFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Transfer recipient. Defaults to the operator wallet",
	}
)

func init() {
	Flags = []cli.Flag{
		ConfigFileFlag,
		L2EthRpcFlag,
		AccountFlag,
		PrivateKeyFlag,
		OwnerKeysFlag,
		OwnerMnemonicFlag,
		OwnerHDPathsFlag,
		GasLimitFlag,
		GasPerPubdataFlag,
		DryRunFlag,
		ReceiptPollIntervalFlag,
		ReceiptMaxAttemptsFlag,
	}

	Flags = append(Flags, oplog.CLIFlags(EnvVarPrefix)...)
}

var Flags []cli.Flag
