package deploy

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/BurntSushi/toml"
	oplog "github.com/ethereum-optimism/optimism/op-service/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/jinmel/zks-multisig/flags"
	"github.com/jinmel/zks-multisig/sources"
)

var ErrMissingPrivateKey = errors.New("Please set " + flags.PrivateKeyEnvVar + " in the environment variables.")

type CLIConfig struct {
	L2EthRpc   string
	Account    string
	PrivateKey string

	OwnerKeys     []string
	OwnerMnemonic string
	OwnerHDPaths  []string

	GasLimit      uint64
	GasPerPubdata uint64
	DryRun        bool

	ReceiptPollInterval time.Duration
	ReceiptMaxAttempts  int

	LogConfig oplog.CLIConfig
}

// FileConfig is the TOML form of the network and owner settings. Values only
// apply to flags that were not set on the command line or in the environment.
type FileConfig struct {
	L2EthRpc      string   `toml:"l2-eth-rpc"`
	Account       string   `toml:"account"`
	OwnerKeys     []string `toml:"owner-keys"`
	OwnerMnemonic string   `toml:"owner-mnemonic"`
	OwnerHDPaths  []string `toml:"owner-hd-paths"`
	GasLimit      uint64   `toml:"gas-limit"`
	GasPerPubdata uint64   `toml:"gas-per-pubdata"`
}

func LoadFileConfig(path string) (*FileConfig, error) {
	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return &fc, nil
}

func NewConfig(ctx *cli.Context) (*CLIConfig, error) {
	cfg := &CLIConfig{
		L2EthRpc:   ctx.String(flags.L2EthRpcFlag.Name),
		Account:    ctx.String(flags.AccountFlag.Name),
		PrivateKey: ctx.String(flags.PrivateKeyFlag.Name),

		OwnerKeys:     ctx.StringSlice(flags.OwnerKeysFlag.Name),
		OwnerMnemonic: ctx.String(flags.OwnerMnemonicFlag.Name),
		OwnerHDPaths:  ctx.StringSlice(flags.OwnerHDPathsFlag.Name),

		GasLimit:      ctx.Uint64(flags.GasLimitFlag.Name),
		GasPerPubdata: ctx.Uint64(flags.GasPerPubdataFlag.Name),
		DryRun:        ctx.Bool(flags.DryRunFlag.Name),

		ReceiptPollInterval: ctx.Duration(flags.ReceiptPollIntervalFlag.Name),
		ReceiptMaxAttempts:  ctx.Int(flags.ReceiptMaxAttemptsFlag.Name),

		LogConfig: oplog.ReadCLIConfig(ctx),
	}

	if path := ctx.String(flags.ConfigFileFlag.Name); path != "" {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return nil, err
		}
		cfg.ApplyFile(fc, ctx.IsSet)
	}
	return cfg, nil
}

// ApplyFile copies non-empty file values into cfg for every flag isSet reports
// as unset.
func (c *CLIConfig) ApplyFile(fc *FileConfig, isSet func(name string) bool) {
	if fc.L2EthRpc != "" && !isSet(flags.L2EthRpcFlag.Name) {
		c.L2EthRpc = fc.L2EthRpc
	}
	if fc.Account != "" && !isSet(flags.AccountFlag.Name) {
		c.Account = fc.Account
	}
	if len(fc.OwnerKeys) > 0 && !isSet(flags.OwnerKeysFlag.Name) {
		c.OwnerKeys = fc.OwnerKeys
	}
	if fc.OwnerMnemonic != "" && !isSet(flags.OwnerMnemonicFlag.Name) {
		c.OwnerMnemonic = fc.OwnerMnemonic
	}
	if len(fc.OwnerHDPaths) > 0 && !isSet(flags.OwnerHDPathsFlag.Name) {
		c.OwnerHDPaths = fc.OwnerHDPaths
	}
	if fc.GasLimit != 0 && !isSet(flags.GasLimitFlag.Name) {
		c.GasLimit = fc.GasLimit
	}
	if fc.GasPerPubdata != 0 && !isSet(flags.GasPerPubdataFlag.Name) {
		c.GasPerPubdata = fc.GasPerPubdata
	}
}

// Check fails fast on a missing private key and reports every other problem at
// once.
func (c *CLIConfig) Check() error {
	if c.PrivateKey == "" {
		return ErrMissingPrivateKey
	}

	var result *multierror.Error
	if c.L2EthRpc == "" {
		result = multierror.Append(result, errors.New("missing l2 rpc url"))
	}
	if !common.IsHexAddress(c.Account) {
		result = multierror.Append(result, fmt.Errorf("invalid account address %q", c.Account))
	}
	if c.OwnerMnemonic != "" {
		if len(c.OwnerHDPaths) == 0 {
			result = multierror.Append(result, errors.New("owner mnemonic given without derivation paths"))
		}
	} else if len(c.OwnerKeys) == 0 {
		result = multierror.Append(result, errors.New("no owner keys configured"))
	}
	if c.GasLimit == 0 {
		result = multierror.Append(result, errors.New("gas limit must be positive"))
	}
	if c.GasPerPubdata == 0 {
		result = multierror.Append(result, errors.New("gas per pubdata must be positive"))
	}
	if c.ReceiptMaxAttempts < 1 {
		result = multierror.Append(result, fmt.Errorf("receipt max attempts must be at least 1, got %d", c.ReceiptMaxAttempts))
	}
	return result.ErrorOrNil()
}

func (c *CLIConfig) ProviderConfig() *sources.ProviderConfig {
	return &sources.ProviderConfig{
		ReceiptPollInterval: c.ReceiptPollInterval,
		ReceiptMaxAttempts:  c.ReceiptMaxAttempts,
	}
}

func (c *CLIConfig) BackendConfig() BackendConfig {
	return BackendConfig{
		Account:       common.HexToAddress(c.Account),
		GasLimit:      c.GasLimit,
		GasPerPubdata: new(big.Int).SetUint64(c.GasPerPubdata),
		DryRun:        c.DryRun,
	}
}
