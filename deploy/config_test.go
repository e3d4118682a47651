package deploy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum-optimism/optimism/op-service/cliapp"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/jinmel/zks-multisig/flags"
)

func validConfig() *CLIConfig {
	return &CLIConfig{
		L2EthRpc:            "http://localhost:3050",
		Account:             testAccount.Hex(),
		PrivateKey:          "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
		OwnerKeys:           []string{"0x01", "0x02"},
		GasLimit:            20_000_000,
		GasPerPubdata:       50_000,
		ReceiptPollInterval: time.Second,
		ReceiptMaxAttempts:  10,
	}
}

func TestCheckRequiresPrivateKey(t *testing.T) {
	cfg := validConfig()
	cfg.PrivateKey = ""
	// Other problems are not reported until the key is there.
	cfg.L2EthRpc = ""
	require.ErrorIs(t, cfg.Check(), ErrMissingPrivateKey)
	require.Equal(t, "Please set ZKS_PRIVATE_KEY in the environment variables.", ErrMissingPrivateKey.Error())
}

func TestCheck(t *testing.T) {
	require.NoError(t, validConfig().Check())

	cfg := validConfig()
	cfg.OwnerKeys = nil
	cfg.OwnerMnemonic = "test test test test test test test test test test test junk"
	cfg.OwnerHDPaths = []string{"m/44'/60'/0'/0/0"}
	require.NoError(t, cfg.Check())

	cfg = validConfig()
	cfg.L2EthRpc = ""
	cfg.Account = "not-an-address"
	cfg.OwnerKeys = nil
	cfg.GasLimit = 0
	cfg.GasPerPubdata = 0
	cfg.ReceiptMaxAttempts = 0
	err := cfg.Check()
	require.Error(t, err)
	for _, msg := range []string{"l2 rpc", "account address", "owner keys", "gas limit", "gas per pubdata", "receipt max attempts"} {
		require.Contains(t, err.Error(), msg)
	}
}

func writeConfigFile(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "multisig.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewConfigWithFile(t *testing.T) {
	path := writeConfigFile(t, `
l2-eth-rpc = "http://file:3050"
account = "0x0000000000000000000000000000000000000001"
owner-keys = ["0xaa", "0xbb"]
gas-per-pubdata = 800
`)
	t.Setenv(flags.PrivateKeyEnvVar, "0x1234")

	var cfg *CLIConfig
	app := cli.NewApp()
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = func(ctx *cli.Context) error {
		var err error
		cfg, err = NewConfig(ctx)
		return err
	}
	require.NoError(t, app.Run([]string{"zks-multisig", "--config", path, "--account", testAccount.Hex()}))

	require.Equal(t, "0x1234", cfg.PrivateKey)
	require.Equal(t, "http://file:3050", cfg.L2EthRpc)
	require.Equal(t, testAccount.Hex(), cfg.Account, "flags win over the file")
	require.Equal(t, []string{"0xaa", "0xbb"}, cfg.OwnerKeys)
	require.Equal(t, uint64(800), cfg.GasPerPubdata)
	require.Equal(t, uint64(20_000_000), cfg.GasLimit)
	require.Equal(t, 150, cfg.ReceiptMaxAttempts)
}

func TestNewConfigMissingFile(t *testing.T) {
	app := cli.NewApp()
	app.Flags = cliapp.ProtectFlags(flags.Flags)
	app.Action = func(ctx *cli.Context) error {
		_, err := NewConfig(ctx)
		return err
	}
	require.Error(t, app.Run([]string{"zks-multisig", "--config", filepath.Join(t.TempDir(), "missing.toml")}))
}

func TestApplyFileRespectsSetFlags(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyFile(&FileConfig{
		L2EthRpc:      "http://file",
		OwnerMnemonic: "mnemonic",
		OwnerHDPaths:  []string{"m/0"},
		GasLimit:      1,
	}, func(name string) bool { return name == flags.GasLimitFlag.Name })

	require.Equal(t, "http://file", cfg.L2EthRpc)
	require.Equal(t, "mnemonic", cfg.OwnerMnemonic)
	require.Equal(t, []string{"m/0"}, cfg.OwnerHDPaths)
	require.Equal(t, uint64(20_000_000), cfg.GasLimit)
	require.Equal(t, testAccount.Hex(), cfg.Account)
}
