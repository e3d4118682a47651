package deploy

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ethereum-optimism/optimism/op-service/dial"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jinmel/zks-multisig/signer"
	"github.com/jinmel/zks-multisig/sources"
)

// Service holds everything one operation needs: the node connection, the owner
// signers and the operator wallet.
type Service struct {
	Log     log.Logger
	Version string

	Wallet   common.Address
	Provider *sources.Provider
	Signer   *signer.MultisigSigner
	Backend  *Backend

	stopped atomic.Bool
}

func NewService(ctx context.Context, version string, cfg *CLIConfig, log log.Logger) (*Service, error) {
	var s Service
	if err := s.initFromCLIConfig(ctx, version, cfg, log); err != nil {
		return nil, errors.Join(err, s.Stop(ctx))
	}
	return &s, nil
}

func (s *Service) initFromCLIConfig(ctx context.Context, version string, cfg *CLIConfig, log log.Logger) error {
	s.Version = version
	s.Log = log

	if err := s.initWallet(cfg); err != nil {
		return fmt.Errorf("failed to load operator wallet: %w", err)
	}
	if err := s.initSigners(cfg); err != nil {
		return fmt.Errorf("failed to load owner keys: %w", err)
	}
	if err := s.initRPCClient(ctx, cfg); err != nil {
		return fmt.Errorf("failed to dial rollup RPC: %w", err)
	}
	if err := s.initBackend(cfg); err != nil {
		return fmt.Errorf("failed to set up backend: %w", err)
	}
	return nil
}

func (s *Service) initWallet(cfg *CLIConfig) error {
	wallet, err := signer.NewOwnerKey(cfg.PrivateKey)
	if err != nil {
		return err
	}
	s.Wallet = wallet.Address()
	s.Log.Info("Loaded operator wallet", "address", s.Wallet)
	return nil
}

func (s *Service) initSigners(cfg *CLIConfig) error {
	var (
		owners []*signer.OwnerKey
		err    error
	)
	if cfg.OwnerMnemonic != "" {
		owners, err = signer.OwnerKeysFromMnemonic(cfg.OwnerMnemonic, cfg.OwnerHDPaths)
		if err != nil {
			return err
		}
	} else {
		for i, k := range cfg.OwnerKeys {
			owner, err := signer.NewOwnerKey(k)
			if err != nil {
				return fmt.Errorf("owner %d: %w", i+1, err)
			}
			owners = append(owners, owner)
		}
	}
	ms, err := signer.NewMultisigSigner(owners...)
	if err != nil {
		return err
	}
	s.Signer = ms
	s.Log.Info("Loaded owner keys", "owners", ms.Owners())
	return nil
}

func (s *Service) initRPCClient(ctx context.Context, cfg *CLIConfig) error {
	client, err := dial.DialEthClientWithTimeout(ctx, dial.DefaultDialTimeout, s.Log, cfg.L2EthRpc)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", cfg.L2EthRpc, err)
	}
	s.Provider = sources.NewProvider(s.Log, client, cfg.ProviderConfig())
	return nil
}

func (s *Service) initBackend(cfg *CLIConfig) error {
	b, err := NewBackend(s.Log, cfg.BackendConfig(), s.Provider, s.Signer)
	if err != nil {
		return err
	}
	s.Backend = b
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if s.stopped.Swap(true) {
		return nil
	}
	if s.Provider != nil {
		s.Provider.Close()
	}
	return nil
}

func (s *Service) Stopped() bool {
	return s.stopped.Load()
}
