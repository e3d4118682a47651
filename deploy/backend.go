package deploy

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jinmel/zks-multisig/bindings"
	"github.com/jinmel/zks-multisig/signer"
	"github.com/jinmel/zks-multisig/sources"
	"github.com/jinmel/zks-multisig/zksync"
)

// L2Provider is the node surface the operations need.
type L2Provider interface {
	bind.ContractCaller
	ChainID(ctx context.Context) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	WaitMined(ctx context.Context, hash common.Hash) (*sources.Receipt, error)
}

type BackendConfig struct {
	Account       common.Address
	GasLimit      uint64
	GasPerPubdata *big.Int
	DryRun        bool
}

// Result describes one multisig transaction as it went out.
type Result struct {
	Tx      *zksync.Transaction712
	Digest  common.Hash
	Raw     hexutil.Bytes
	Hash    common.Hash
	Receipt *sources.Receipt
	Sent    bool
}

type Backend struct {
	log      log.Logger
	cfg      BackendConfig
	provider L2Provider
	signer   *signer.MultisigSigner
	account  *bindings.TwoUserMultisig
}

func NewBackend(log log.Logger, cfg BackendConfig, provider L2Provider, ms *signer.MultisigSigner) (*Backend, error) {
	account, err := bindings.NewTwoUserMultisig(cfg.Account, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to bind account %s: %w", cfg.Account, err)
	}
	if cfg.GasPerPubdata == nil {
		cfg.GasPerPubdata = big.NewInt(zksync.DefaultGasPerPubdataLimit)
	}
	return &Backend{
		log:      log,
		cfg:      cfg,
		provider: provider,
		signer:   ms,
		account:  account,
	}, nil
}

// PopulateTransaction builds an unsigned type 113 transaction sent from the
// multisig account, reading chain id, nonce and gas price from the node.
func (b *Backend) PopulateTransaction(ctx context.Context, to *common.Address, value *big.Int, data []byte) (*zksync.Transaction712, error) {
	chainID, err := b.provider.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	nonce, err := b.provider.NonceAt(ctx, b.cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := b.provider.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	if value == nil {
		value = new(big.Int)
	}

	tx := &zksync.Transaction712{
		From:     b.cfg.Account,
		To:       to,
		ChainID:  chainID,
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      b.cfg.GasLimit,
		Value:    value,
		Data:     data,
		Meta: zksync.Eip712Meta{
			GasPerPubdata: new(big.Int).Set(b.cfg.GasPerPubdata),
		},
	}
	b.log.Info("Populated transaction", "from", tx.From, "to", to, "chainID", chainID, "nonce", nonce,
		"gasPrice", gasPrice, "gasLimit", tx.Gas, "value", value)
	return tx, nil
}

// SignTransaction collects every owner signature over the transaction digest and
// returns a copy carrying the combined signature.
func (b *Backend) SignTransaction(tx *zksync.Transaction712) (*zksync.Transaction712, common.Hash, error) {
	digest, err := tx.SignedDigest()
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("failed to compute digest: %w", err)
	}
	sig, err := b.signer.Sign(digest)
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("failed to sign digest: %w", err)
	}
	b.log.Info("Signed transaction", "digest", digest, "owners", len(b.signer.Owners()), "signature", hexutil.Bytes(sig))
	return tx.WithCustomSignature(sig), digest, nil
}

// Submit serializes and sends a signed transaction. In dry-run mode nothing is
// sent and the result only carries the raw transaction.
func (b *Backend) Submit(ctx context.Context, tx *zksync.Transaction712, digest common.Hash, wait bool) (*Result, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	res := &Result{Tx: tx, Digest: digest, Raw: raw}
	if b.cfg.DryRun {
		b.log.Info("Dry run, transaction not sent", "size", len(raw))
		return res, nil
	}

	hash, err := b.provider.SendRawTransaction(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	res.Hash, res.Sent = hash, true
	b.log.Info("Transaction sent", "hash", hash)

	if !wait {
		return res, nil
	}
	res.Receipt, err = b.provider.WaitMined(ctx, hash)
	return res, err
}

// Execute runs the whole pipeline for one call from the multisig account.
func (b *Backend) Execute(ctx context.Context, to common.Address, value *big.Int, data []byte, wait bool) (*Result, error) {
	tx, err := b.PopulateTransaction(ctx, &to, value, data)
	if err != nil {
		return nil, err
	}
	signed, digest, err := b.SignTransaction(tx)
	if err != nil {
		return nil, err
	}
	return b.Submit(ctx, signed, digest, wait)
}

// SetSpendingLimit makes the account limit itself on token, waits for the
// change and reads the limit back. The returned limit is nil in dry-run mode.
func (b *Backend) SetSpendingLimit(ctx context.Context, token common.Address, amount *big.Int) (*Result, *bindings.Limit, error) {
	data, err := b.account.PackSetSpendingLimit(token, amount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pack setSpendingLimit: %w", err)
	}
	res, err := b.Execute(ctx, b.cfg.Account, new(big.Int), data, true)
	if err != nil {
		return res, nil, err
	}
	if !res.Sent {
		return res, nil, nil
	}
	limit, err := b.GetLimit(ctx, token)
	if err != nil {
		return res, nil, err
	}
	return res, &limit, nil
}

func (b *Backend) RemoveSpendingLimit(ctx context.Context, token common.Address) (*Result, error) {
	data, err := b.account.PackRemoveSpendingLimit(token)
	if err != nil {
		return nil, fmt.Errorf("failed to pack removeSpendingLimit: %w", err)
	}
	return b.Execute(ctx, b.cfg.Account, new(big.Int), data, true)
}

// TransferETH sends native asset out of the multisig. It does not wait for
// inclusion.
func (b *Backend) TransferETH(ctx context.Context, to common.Address, amount *big.Int) (*Result, error) {
	return b.Execute(ctx, to, amount, nil, false)
}

func (b *Backend) GetLimit(ctx context.Context, token common.Address) (bindings.Limit, error) {
	limit, err := b.account.GetLimit(&bind.CallOpts{Context: ctx}, token)
	if err != nil {
		return bindings.Limit{}, fmt.Errorf("failed to read limit of %s: %w", token, err)
	}
	return limit, nil
}

// OwnerStatus pairs a configured signer with the owner the account stores in the
// same slot.
type OwnerStatus struct {
	Slot       int
	Configured common.Address
	OnChain    common.Address
}

func (s OwnerStatus) Matches() bool {
	return s.Configured == s.OnChain
}

// CheckOwners compares the configured signers with owner1 and owner2 of the
// account. Mismatches are reported, not treated as errors: the account is the
// authority on whether a signature is acceptable.
func (b *Backend) CheckOwners(ctx context.Context) ([]OwnerStatus, error) {
	opts := &bind.CallOpts{Context: ctx}
	owner1, err := b.account.Owner1(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner1: %w", err)
	}
	owner2, err := b.account.Owner2(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner2: %w", err)
	}
	onChain := []common.Address{owner1, owner2}

	configured := b.signer.Owners()
	n := len(onChain)
	if len(configured) > n {
		n = len(configured)
	}
	statuses := make([]OwnerStatus, n)
	for i := range statuses {
		statuses[i].Slot = i + 1
		if i < len(configured) {
			statuses[i].Configured = configured[i]
		}
		if i < len(onChain) {
			statuses[i].OnChain = onChain[i]
		}
		if !statuses[i].Matches() {
			b.log.Warn("Signer does not match account owner", "slot", i+1,
				"configured", statuses[i].Configured, "onchain", statuses[i].OnChain)
		}
	}
	return statuses, nil
}
