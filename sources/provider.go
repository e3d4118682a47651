package sources

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum-optimism/optimism/op-service/retry"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
)

var (
	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrTransactionReverted = errors.New("transaction reverted")
)

const (
	ReceiptStatusFailed     = 0
	ReceiptStatusSuccessful = 1
)

type ProviderConfig struct {
	ReceiptPollInterval time.Duration
	ReceiptMaxAttempts  int
}

func ProviderDefaultConfig() *ProviderConfig {
	return &ProviderConfig{
		ReceiptPollInterval: 2 * time.Second,
		ReceiptMaxAttempts:  150,
	}
}

// Receipt is the subset of the rollup receipt the tooling reports on. The rollup
// adds batch fields the go-ethereum receipt type does not know about.
type Receipt struct {
	TransactionHash  common.Hash     `json:"transactionHash"`
	BlockHash        common.Hash     `json:"blockHash"`
	BlockNumber      *hexutil.Big    `json:"blockNumber"`
	From             common.Address  `json:"from"`
	To               *common.Address `json:"to"`
	Status           hexutil.Uint64  `json:"status"`
	GasUsed          *hexutil.Big    `json:"gasUsed"`
	L1BatchNumber    *hexutil.Big    `json:"l1BatchNumber"`
	L1BatchTxIndex   *hexutil.Big    `json:"l1BatchTxIndex"`
	TransactionIndex hexutil.Uint64  `json:"transactionIndex"`
}

// Provider talks to a rollup node. It satisfies bind.ContractCaller so bindings
// can read through it.
type Provider struct {
	log    log.Logger
	config *ProviderConfig
	client *ethclient.Client
}

func NewProvider(log log.Logger, client *ethclient.Client, config *ProviderConfig) *Provider {
	if config == nil {
		config = ProviderDefaultConfig()
	}
	return &Provider{
		log:    log,
		config: config,
		client: client,
	}
}

func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	return p.client.ChainID(ctx)
}

// NonceAt returns the nonce of account at the latest block.
func (p *Provider) NonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return p.client.NonceAt(ctx, account, nil)
}

func (p *Provider) GasPrice(ctx context.Context) (*big.Int, error) {
	return p.client.SuggestGasPrice(ctx)
}

func (p *Provider) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return p.client.CodeAt(ctx, contract, blockNumber)
}

func (p *Provider) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return p.client.CallContract(ctx, call, blockNumber)
}

// SendRawTransaction submits an already serialized transaction. ethclient only
// accepts go-ethereum transaction types, so the raw call is made directly.
func (p *Provider) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	if err := p.client.Client().CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw)); err != nil {
		return common.Hash{}, errors.Wrap(err, "failed to send raw transaction")
	}
	p.log.Debug("Raw transaction sent", "hash", hash, "size", len(raw))
	return hash, nil
}

func (p *Provider) TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	var receipt *Receipt
	if err := p.client.Client().CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}
	// Pending rollup transactions can be returned before they land in a block.
	if receipt == nil || receipt.BlockNumber == nil {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

// WaitMined polls until the transaction is included and fails if it reverted.
func (p *Provider) WaitMined(ctx context.Context, hash common.Hash) (*Receipt, error) {
	p.log.Info("Waiting for transaction", "hash", hash)
	receipt, err := retry.Do(ctx, p.config.ReceiptMaxAttempts, retry.Fixed(p.config.ReceiptPollInterval), func() (*Receipt, error) {
		r, err := p.TransactionReceipt(ctx, hash)
		if err != nil && !errors.Is(err, ErrReceiptNotFound) {
			p.log.Warn("Failed to fetch receipt", "hash", hash, "err", err)
		}
		return r, err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s not mined", hash)
	}
	if receipt.Status == ReceiptStatusFailed {
		return receipt, errors.Wrapf(ErrTransactionReverted, "transaction %s", hash)
	}
	p.log.Info("Transaction mined", "hash", hash, "block", (*big.Int)(receipt.BlockNumber))
	return receipt, nil
}

func (p *Provider) Close() {
	p.client.Close()
}
