package sources

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum-optimism/optimism/op-service/testlog"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// mockEth serves the eth namespace methods the provider uses.
type mockEth struct {
	mu sync.Mutex

	sent     []hexutil.Bytes
	receipt  *Receipt
	pending  int
	lookups  int
	accounts []common.Address
}

func (m *mockEth) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(280))
}

func (m *mockEth) GasPrice() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(250_000_000))
}

func (m *mockEth) GetTransactionCount(account common.Address, block string) hexutil.Uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append(m.accounts, account)
	return 7
}

func (m *mockEth) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, raw)
	return common.BytesToHash(raw), nil
}

func (m *mockEth) GetTransactionReceipt(hash common.Hash) (*Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	if m.lookups <= m.pending {
		return nil, nil
	}
	return m.receipt, nil
}

func newTestProvider(t *testing.T, svc *mockEth) *Provider {
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", svc))
	t.Cleanup(srv.Stop)

	client := ethclient.NewClient(rpc.DialInProc(srv))
	p := NewProvider(testlog.Logger(t, log.LevelInfo), client, &ProviderConfig{
		ReceiptPollInterval: time.Millisecond,
		ReceiptMaxAttempts:  5,
	})
	t.Cleanup(p.Close)
	return p
}

func TestProviderQueries(t *testing.T) {
	svc := &mockEth{}
	p := newTestProvider(t, svc)
	ctx := context.Background()
	account := common.HexToAddress("0x450558EbA6Ed9B3a6D6847462cb991489ABf713A")

	chainID, err := p.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(280), chainID.Int64())

	gasPrice, err := p.GasPrice(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(250_000_000), gasPrice.Int64())

	nonce, err := p.NonceAt(ctx, account)
	require.NoError(t, err)
	require.Equal(t, uint64(7), nonce)
	require.Equal(t, []common.Address{account}, svc.accounts)
}

func TestProviderSendRawTransaction(t *testing.T) {
	svc := &mockEth{}
	p := newTestProvider(t, svc)

	raw := []byte{0x71, 0xc0}
	hash, err := p.SendRawTransaction(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, common.BytesToHash(raw), hash)
	require.Equal(t, []hexutil.Bytes{raw}, svc.sent)
}

func TestProviderWaitMined(t *testing.T) {
	hash := common.HexToHash("0x01")
	svc := &mockEth{
		pending: 2,
		receipt: &Receipt{
			TransactionHash: hash,
			BlockNumber:     (*hexutil.Big)(big.NewInt(100)),
			Status:          ReceiptStatusSuccessful,
		},
	}
	p := newTestProvider(t, svc)

	receipt, err := p.WaitMined(context.Background(), hash)
	require.NoError(t, err)
	require.Equal(t, hash, receipt.TransactionHash)
	require.Equal(t, 3, svc.lookups)
}

func TestProviderWaitMinedReverted(t *testing.T) {
	svc := &mockEth{
		receipt: &Receipt{
			BlockNumber: (*hexutil.Big)(big.NewInt(100)),
			Status:      ReceiptStatusFailed,
		},
	}
	p := newTestProvider(t, svc)

	receipt, err := p.WaitMined(context.Background(), common.HexToHash("0x02"))
	require.ErrorIs(t, err, ErrTransactionReverted)
	require.NotNil(t, receipt)
}

func TestProviderWaitMinedGivesUp(t *testing.T) {
	svc := &mockEth{pending: 100}
	p := newTestProvider(t, svc)

	_, err := p.WaitMined(context.Background(), common.HexToHash("0x03"))
	require.Error(t, err)
	require.Equal(t, 5, svc.lookups)
}

func TestProviderReceiptWithoutBlockIsPending(t *testing.T) {
	svc := &mockEth{receipt: &Receipt{Status: ReceiptStatusSuccessful}}
	p := newTestProvider(t, svc)

	_, err := p.TransactionReceipt(context.Background(), common.HexToHash("0x04"))
	require.ErrorIs(t, err, ErrReceiptNotFound)
}
