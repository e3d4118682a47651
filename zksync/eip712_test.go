package zksync

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestSignedDigestMatchesReference(t *testing.T) {
	tx := testTransfer()
	digest, err := tx.SignedDigest()
	require.NoError(t, err)
	require.Equal(t, referenceDigest(t, tx), digest)
}

func TestSignedDigestWithCallDataAndPaymaster(t *testing.T) {
	tx := testTransfer()
	tx.To = &testAccount
	tx.Value = nil
	tx.Data = common.FromHex("0xf8a8fd6d")
	tx.GasTipCap = big.NewInt(1)
	tx.GasFeeCap = big.NewInt(2)
	tx.Meta.FactoryDeps = [][]byte{oddBytecode(1, 0xaa), oddBytecode(3, 0xbb)}
	tx.Meta.PaymasterParams = &PaymasterParams{
		Paymaster:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		PaymasterInput: []byte{0xde, 0xad},
	}

	digest, err := tx.SignedDigest()
	require.NoError(t, err)
	require.Equal(t, referenceDigest(t, tx), digest)
}

func TestSignedDigestIgnoresCustomSignature(t *testing.T) {
	tx := testTransfer()
	unsigned, err := tx.SignedDigest()
	require.NoError(t, err)

	signed, err := tx.WithCustomSignature([]byte{1, 2, 3}).SignedDigest()
	require.NoError(t, err)
	require.Equal(t, unsigned, signed)
}

func TestSignedDigestCommitsToFields(t *testing.T) {
	base, err := testTransfer().SignedDigest()
	require.NoError(t, err)

	mutations := map[string]func(tx *Transaction712){
		"nonce":   func(tx *Transaction712) { tx.Nonce++ },
		"chainId": func(tx *Transaction712) { tx.ChainID = big.NewInt(324) },
		"value":   func(tx *Transaction712) { tx.Value = big.NewInt(1) },
		"to":      func(tx *Transaction712) { tx.To = nil },
		"gas":     func(tx *Transaction712) { tx.Gas = 1 },
		"pubdata": func(tx *Transaction712) { tx.Meta.GasPerPubdata = big.NewInt(800) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tx := testTransfer()
			mutate(tx)
			digest, err := tx.SignedDigest()
			require.NoError(t, err)
			require.NotEqual(t, base, digest)
		})
	}
}

func TestSignedDigestDefaults(t *testing.T) {
	explicit := testTransfer()
	explicit.GasFeeCap = explicit.GasPrice
	explicit.GasTipCap = explicit.GasPrice
	implicit := testTransfer()
	implicit.Meta.GasPerPubdata = nil

	a, err := explicit.SignedDigest()
	require.NoError(t, err)
	b, err := implicit.SignedDigest()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestSignedDigestErrors(t *testing.T) {
	tx := testTransfer()
	tx.ChainID = nil
	_, err := tx.SignedDigest()
	require.ErrorIs(t, err, ErrMissingChainID)

	tx = testTransfer()
	tx.Meta.FactoryDeps = [][]byte{oddBytecode(2, 0x01)}
	_, err = tx.SignedDigest()
	require.ErrorIs(t, err, ErrInvalidBytecode)
}
