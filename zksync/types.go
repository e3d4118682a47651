package zksync

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// EIP712TxType is the envelope type of account-abstraction transactions.
	EIP712TxType = 0x71

	// DefaultGasPerPubdataLimit is the gas-per-pubdata-byte limit used when the
	// transaction metadata does not set one.
	DefaultGasPerPubdataLimit = 50_000

	DomainName    = "zkSync"
	DomainVersion = "2"
)

// ETHAddress is the system contract that represents the native asset.
var ETHAddress = common.HexToAddress("0x000000000000000000000000000000000000800A")

type PaymasterParams struct {
	Paymaster      common.Address
	PaymasterInput []byte
}

// Eip712Meta holds the rollup specific fields of a type 113 transaction.
type Eip712Meta struct {
	GasPerPubdata   *big.Int
	CustomSignature []byte
	FactoryDeps     [][]byte
	PaymasterParams *PaymasterParams
}

// Transaction712 is a type 113 transaction sent on behalf of a contract account.
// The account validates CustomSignature itself, so the envelope carries no ECDSA
// signature of its own.
type Transaction712 struct {
	From    common.Address
	To      *common.Address
	ChainID *big.Int
	Nonce   uint64

	// GasPrice is used for both fee caps when they are unset.
	GasPrice  *big.Int
	GasTipCap *big.Int
	GasFeeCap *big.Int
	Gas       uint64

	Value *big.Int
	Data  []byte

	Meta Eip712Meta
}

// FeeCap returns maxFeePerGas.
func (tx *Transaction712) FeeCap() *big.Int {
	switch {
	case tx.GasFeeCap != nil:
		return tx.GasFeeCap
	case tx.GasPrice != nil:
		return tx.GasPrice
	default:
		return new(big.Int)
	}
}

// TipCap returns maxPriorityFeePerGas, falling back to the fee cap.
func (tx *Transaction712) TipCap() *big.Int {
	if tx.GasTipCap != nil {
		return tx.GasTipCap
	}
	return tx.FeeCap()
}

func (tx *Transaction712) GasPerPubdata() *big.Int {
	if tx.Meta.GasPerPubdata != nil {
		return tx.Meta.GasPerPubdata
	}
	return big.NewInt(DefaultGasPerPubdataLimit)
}

func (tx *Transaction712) value() *big.Int {
	if tx.Value == nil {
		return new(big.Int)
	}
	return tx.Value
}

func (tx *Transaction712) paymaster() (common.Address, []byte) {
	if tx.Meta.PaymasterParams == nil {
		return common.Address{}, []byte{}
	}
	input := tx.Meta.PaymasterParams.PaymasterInput
	if input == nil {
		input = []byte{}
	}
	return tx.Meta.PaymasterParams.Paymaster, input
}

// WithCustomSignature returns a shallow copy of tx carrying sig.
func (tx *Transaction712) WithCustomSignature(sig []byte) *Transaction712 {
	cpy := *tx
	cpy.Meta.CustomSignature = common.CopyBytes(sig)
	return &cpy
}
