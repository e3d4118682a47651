package zksync

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// txRLP is the field layout of the type 113 envelope. V, R and S are only used by
// EOA-signed transactions; contract accounts leave them as (chainId, 0, 0).
type txRLP struct {
	Nonce           uint64
	GasTipCap       *big.Int
	GasFeeCap       *big.Int
	Gas             uint64
	To              *common.Address `rlp:"nil"`
	Value           *big.Int
	Data            []byte
	V               *big.Int
	R               *big.Int
	S               *big.Int
	ChainID         *big.Int
	From            common.Address
	GasPerPubdata   *big.Int
	FactoryDeps     [][]byte
	CustomSignature []byte
	Paymaster       *paymasterRLP `rlp:"nil"`
}

type paymasterRLP struct {
	Paymaster common.Address
	Input     []byte
}

// MarshalBinary returns the raw transaction accepted by eth_sendRawTransaction.
func (tx *Transaction712) MarshalBinary() ([]byte, error) {
	if tx.ChainID == nil {
		return nil, ErrMissingChainID
	}
	if tx.From == (common.Address{}) {
		return nil, ErrMissingFrom
	}
	if tx.Meta.CustomSignature != nil && len(tx.Meta.CustomSignature) == 0 {
		return nil, ErrEmptySignature
	}

	enc := txRLP{
		Nonce:           tx.Nonce,
		GasTipCap:       tx.TipCap(),
		GasFeeCap:       tx.FeeCap(),
		Gas:             tx.Gas,
		To:              tx.To,
		Value:           tx.value(),
		Data:            tx.Data,
		V:               tx.ChainID,
		R:               new(big.Int),
		S:               new(big.Int),
		ChainID:         tx.ChainID,
		From:            tx.From,
		GasPerPubdata:   tx.GasPerPubdata(),
		FactoryDeps:     tx.Meta.FactoryDeps,
		CustomSignature: tx.Meta.CustomSignature,
	}
	if enc.FactoryDeps == nil {
		enc.FactoryDeps = [][]byte{}
	}
	if p := tx.Meta.PaymasterParams; p != nil {
		enc.Paymaster = &paymasterRLP{Paymaster: p.Paymaster, Input: p.PaymasterInput}
	}

	payload, err := rlp.EncodeToBytes(&enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %w", err)
	}
	return append([]byte{EIP712TxType}, payload...), nil
}

// ParseTransaction712 decodes a raw type 113 transaction.
func ParseTransaction712(raw []byte) (*Transaction712, error) {
	if len(raw) == 0 || raw[0] != EIP712TxType {
		return nil, ErrNotEIP712Tx
	}
	var dec txRLP
	if err := rlp.DecodeBytes(raw[1:], &dec); err != nil {
		return nil, fmt.Errorf("failed to decode transaction: %w", err)
	}

	tx := &Transaction712{
		From:      dec.From,
		To:        dec.To,
		ChainID:   dec.ChainID,
		Nonce:     dec.Nonce,
		GasTipCap: dec.GasTipCap,
		GasFeeCap: dec.GasFeeCap,
		Gas:       dec.Gas,
		Value:     dec.Value,
		Data:      nonEmpty(dec.Data),
		Meta: Eip712Meta{
			GasPerPubdata:   dec.GasPerPubdata,
			CustomSignature: nonEmpty(dec.CustomSignature),
		},
	}
	if len(dec.FactoryDeps) > 0 {
		tx.Meta.FactoryDeps = dec.FactoryDeps
	}
	if dec.Paymaster != nil {
		tx.Meta.PaymasterParams = &PaymasterParams{
			Paymaster:      dec.Paymaster.Paymaster,
			PaymasterInput: nonEmpty(dec.Paymaster.Input),
		}
	}
	return tx, nil
}

func nonEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
