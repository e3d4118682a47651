package zksync

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const transactionTypeName = "Transaction"

var eip712Types = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
	},
	transactionTypeName: {
		{Name: "txType", Type: "uint256"},
		{Name: "from", Type: "uint256"},
		{Name: "to", Type: "uint256"},
		{Name: "gasLimit", Type: "uint256"},
		{Name: "gasPerPubdataByteLimit", Type: "uint256"},
		{Name: "maxFeePerGas", Type: "uint256"},
		{Name: "maxPriorityFeePerGas", Type: "uint256"},
		{Name: "paymaster", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "value", Type: "uint256"},
		{Name: "data", Type: "bytes"},
		{Name: "factoryDeps", Type: "bytes32[]"},
		{Name: "paymasterInput", Type: "bytes"},
	},
}

func addressToUint(addr common.Address) *big.Int {
	return new(big.Int).SetBytes(addr.Bytes())
}

// Domain returns the EIP-712 domain of the given chain.
func Domain(chainID *big.Int) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:    DomainName,
		Version: DomainVersion,
		ChainId: (*math.HexOrDecimal256)(new(big.Int).Set(chainID)),
	}
}

// SignInput returns the typed message the owners sign.
func (tx *Transaction712) SignInput() (apitypes.TypedDataMessage, error) {
	var to common.Address
	if tx.To != nil {
		to = *tx.To
	}
	deps := make([]interface{}, len(tx.Meta.FactoryDeps))
	for i, dep := range tx.Meta.FactoryDeps {
		h, err := HashBytecode(dep)
		if err != nil {
			return nil, fmt.Errorf("factory dep %d: %w", i, err)
		}
		deps[i] = h.Bytes()
	}
	data := tx.Data
	if data == nil {
		data = []byte{}
	}
	paymaster, paymasterInput := tx.paymaster()

	return apitypes.TypedDataMessage{
		"txType":                 big.NewInt(EIP712TxType),
		"from":                   addressToUint(tx.From),
		"to":                     addressToUint(to),
		"gasLimit":               new(big.Int).SetUint64(tx.Gas),
		"gasPerPubdataByteLimit": tx.GasPerPubdata(),
		"maxFeePerGas":           tx.FeeCap(),
		"maxPriorityFeePerGas":   tx.TipCap(),
		"paymaster":              addressToUint(paymaster),
		"nonce":                  new(big.Int).SetUint64(tx.Nonce),
		"value":                  tx.value(),
		"data":                   data,
		"factoryDeps":            deps,
		"paymasterInput":         paymasterInput,
	}, nil
}

// TypedData returns the full EIP-712 payload of the transaction.
func (tx *Transaction712) TypedData() (apitypes.TypedData, error) {
	if tx.ChainID == nil {
		return apitypes.TypedData{}, ErrMissingChainID
	}
	msg, err := tx.SignInput()
	if err != nil {
		return apitypes.TypedData{}, err
	}
	return apitypes.TypedData{
		Types:       eip712Types,
		PrimaryType: transactionTypeName,
		Domain:      Domain(tx.ChainID),
		Message:     msg,
	}, nil
}

// SignedDigest returns the digest each owner signs. The custom signature is not
// part of it.
func (tx *Transaction712) SignedDigest() (common.Hash, error) {
	typed, err := tx.TypedData()
	if err != nil {
		return common.Hash{}, err
	}
	digest, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return common.BytesToHash(digest), nil
}
