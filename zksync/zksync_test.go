package zksync

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	testAccount   = common.HexToAddress("0x450558EbA6Ed9B3a6D6847462cb991489ABf713A")
	testRecipient = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func testTransfer() *Transaction712 {
	to := testRecipient
	return &Transaction712{
		From:     testAccount,
		To:       &to,
		ChainID:  big.NewInt(280),
		Nonce:    3,
		GasPrice: big.NewInt(250_000_000),
		Gas:      20_000_000,
		Value:    big.NewInt(4_900_000_000_000_000),
		Meta: Eip712Meta{
			GasPerPubdata: big.NewInt(DefaultGasPerPubdataLimit),
		},
	}
}

// oddBytecode returns code of the given odd number of words.
func oddBytecode(words int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, words*32)
}

// referenceDigest hashes tx field by field following EIP-712.
func referenceDigest(t *testing.T, tx *Transaction712) common.Hash {
	t.Helper()
	word := func(v *big.Int) []byte { return math.U256Bytes(new(big.Int).Set(v)) }
	addr := func(a common.Address) []byte { return common.LeftPadBytes(a.Bytes(), 32) }

	var to, paymaster common.Address
	var paymasterInput []byte
	if tx.To != nil {
		to = *tx.To
	}
	if p := tx.Meta.PaymasterParams; p != nil {
		paymaster, paymasterInput = p.Paymaster, p.PaymasterInput
	}
	var deps []byte
	for _, dep := range tx.Meta.FactoryDeps {
		h, err := HashBytecode(dep)
		if err != nil {
			t.Fatal(err)
		}
		deps = append(deps, h.Bytes()...)
	}

	typeHash := crypto.Keccak256([]byte("Transaction(uint256 txType,uint256 from,uint256 to,uint256 gasLimit," +
		"uint256 gasPerPubdataByteLimit,uint256 maxFeePerGas,uint256 maxPriorityFeePerGas,uint256 paymaster," +
		"uint256 nonce,uint256 value,bytes data,bytes32[] factoryDeps,bytes paymasterInput)"))
	structHash := crypto.Keccak256(
		typeHash,
		word(big.NewInt(EIP712TxType)),
		addr(tx.From),
		addr(to),
		word(new(big.Int).SetUint64(tx.Gas)),
		word(tx.GasPerPubdata()),
		word(tx.FeeCap()),
		word(tx.TipCap()),
		addr(paymaster),
		word(new(big.Int).SetUint64(tx.Nonce)),
		word(tx.value()),
		crypto.Keccak256(tx.Data),
		crypto.Keccak256(deps),
		crypto.Keccak256(paymasterInput),
	)
	domainSeparator := crypto.Keccak256(
		crypto.Keccak256([]byte("EIP712Domain(string name,string version,uint256 chainId)")),
		crypto.Keccak256([]byte(DomainName)),
		crypto.Keccak256([]byte(DomainVersion)),
		word(tx.ChainID),
	)
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, domainSeparator, structHash)
}
