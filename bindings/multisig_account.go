package bindings

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// TwoUserMultisigMetaData contains the part of the TwoUserMultisig account ABI
// the operator tooling uses.
var TwoUserMultisigMetaData = &bind.MetaData{
	ABI: `[
	{"type":"function","name":"setSpendingLimit","stateMutability":"nonpayable",
	 "inputs":[{"internalType":"address","name":"_token","type":"address"},{"internalType":"uint256","name":"_amount","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"removeSpendingLimit","stateMutability":"nonpayable",
	 "inputs":[{"internalType":"address","name":"_token","type":"address"}],
	 "outputs":[]},
	{"type":"function","name":"getLimit","stateMutability":"view",
	 "inputs":[{"internalType":"address","name":"_token","type":"address"}],
	 "outputs":[{"internalType":"uint256","name":"limit","type":"uint256"},{"internalType":"uint256","name":"available","type":"uint256"},{"internalType":"uint256","name":"resetTime","type":"uint256"},{"internalType":"bool","name":"isEnabled","type":"bool"}]},
	{"type":"function","name":"owner1","stateMutability":"view","inputs":[],
	 "outputs":[{"internalType":"address","name":"","type":"address"}]},
	{"type":"function","name":"owner2","stateMutability":"view","inputs":[],
	 "outputs":[{"internalType":"address","name":"","type":"address"}]}
]`,
}

// Limit is the spending limit state the account keeps per token.
type Limit struct {
	Limit     *big.Int
	Available *big.Int
	ResetTime *big.Int
	IsEnabled bool
}

// TwoUserMultisig is a read binding plus calldata packer for the account. Writes
// are not sent through bind: they need the rollup's own transaction type.
type TwoUserMultisig struct {
	address  common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
}

func NewTwoUserMultisig(address common.Address, caller bind.ContractCaller) (*TwoUserMultisig, error) {
	parsed, err := TwoUserMultisigMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return &TwoUserMultisig{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, *parsed, caller, nil, nil),
	}, nil
}

func (c *TwoUserMultisig) Address() common.Address {
	return c.address
}

func (c *TwoUserMultisig) PackSetSpendingLimit(token common.Address, amount *big.Int) ([]byte, error) {
	return c.abi.Pack("setSpendingLimit", token, amount)
}

func (c *TwoUserMultisig) PackRemoveSpendingLimit(token common.Address) ([]byte, error) {
	return c.abi.Pack("removeSpendingLimit", token)
}

// GetLimit is a free data retrieval call binding the contract method getLimit.
func (c *TwoUserMultisig) GetLimit(opts *bind.CallOpts, token common.Address) (Limit, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, "getLimit", token); err != nil {
		return Limit{}, err
	}
	if len(out) != 4 {
		return Limit{}, fmt.Errorf("getLimit returned %d values", len(out))
	}
	return Limit{
		Limit:     *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Available: *abi.ConvertType(out[1], new(*big.Int)).(**big.Int),
		ResetTime: *abi.ConvertType(out[2], new(*big.Int)).(**big.Int),
		IsEnabled: *abi.ConvertType(out[3], new(bool)).(*bool),
	}, nil
}

func (c *TwoUserMultisig) Owner1(opts *bind.CallOpts) (common.Address, error) {
	return c.callAddress(opts, "owner1")
}

func (c *TwoUserMultisig) Owner2(opts *bind.CallOpts) (common.Address, error) {
	return c.callAddress(opts, "owner2")
}

func (c *TwoUserMultisig) callAddress(opts *bind.CallOpts, method string) (common.Address, error) {
	var out []interface{}
	if err := c.contract.Call(opts, &out, method); err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
