package zksync

import "errors"

var (
	ErrMissingChainID    = errors.New("transaction chain id is not set")
	ErrMissingFrom       = errors.New("explicitly providing `from` is required for EIP712 transactions")
	ErrEmptySignature    = errors.New("empty signatures are not supported")
	ErrNotEIP712Tx       = errors.New("not an EIP712 transaction")
	ErrInvalidBytecode   = errors.New("invalid bytecode")
	ErrInvalidEtherValue = errors.New("invalid ether value")
)
