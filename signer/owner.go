package signer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	hdwallet "github.com/ethereum-optimism/go-ethereum-hdwallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of a joined r || s || v signature.
const SignatureLength = crypto.SignatureLength

// recoveryOffset is added to the recovery id, as contracts using ecrecover expect.
const recoveryOffset = 27

var ErrInvalidKey = errors.New("invalid private key")

// OwnerKey is one of the keys allowed to authorize multisig transactions.
type OwnerKey struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

func NewOwnerKeyFromECDSA(key *ecdsa.PrivateKey) *OwnerKey {
	return &OwnerKey{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

// NewOwnerKey parses a hex private key, with or without 0x prefix.
func NewOwnerKey(hexKey string) (*OwnerKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return NewOwnerKeyFromECDSA(key), nil
}

// OwnerKeysFromMnemonic derives one owner key per derivation path.
func OwnerKeysFromMnemonic(mnemonic string, paths []string) ([]*OwnerKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to open mnemonic: %w", err)
	}
	owners := make([]*OwnerKey, 0, len(paths))
	for _, p := range paths {
		path, err := hdwallet.ParseDerivationPath(p)
		if err != nil {
			return nil, fmt.Errorf("invalid derivation path %q: %w", p, err)
		}
		account, err := wallet.Derive(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %q: %w", p, err)
		}
		key, err := wallet.PrivateKey(account)
		if err != nil {
			return nil, fmt.Errorf("failed to export key for %q: %w", p, err)
		}
		owners = append(owners, NewOwnerKeyFromECDSA(key))
	}
	return owners, nil
}

func (o *OwnerKey) Address() common.Address {
	return o.addr
}

// SignDigest signs a raw 32 byte digest. No message prefix is applied: the
// account contract recovers signers from the EIP-712 digest directly.
func (o *OwnerKey) SignDigest(digest common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(digest.Bytes(), o.key)
	if err != nil {
		return nil, fmt.Errorf("owner %s failed to sign: %w", o.addr, err)
	}
	sig[crypto.RecoveryIDOffset] += recoveryOffset
	return sig, nil
}
