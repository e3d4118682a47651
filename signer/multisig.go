package signer

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	ErrNoOwners           = errors.New("at least one owner is required")
	ErrDuplicateOwner     = errors.New("duplicate owner")
	ErrMalformedSignature = errors.New("malformed signature blob")
)

// MultisigSigner produces the combined signature of an ordered owner set. The
// order is significant: the account checks the n-th signature against its n-th
// owner.
type MultisigSigner struct {
	owners []*OwnerKey
}

func NewMultisigSigner(owners ...*OwnerKey) (*MultisigSigner, error) {
	if len(owners) == 0 {
		return nil, ErrNoOwners
	}
	seen := make(map[common.Address]struct{}, len(owners))
	for _, o := range owners {
		if _, ok := seen[o.Address()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOwner, o.Address())
		}
		seen[o.Address()] = struct{}{}
	}
	return &MultisigSigner{owners: owners}, nil
}

func (m *MultisigSigner) Owners() []common.Address {
	addrs := make([]common.Address, len(m.owners))
	for i, o := range m.owners {
		addrs[i] = o.Address()
	}
	return addrs
}

// Sign returns the concatenation of every owner's signature over digest.
func (m *MultisigSigner) Sign(digest common.Hash) ([]byte, error) {
	blob := make([]byte, 0, len(m.owners)*SignatureLength)
	for _, o := range m.owners {
		sig, err := o.SignDigest(digest)
		if err != nil {
			return nil, err
		}
		blob = append(blob, sig...)
	}
	return blob, nil
}

// SplitSignatures cuts a combined signature into its 65 byte parts.
func SplitSignatures(blob []byte) ([][]byte, error) {
	if len(blob) == 0 || len(blob)%SignatureLength != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrMalformedSignature, len(blob), SignatureLength)
	}
	sigs := make([][]byte, 0, len(blob)/SignatureLength)
	for i := 0; i < len(blob); i += SignatureLength {
		sigs = append(sigs, blob[i:i+SignatureLength])
	}
	return sigs, nil
}

// RecoverSigners returns the address behind each signature of blob, in order.
func RecoverSigners(digest common.Hash, blob []byte) ([]common.Address, error) {
	sigs, err := SplitSignatures(blob)
	if err != nil {
		return nil, err
	}
	signers := make([]common.Address, len(sigs))
	for i, sig := range sigs {
		v := sig[crypto.RecoveryIDOffset]
		if v != recoveryOffset && v != recoveryOffset+1 {
			return nil, fmt.Errorf("%w: signature %d has v=%d", ErrMalformedSignature, i, v)
		}
		raw := common.CopyBytes(sig)
		raw[crypto.RecoveryIDOffset] -= recoveryOffset
		pub, err := crypto.SigToPub(digest.Bytes(), raw)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		signers[i] = crypto.PubkeyToAddress(*pub)
	}
	return signers, nil
}
