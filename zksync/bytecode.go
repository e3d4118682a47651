package zksync

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MaxBytecodeWords is the largest contract size, in 32-byte words, the rollup accepts.
const MaxBytecodeWords = 1<<16 - 1

// HashBytecode returns the versioned bytecode hash used to reference factory deps.
// The first two bytes hold the hash version, the next two the length in words.
func HashBytecode(code []byte) (common.Hash, error) {
	if len(code)%32 != 0 {
		return common.Hash{}, fmt.Errorf("%w: length in bytes must be divisible by 32, got %d", ErrInvalidBytecode, len(code))
	}
	words := len(code) / 32
	if words > MaxBytecodeWords {
		return common.Hash{}, fmt.Errorf("%w: %d words exceeds the maximum of %d", ErrInvalidBytecode, words, MaxBytecodeWords)
	}
	if words%2 == 0 {
		return common.Hash{}, fmt.Errorf("%w: length in 32-byte words must be odd, got %d", ErrInvalidBytecode, words)
	}

	h := common.Hash(sha256.Sum256(code))
	h[0], h[1] = 1, 0
	binary.BigEndian.PutUint16(h[2:4], uint16(words))
	return h, nil
}
