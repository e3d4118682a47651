package zksync

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashBytecode(t *testing.T) {
	code := oddBytecode(3, 0x5b)
	h, err := HashBytecode(code)
	require.NoError(t, err)

	sum := sha256.Sum256(code)
	require.Equal(t, []byte{1, 0, 0, 3}, h[:4])
	require.Equal(t, sum[4:], h[4:])
}

func TestHashBytecodeInvalid(t *testing.T) {
	for name, code := range map[string][]byte{
		"unaligned":  make([]byte, 33),
		"even words": make([]byte, 64),
		"empty":      nil,
		"too large":  make([]byte, (MaxBytecodeWords+2)*32),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := HashBytecode(code)
			require.ErrorIs(t, err, ErrInvalidBytecode)
		})
	}
}
