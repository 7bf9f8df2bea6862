package types

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryPubkeyFromBase58(t *testing.T) {
	const wsol = "So11111111111111111111111111111111111111112"

	p, err := TryPubkeyFromBase58(wsol)
	require.NoError(t, err)
	assert.Equal(t, wsol, p.String())

	_, err = TryPubkeyFromBase58("0OIl") // 非 base58 字符
	assert.Error(t, err)

	_, err = TryPubkeyFromBase58(base58.Encode([]byte{1, 2, 3}))
	assert.Error(t, err, "长度不是 32 字节应报错")
}

func TestIsValidPubkey(t *testing.T) {
	assert.True(t, IsValidPubkey("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"))
	assert.True(t, IsValidPubkey("11111111111111111111111111111111"))
	assert.False(t, IsValidPubkey(""))
	assert.False(t, IsValidPubkey("not-a-mint"))
}

func TestTrySignatureFromBase58(t *testing.T) {
	var raw [64]byte
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	encoded := base58.Encode(raw[:])

	sig, err := TrySignatureFromBase58(encoded)
	require.NoError(t, err)
	assert.Equal(t, encoded, sig.String())
	assert.Equal(t, byte(28), sig[27])

	_, err = TrySignatureFromBase58("So11111111111111111111111111111111111111112")
	assert.Error(t, err, "32 字节的地址不是签名")
}
