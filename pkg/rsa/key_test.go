package rsa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromComponents(t *testing.T) {
	// n = 61 * 53, λ(n) = lcm(60, 52) = 780, d = 17⁻¹ mod 780.
	key, err := FromComponents(big.NewInt(3233), big.NewInt(17), big.NewInt(413))
	require.NoError(t, err)

	assert.Equal(t, int64(3233), key.Modulus().Int64())
	assert.Equal(t, int64(17), key.PublicExponent().Int64())
	assert.Equal(t, int64(413), key.PrivateExponent().Int64())
	assert.Equal(t, 12, key.Size())

	ciphertext := key.Encrypt(big.NewInt(65))
	assert.Equal(t, int64(2790), ciphertext.Int64())
	assert.Equal(t, int64(65), key.Decrypt(ciphertext).Int64())
}

func TestFromComponents_CopiesArguments(t *testing.T) {
	n := big.NewInt(3233)
	key, err := FromComponents(n, big.NewInt(17), big.NewInt(413))
	require.NoError(t, err)

	n.SetInt64(1)
	key.Modulus().SetInt64(2)
	assert.Equal(t, int64(3233), key.Modulus().Int64())
}

func TestFromComponents_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		n, e, d *big.Int
	}{
		{name: "nil modulus", n: nil, e: big.NewInt(17), d: big.NewInt(413)},
		{name: "modulus of one", n: big.NewInt(1), e: big.NewInt(17), d: big.NewInt(413)},
		{name: "zero exponent", n: big.NewInt(3233), e: big.NewInt(0), d: big.NewInt(413)},
		{name: "negative private exponent", n: big.NewInt(3233), e: big.NewInt(17), d: big.NewInt(-413)},
		{name: "nil private exponent", n: big.NewInt(3233), e: big.NewInt(17), d: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromComponents(tt.n, tt.e, tt.d)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPublicKeyEncrypt(t *testing.T) {
	pub, err := NewPublicKey(big.NewInt(3233), big.NewInt(17))
	require.NoError(t, err)

	assert.Equal(t, int64(2790), pub.Encrypt(big.NewInt(65)).Int64())
	assert.Equal(t, int64(0), pub.Encrypt(big.NewInt(0)).Int64())
	assert.Equal(t, int64(1), pub.Encrypt(big.NewInt(1)).Int64())
}

func TestFingerprint(t *testing.T) {
	a, err := NewPublicKey(big.NewInt(3233), big.NewInt(17))
	require.NoError(t, err)
	b, err := NewPublicKey(big.NewInt(3233), big.NewInt(17))
	require.NoError(t, err)
	c, err := NewPublicKey(big.NewInt(3233), big.NewInt(65537))
	require.NoError(t, err)

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestKeyPairPublic(t *testing.T) {
	key, err := FromComponents(big.NewInt(3233), big.NewInt(17), big.NewInt(413))
	require.NoError(t, err)

	pub := key.Public()
	assert.Equal(t, key.Fingerprint(), pub.Fingerprint())
	assert.Equal(t, 0, pub.Modulus().Cmp(key.Modulus()))
}
