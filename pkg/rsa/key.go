package rsa

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// PublicExponent is the fixed public exponent e.
const PublicExponent = 65537

// PublicKey is the (n, e) half of a key pair.
type PublicKey struct {
	modulus  *big.Int
	exponent *big.Int
}

// KeyPair holds n, e and d. It is immutable once constructed and safe to share
// between goroutines.
type KeyPair struct {
	PublicKey
	privateExponent *big.Int
}

// NewPublicKey builds a public key from a modulus and exponent.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	if n == nil || n.Cmp(big.NewInt(1)) <= 0 {
		return nil, invalidArgument("modulus must be greater than 1")
	}
	if e == nil || e.Sign() <= 0 {
		return nil, invalidArgument("public exponent must be positive")
	}

	return &PublicKey{
		modulus:  new(big.Int).Set(n),
		exponent: new(big.Int).Set(e),
	}, nil
}

// FromComponents builds a key pair from raw integers. The components are
// copied; no consistency between them is checked.
func FromComponents(n, e, d *big.Int) (*KeyPair, error) {
	pub, err := NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	if d == nil || d.Sign() <= 0 {
		return nil, invalidArgument("private exponent must be positive")
	}

	return &KeyPair{
		PublicKey:       *pub,
		privateExponent: new(big.Int).Set(d),
	}, nil
}

// Modulus returns a copy of n.
func (k PublicKey) Modulus() *big.Int {
	return new(big.Int).Set(k.modulus)
}

// PublicExponent returns a copy of e.
func (k PublicKey) PublicExponent() *big.Int {
	return new(big.Int).Set(k.exponent)
}

// Size returns the bit length of the modulus.
func (k PublicKey) Size() int {
	return k.modulus.BitLen()
}

// Fingerprint identifies the public key in logs: hex SHA-256 over the
// big-endian bytes of n followed by e.
func (k PublicKey) Fingerprint() string {
	hash := sha256.New()
	hash.Write(k.modulus.Bytes())
	hash.Write(k.exponent.Bytes())
	return hex.EncodeToString(hash.Sum(nil))
}

// Encrypt returns plaintext^e mod n. Inputs outside [0, n) are not rejected,
// but only those inside survive a round trip.
func (k PublicKey) Encrypt(plaintext *big.Int) *big.Int {
	return new(big.Int).Exp(plaintext, k.exponent, k.modulus)
}

// Public returns the public half of the key pair.
func (k KeyPair) Public() PublicKey {
	return k.PublicKey
}

// PrivateExponent returns a copy of d.
func (k KeyPair) PrivateExponent() *big.Int {
	return new(big.Int).Set(k.privateExponent)
}

// Decrypt returns ciphertext^d mod n.
func (k KeyPair) Decrypt(ciphertext *big.Int) *big.Int {
	return new(big.Int).Exp(ciphertext, k.privateExponent, k.modulus)
}
