// Package numtheory provides the integer helpers used by RSA key generation.
//
// All functions operate on *big.Int values, never mutate their arguments and
// always return freshly allocated results.
//
//	numtheory.GCD(big.NewInt(48), big.NewInt(18)) // 6
//	numtheory.LCM(big.NewInt(4), big.NewInt(6))   // 12
//	numtheory.IsCoprime(big.NewInt(3), big.NewInt(5)) // true
package numtheory
