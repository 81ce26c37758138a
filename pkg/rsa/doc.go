// Package rsa implements textbook RSA over math/big integers.
//
// This is the raw mathematical primitive: no padding, no key encoding, no
// signatures and no constant-time guarantees.
//
// # Key Generation
//
// A Generator samples two probable primes of keySize/2 bits, derives
// λ(n) = lcm(p-1, q-1) and the private exponent d = e⁻¹ mod λ(n) for the
// fixed public exponent e = 65537:
//
//	key, err := rsa.GenerateKey(2048)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Generation is bounded. Generators retry rejected prime pairs and pairs whose
// exponent has no inverse, up to a configurable number of attempts:
//
//	gen := rsa.NewGenerator(
//	    rsa.WithMaxAttempts(16),
//	    rsa.WithAcceptancePolicy(rsa.AcceptancePolicyStrict),
//	)
//	key, err := gen.GenerateContext(ctx, 2048)
//
// # Encryption
//
//	ciphertext := key.Encrypt(big.NewInt(1234))
//	plaintext := key.Decrypt(ciphertext)
//
// Plaintexts must lie in [0, n) for the round trip to hold.
package rsa
