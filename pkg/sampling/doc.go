// Package sampling draws random integers and probable primes for RSA key
// generation.
//
// A Sampler owns its random source instead of reaching for process-wide
// state. The default source is crypto/rand; tests and reproducible runs can
// seed a ChaCha8 stream instead:
//
//	s := sampling.New(sampling.WithSeed(seed))
//	p, err := s.RandomProbablePrime(1024)
//
// Every loop is bounded. A sampler that keeps rejecting draws or composite
// candidates gives up with ErrRetryExhausted instead of spinning forever.
package sampling
