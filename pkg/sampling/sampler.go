package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sync/atomic"
)

const (
	// DefaultMaxDraws bounds the rejection loop of a single UniformInRange call.
	DefaultMaxDraws = 1 << 20

	// DefaultMaxCandidates bounds the number of composites RandomProbablePrime
	// tolerates before giving up.
	DefaultMaxCandidates = 1 << 16

	// DefaultCertainty is the primality confidence in bits: a composite passes
	// with probability at most 2^-DefaultCertainty.
	DefaultCertainty = 256
)

var (
	one = big.NewInt(1)

	// primeFloor is roughly 2^33/sqrt(2). Scaled to the prime size it keeps the
	// product of two primes at exactly twice their bit length.
	primeFloor = big.NewInt(6074001000)
)

// Sampler draws integers from an injected random source.
// It is safe for concurrent use when its source is.
type Sampler struct {
	source        io.Reader
	maxDraws      int
	maxCandidates int
	certainty     int

	draws      atomic.Uint64
	candidates atomic.Uint64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSource sets the random source. The source must be safe for concurrent
// use if the Sampler is shared.
func WithSource(source io.Reader) Option {
	return func(s *Sampler) {
		if source != nil {
			s.source = source
		}
	}
}

// WithSeed replaces the source with a deterministic ChaCha8 stream.
func WithSeed(seed [32]byte) Option {
	return func(s *Sampler) {
		s.source = NewSeededSource(seed)
	}
}

// WithMaxDraws bounds the rejection loop of UniformInRange. Non-positive
// values keep the default.
func WithMaxDraws(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.maxDraws = n
		}
	}
}

// WithMaxCandidates bounds the candidate loop of RandomProbablePrime.
// Non-positive values keep the default.
func WithMaxCandidates(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.maxCandidates = n
		}
	}
}

// WithCertainty sets the primality confidence in bits.
func WithCertainty(bits int) Option {
	return func(s *Sampler) {
		if bits >= 0 {
			s.certainty = bits
		}
	}
}

// New returns a Sampler reading from crypto/rand unless configured otherwise.
func New(opts ...Option) *Sampler {
	s := &Sampler{
		source:        rand.Reader,
		maxDraws:      DefaultMaxDraws,
		maxCandidates: DefaultMaxCandidates,
		certainty:     DefaultCertainty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats is a snapshot of how much work a Sampler has done.
type Stats struct {
	Draws      uint64
	Candidates uint64
}

// Stats returns the number of raw draws and prime candidates tested so far.
func (s *Sampler) Stats() Stats {
	return Stats{
		Draws:      s.draws.Load(),
		Candidates: s.candidates.Load(),
	}
}

// Rounds is the number of Miller-Rabin rounds used per candidate. Each round
// lets a composite through with probability at most 1/4.
func (s *Sampler) Rounds() int {
	return (s.certainty + 1) / 2
}

// UniformInRange returns an integer uniformly distributed in [min, max].
//
// It draws max.BitLen() random bits and rejects draws outside the range, which
// avoids the bias of reducing modulo the range width. Draws are non-negative
// so min must be too.
func (s *Sampler) UniformInRange(min, max *big.Int) (*big.Int, error) {
	if min == nil || max == nil {
		return nil, invalidArgument("range bounds must not be nil")
	}
	if min.Sign() < 0 {
		return nil, invalidArgument("range minimum %s is negative", min)
	}
	if min.Cmp(max) > 0 {
		return nil, invalidArgument("range minimum %s exceeds maximum %s", min, max)
	}
	if min.Cmp(max) == 0 {
		return new(big.Int).Set(min), nil
	}

	bits := max.BitLen()
	for i := 0; i < s.maxDraws; i++ {
		r, err := s.randomBits(bits)
		if err != nil {
			return nil, err
		}
		if r.Cmp(min) >= 0 && r.Cmp(max) <= 0 {
			return r, nil
		}
	}

	return nil, &RetryExhaustedError{Operation: "uniform sampling", Attempts: s.maxDraws}
}

// RandomProbablePrime returns a probable prime of exactly bits bits.
//
// Candidates come from [6074001000 << (bits-33), 2^bits - 1] so that the
// product of two of them has exactly 2*bits bits.
func (s *Sampler) RandomProbablePrime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, invalidArgument("prime size must be at least 2 bits, got %d", bits)
	}

	min, max := PrimeBounds(bits)
	rounds := s.Rounds()

	for i := 0; i < s.maxCandidates; i++ {
		candidate, err := s.UniformInRange(min, max)
		if err != nil {
			return nil, fmt.Errorf("failed to sample %d-bit prime candidate: %w", bits, err)
		}
		s.candidates.Add(1)

		if candidate.ProbablyPrime(rounds) {
			return candidate, nil
		}
	}

	return nil, &RetryExhaustedError{Operation: fmt.Sprintf("%d-bit prime search", bits), Attempts: s.maxCandidates}
}

// PrimeBounds returns the inclusive candidate range RandomProbablePrime
// searches for a prime of the given size.
func PrimeBounds(bits int) (min, max *big.Int) {
	min = new(big.Int).Set(primeFloor)
	if bits >= 33 {
		min.Lsh(min, uint(bits-33))
	} else {
		min.Rsh(min, uint(33-bits))
	}

	max = new(big.Int).Lsh(one, uint(bits))
	max.Sub(max, one)

	return min, max
}

// randomBits reads a non-negative integer of at most bits bits from the source.
func (s *Sampler) randomBits(bits int) (*big.Int, error) {
	s.draws.Add(1)
	if bits <= 0 {
		return new(big.Int), nil
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(s.source, buf); err != nil {
		return nil, fmt.Errorf("failed to read random source: %w", err)
	}
	// Clear the excess high bits of the leading byte.
	buf[0] &= byte(0xff >> uint(len(buf)*8-bits))

	return new(big.Int).SetBytes(buf), nil
}

var defaultSampler = New()

// UniformInRange samples [min, max] with a crypto/rand backed Sampler.
func UniformInRange(min, max *big.Int) (*big.Int, error) {
	return defaultSampler.UniformInRange(min, max)
}

// RandomProbablePrime samples a bits-bit probable prime with a crypto/rand
// backed Sampler.
func RandomProbablePrime(bits int) (*big.Int, error) {
	return defaultSampler.RandomProbablePrime(bits)
}
