package rsa

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/numtheory"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

const (
	// MinKeySize is the smallest modulus size GenerateKey accepts.
	MinKeySize = 4

	// DefaultMaxAttempts bounds how many prime pairs are drawn per key.
	DefaultMaxAttempts = 64
)

var (
	one            = big.NewInt(1)
	publicExponent = big.NewInt(PublicExponent)
)

// Generator produces key pairs. A Generator is safe for concurrent use when its
// sampler is.
type Generator struct {
	sampler     *sampling.Sampler
	maxAttempts int
	policy      AcceptancePolicy
	log         logrus.FieldLogger
	auditor     audit.Recorder
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSampler sets the sampler primes are drawn from.
func WithSampler(s *sampling.Sampler) GeneratorOption {
	return func(g *Generator) {
		if s != nil {
			g.sampler = s
		}
	}
}

// WithMaxAttempts bounds the number of prime pairs tried per key.
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithAcceptancePolicy selects how prime pairs are accepted.
func WithAcceptancePolicy(p AcceptancePolicy) GeneratorOption {
	return func(g *Generator) {
		g.policy = p
	}
}

// WithLogger sets where diagnostics are logged.
func WithLogger(log logrus.FieldLogger) GeneratorOption {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithAuditor sets where key generation events are recorded.
func WithAuditor(r audit.Recorder) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.auditor = r
		}
	}
}

// NewGenerator returns a Generator using crypto/rand and the observed
// acceptance policy unless configured otherwise.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		sampler:     sampling.New(),
		maxAttempts: DefaultMaxAttempts,
		policy:      AcceptancePolicyObserved,
		log:         logrus.StandardLogger(),
		auditor:     audit.Default,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate creates a key pair whose modulus has keySize bits.
func (g *Generator) Generate(keySize int) (*KeyPair, error) {
	return g.GenerateContext(context.Background(), keySize)
}

// GenerateContext is Generate with cancellation, checked between attempts.
func (g *Generator) GenerateContext(ctx context.Context, keySize int) (*KeyPair, error) {
	start := time.Now()
	before := g.sampler.Stats()

	key, attempts, err := g.generate(ctx, keySize)
	stats := g.sampler.Stats()

	event := audit.KeyGenerationEvent{
		KeySize:  keySize,
		Policy:   g.policy.String(),
		Attempts: attempts,
		Duration: time.Since(start),
		Success:  err == nil,
	}
	fields := logrus.Fields{
		"size":       keySize,
		"policy":     g.policy.String(),
		"attempts":   attempts,
		"duration":   event.Duration,
		"draws":      stats.Draws - before.Draws,
		"candidates": stats.Candidates - before.Candidates,
	}
	if err != nil {
		event.ErrorMessage = err.Error()
		g.log.WithFields(fields).WithError(err).Warn("key generation failed")
	} else {
		event.Fingerprint = key.Fingerprint()
		fields["fingerprint"] = event.Fingerprint
		g.log.WithFields(fields).Debug("generated key")
	}
	g.auditor.Log(event)

	return key, err
}

func (g *Generator) generate(ctx context.Context, keySize int) (*KeyPair, int, error) {
	if keySize < MinKeySize {
		return nil, 0, invalidArgument("key size must be at least %d bits, got %d", MinKeySize, keySize)
	}
	if keySize%2 != 0 {
		return nil, 0, invalidArgument("key size must be even, got %d", keySize)
	}

	primeBits := keySize / 2
	var lastErr error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, attempt - 1, err
		}

		p, err := g.sampler.RandomProbablePrime(primeBits)
		if err != nil {
			return nil, attempt, fmt.Errorf("failed to generate prime p: %w", err)
		}
		q, err := g.sampler.RandomProbablePrime(primeBits)
		if err != nil {
			return nil, attempt, fmt.Errorf("failed to generate prime q: %w", err)
		}

		n := new(big.Int).Mul(p, q)
		lambda := numtheory.LCM(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))

		if !g.policy.accepts(publicExponent, lambda, p, q, primeBits) {
			g.log.WithField("attempt", attempt).Debug("prime pair rejected")
			continue
		}

		// λ == 1 (p = q = 2) yields d == 0, which cannot decrypt.
		d := new(big.Int).ModInverse(publicExponent, lambda)
		if d == nil || d.Sign() == 0 {
			lastErr = ErrArithmetic
			g.log.WithField("attempt", attempt).Debug("no usable private exponent for prime pair, retrying")
			continue
		}

		return &KeyPair{
			PublicKey: PublicKey{
				modulus:  n,
				exponent: new(big.Int).Set(publicExponent),
			},
			privateExponent: d,
		}, attempt, nil
	}

	return nil, g.maxAttempts, &RetryExhaustedError{
		Operation: fmt.Sprintf("%d-bit key generation", keySize),
		Attempts:  g.maxAttempts,
		Err:       lastErr,
	}
}

var defaultGenerator = NewGenerator()

// GenerateKey creates a key pair of keySize bits with the default generator.
func GenerateKey(keySize int) (*KeyPair, error) {
	return defaultGenerator.Generate(keySize)
}
