package rsa

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/numtheory"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

type constantReader byte

func (c constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

// cyclingReader repeats data forever.
type cyclingReader struct {
	data []byte
	pos  int
}

func (c *cyclingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = c.data[c.pos]
		c.pos = (c.pos + 1) % len(c.data)
	}
	return len(p), nil
}

// eventCollector records audit events in memory.
type eventCollector struct {
	mu     sync.Mutex
	events []audit.KeyGenerationEvent
}

func (c *eventCollector) Log(event audit.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := event.(audit.KeyGenerationEvent); ok {
		c.events = append(c.events, e)
	}
}

func seed(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b ^ byte(i*7)
	}
	return s
}

func quietLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func TestGenerateKey_RoundTrip(t *testing.T) {
	key, err := GenerateKey(128)
	require.NoError(t, err)

	plaintext := big.NewInt(1234)
	ciphertext := key.Encrypt(plaintext)
	assert.Equal(t, 0, key.Decrypt(ciphertext).Cmp(plaintext))
}

func TestGenerateKey_Properties(t *testing.T) {
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSeed(seed(1)))),
		WithAcceptancePolicy(AcceptancePolicyStrict),
		WithLogger(quietLogger()),
		WithAuditor(&eventCollector{}),
	)

	for _, size := range []int{64, 128, 256} {
		key, err := gen.Generate(size)
		require.NoError(t, err, "size=%d", size)

		assert.Equal(t, size, key.Size(), "size=%d", size)
		assert.Equal(t, int64(PublicExponent), key.PublicExponent().Int64())

		n := key.Modulus()
		for _, m := range []int64{0, 1, 2, 1234, 65535} {
			pt := big.NewInt(m)
			if pt.Cmp(n) >= 0 {
				continue
			}
			assert.Equal(t, 0, key.Decrypt(key.Encrypt(pt)).Cmp(pt), "size=%d m=%d", size, m)
		}

		last := new(big.Int).Sub(n, one)
		assert.Equal(t, 0, key.Decrypt(key.Encrypt(last)).Cmp(last), "size=%d m=n-1", size)
	}
}

func TestGenerateKey_DistinctKeys(t *testing.T) {
	a, err := GenerateKey(128)
	require.NoError(t, err)
	b, err := GenerateKey(128)
	require.NoError(t, err)

	assert.NotEqual(t, 0, a.Modulus().Cmp(b.Modulus()))
}

func TestGenerateKey_InvalidSize(t *testing.T) {
	for _, size := range []int{-2, 0, 2, 3, 127} {
		_, err := GenerateKey(size)
		assert.ErrorIs(t, err, ErrInvalidArgument, "size=%d", size)
	}
}

func TestGenerator_SeededIsReproducible(t *testing.T) {
	newGen := func() *Generator {
		return NewGenerator(
			WithSampler(sampling.New(sampling.WithSeed(seed(5)))),
			WithLogger(quietLogger()),
			WithAuditor(&eventCollector{}),
		)
	}

	a, err := newGen().Generate(128)
	require.NoError(t, err)
	b, err := newGen().Generate(128)
	require.NoError(t, err)

	assert.Equal(t, 0, a.Modulus().Cmp(b.Modulus()))
	assert.Equal(t, 0, a.PrivateExponent().Cmp(b.PrivateExponent()))
}

// With every draw 0xff, 7-bit primes are always 127, so p == q.
func TestGenerator_ObservedPolicyAcceptsEqualPrimes(t *testing.T) {
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(constantReader(0xff)))),
		WithLogger(quietLogger()),
		WithAuditor(&eventCollector{}),
	)

	key, err := gen.Generate(14)
	require.NoError(t, err)

	// λ = lcm(126, 126) = 126 and 65537 ≡ 17 (mod 126), so d = 17⁻¹ = 89.
	assert.Equal(t, int64(127*127), key.Modulus().Int64())
	assert.Equal(t, int64(89), key.PrivateExponent().Int64())
}

func TestGenerator_StrictPolicyExhaustsAttempts(t *testing.T) {
	collector := &eventCollector{}
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(constantReader(0xff)))),
		WithAcceptancePolicy(AcceptancePolicyStrict),
		WithMaxAttempts(3),
		WithLogger(quietLogger()),
		WithAuditor(collector),
	)

	_, err := gen.Generate(14)
	require.ErrorIs(t, err, ErrRetryExhausted)

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, "14-bit key generation", exhausted.Operation)

	require.Len(t, collector.events, 1)
	assert.False(t, collector.events[0].Success)
	assert.Equal(t, 3, collector.events[0].Attempts)
	assert.Equal(t, "strict", collector.events[0].Policy)
}

// p - 1 = 204 * 65537, so e has no inverse modulo λ for any pair drawn, while
// p != q keeps the observed policy accepting them.
func TestGenerator_NonInvertibleExponentExhaustsAttempts(t *testing.T) {
	p, q := big.NewInt(13369549), big.NewInt(13369571)
	source := &cyclingReader{data: append(p.Bytes(), q.Bytes()...)}

	collector := &eventCollector{}
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(source))),
		WithMaxAttempts(3),
		WithLogger(quietLogger()),
		WithAuditor(collector),
	)

	key, err := gen.Generate(48)
	assert.Nil(t, key)
	assert.True(t, errors.Is(err, ErrArithmetic))
	assert.True(t, errors.Is(err, ErrRetryExhausted))

	require.Len(t, collector.events, 1)
	assert.False(t, collector.events[0].Success)
	assert.Equal(t, 3, collector.events[0].Attempts)
}

// Two-bit draws of 0x02 always give p = q = 2, so λ = 1 and d would be 0.
func TestGenerator_RejectsZeroPrivateExponent(t *testing.T) {
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(constantReader(0x02)))),
		WithMaxAttempts(2),
		WithLogger(quietLogger()),
		WithAuditor(&eventCollector{}),
	)

	key, err := gen.Generate(MinKeySize)
	assert.Nil(t, key)
	assert.True(t, errors.Is(err, ErrArithmetic))
	assert.True(t, errors.Is(err, ErrRetryExhausted))
}

func TestGenerator_PrimeSearchFailure(t *testing.T) {
	// 255 is composite, so 8-bit prime search never succeeds.
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(constantReader(0xff)), sampling.WithMaxCandidates(3))),
		WithLogger(quietLogger()),
		WithAuditor(&eventCollector{}),
	)

	_, err := gen.Generate(16)
	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "failed to generate prime p")
}

func TestGenerator_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(WithLogger(quietLogger()), WithAuditor(&eventCollector{})).GenerateContext(ctx, 128)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_RecordsAuditEvent(t *testing.T) {
	collector := &eventCollector{}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	gen := NewGenerator(WithLogger(log), WithAuditor(collector))
	key, err := gen.Generate(64)
	require.NoError(t, err)

	require.Len(t, collector.events, 1)
	event := collector.events[0]
	assert.True(t, event.Success)
	assert.Equal(t, 64, event.KeySize)
	assert.Equal(t, "observed", event.Policy)
	assert.Equal(t, key.Fingerprint(), event.Fingerprint)
	assert.GreaterOrEqual(t, event.Attempts, 1)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "generated key", entry.Message)
	assert.Equal(t, key.Fingerprint(), entry.Data["fingerprint"])

	// At least one candidate, and so one draw, per prime.
	draws, ok := entry.Data["draws"].(uint64)
	require.True(t, ok)
	candidates, ok := entry.Data["candidates"].(uint64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, candidates, uint64(2*event.Attempts))
	assert.GreaterOrEqual(t, draws, candidates)
}

func TestGenerator_LogsSamplerWorkPerCall(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	// Every 7-bit draw is 127, a prime, so each call costs exactly one draw
	// and one candidate per prime.
	gen := NewGenerator(
		WithSampler(sampling.New(sampling.WithSource(constantReader(0xff)))),
		WithLogger(log),
		WithAuditor(&eventCollector{}),
	)

	for i := 0; i < 2; i++ {
		_, err := gen.Generate(14)
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, uint64(2), entry.Data["draws"])
		assert.Equal(t, uint64(2), entry.Data["candidates"])
	}
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	gen := NewGenerator(WithLogger(quietLogger()), WithAuditor(&eventCollector{}))

	var wg sync.WaitGroup
	keys := make([]*KeyPair, 4)
	errs := make([]error, 4)
	for i := range keys {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys[i], errs[i] = gen.Generate(128)
		}(i)
	}
	wg.Wait()

	for i, key := range keys {
		require.NoError(t, errs[i])
		pt := big.NewInt(1234)
		assert.Equal(t, 0, key.Decrypt(key.Encrypt(pt)).Cmp(pt))
	}
}

func TestPrivateExponentInvertsPublic(t *testing.T) {
	// n = 61 * 53: λ = 780 is coprime to 17 and d·e ≡ 1 (mod λ).
	lambda := numtheory.LCM(big.NewInt(60), big.NewInt(52))
	assert.True(t, numtheory.IsCoprime(big.NewInt(17), lambda))

	d := new(big.Int).ModInverse(big.NewInt(17), lambda)
	require.NotNil(t, d)
	assert.Equal(t, int64(413), d.Int64())
}
