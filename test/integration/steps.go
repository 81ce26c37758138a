package integration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/exec"
	"strings"

	"github.com/cucumber/godog"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/rsa"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc         *TestContext
	policy     rsa.AcceptancePolicy
	recorder   audit.Recorder
	key        *rsa.KeyPair
	ciphertext *big.Int
	plaintext  *big.Int
	err        error
	saveErr    error
	output     string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:       tc,
		recorder: audit.RecorderFunc(func(audit.Event) {}),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset(ctx)
	})

	// Generation steps
	sc.Step(`^the "([^"]*)" acceptance policy$`, s.theAcceptancePolicy)
	sc.Step(`^audit events are persisted$`, s.auditEventsArePersisted)
	sc.Step(`^I generate a (\d+)-bit key$`, s.iGenerateAKey)
	sc.Step(`^I generate a (\d+)-bit key from a source that always yields (\d+)$`, s.iGenerateFromConstantSource)
	sc.Step(`^the key generation should succeed$`, s.theKeyGenerationShouldSucceed)
	sc.Step(`^the key generation should fail with "([^"]*)"$`, s.theKeyGenerationShouldFailWith)
	sc.Step(`^the modulus should have (\d+) bits$`, s.theModulusShouldHaveBits)
	sc.Step(`^the public exponent should be (\d+)$`, s.thePublicExponentShouldBe)

	// Transform steps
	sc.Step(`^I encrypt (\d+)$`, s.iEncrypt)
	sc.Step(`^I decrypt the ciphertext$`, s.iDecryptTheCiphertext)
	sc.Step(`^the decrypted value should be (\d+)$`, s.theDecryptedValueShouldBe)

	// Audit steps
	sc.Step(`^(\d+) "([^"]*)" audit events? should be stored$`, s.auditEventsShouldBeStored)
	sc.Step(`^the latest audit event should mention the key fingerprint$`, s.theLatestAuditEventShouldMentionFingerprint)

	// CLI steps
	sc.Step(`^I run rsactl with "([^"]*)"$`, s.iRunRsactlWith)
	sc.Step(`^the output should contain "([^"]*)"$`, s.theOutputShouldContain)
}

func (s *StepsContext) generator(opts ...rsa.GeneratorOption) *rsa.Generator {
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	return rsa.NewGenerator(append([]rsa.GeneratorOption{
		rsa.WithAcceptancePolicy(s.policy),
		rsa.WithLogger(log),
		rsa.WithAuditor(s.recorder),
	}, opts...)...)
}

// Generation steps

func (s *StepsContext) theAcceptancePolicy(name string) error {
	policy, err := rsa.AcceptancePolicyString(name)
	if err != nil {
		return err
	}
	s.policy = policy
	return nil
}

func (s *StepsContext) auditEventsArePersisted() error {
	store := s.tc.Store
	s.recorder = audit.RecorderFunc(func(event audit.Event) {
		if err := store.Save(event); err != nil {
			s.saveErr = errors.Join(s.saveErr, err)
		}
	})
	return nil
}

func (s *StepsContext) iGenerateAKey(bits int) error {
	s.key, s.err = s.generator().Generate(bits)
	return nil
}

func (s *StepsContext) iGenerateFromConstantSource(bits, value int) error {
	sampler := sampling.New(sampling.WithSource(constantReader(byte(value))), sampling.WithMaxCandidates(8))
	s.key, s.err = s.generator(rsa.WithSampler(sampler), rsa.WithMaxAttempts(4)).Generate(bits)
	return nil
}

func (s *StepsContext) theKeyGenerationShouldSucceed() error {
	if s.err != nil {
		return fmt.Errorf("expected success, got: %w", s.err)
	}
	if s.key == nil {
		return fmt.Errorf("no key was generated")
	}
	return nil
}

func (s *StepsContext) theKeyGenerationShouldFailWith(kind string) error {
	var target error
	switch kind {
	case "invalid argument":
		target = rsa.ErrInvalidArgument
	case "retry exhausted":
		target = rsa.ErrRetryExhausted
	default:
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(s.err, target) {
		return fmt.Errorf("expected %s, got: %v", kind, s.err)
	}
	return nil
}

func (s *StepsContext) theModulusShouldHaveBits(bits int) error {
	if got := s.key.Size(); got != bits {
		return fmt.Errorf("expected %d-bit modulus, got %d", bits, got)
	}
	return nil
}

func (s *StepsContext) thePublicExponentShouldBe(e int) error {
	if got := s.key.PublicExponent().Int64(); got != int64(e) {
		return fmt.Errorf("expected public exponent %d, got %d", e, got)
	}
	return nil
}

// Transform steps

func (s *StepsContext) iEncrypt(m int64) error {
	s.ciphertext = s.key.Encrypt(big.NewInt(m))
	return nil
}

func (s *StepsContext) iDecryptTheCiphertext() error {
	s.plaintext = s.key.Decrypt(s.ciphertext)
	return nil
}

func (s *StepsContext) theDecryptedValueShouldBe(m int64) error {
	if s.plaintext.Cmp(big.NewInt(m)) != 0 {
		return fmt.Errorf("expected %d, got %s", m, s.plaintext)
	}
	return nil
}

// Audit steps

func (s *StepsContext) auditEventsShouldBeStored(count int, result string) error {
	if s.saveErr != nil {
		return fmt.Errorf("failed to persist audit events: %w", s.saveErr)
	}
	var n int
	err := s.tc.RawDB.QueryRow(
		`SELECT count(*) FROM audit_messages WHERE msgid = 'keygen' AND sdata->'action@32473'->>'result' = $1`,
		result,
	).Scan(&n)
	if err != nil {
		return err
	}
	if n != count {
		return fmt.Errorf("expected %d %s events, found %d", count, result, n)
	}
	return nil
}

func (s *StepsContext) theLatestAuditEventShouldMentionFingerprint() error {
	messages, err := s.tc.Store.Recent("keygen", 1)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no audit events stored")
	}
	if !strings.Contains(messages[0].Message, s.key.Fingerprint()) {
		return fmt.Errorf("expected message to contain %s, got %q", s.key.Fingerprint(), messages[0].Message)
	}
	return nil
}

// CLI steps

func (s *StepsContext) iRunRsactlWith(args string) error {
	cmd := exec.Command(s.tc.BinaryPath, strings.Fields(args)...)
	cmd.Env = append(os.Environ(),
		"RSA_CONFIG_PATH="+os.TempDir(),
		"RSA_AUDIT_ENABLED=true",
		"AUDIT_DATABASE_URL="+s.tc.DatabaseURL,
	)
	out, err := cmd.CombinedOutput()
	s.output = string(out)
	if err != nil {
		return fmt.Errorf("rsactl %s failed: %w\n%s", args, err, out)
	}
	return nil
}

func (s *StepsContext) theOutputShouldContain(text string) error {
	if !strings.Contains(s.output, text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, s.output)
	}
	return nil
}

type constantReader byte

func (c constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}
