package rsa

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/sampling"
)

var (
	// ErrInvalidArgument is returned for odd or too small key sizes and for
	// malformed key components. It is never retried.
	ErrInvalidArgument = sampling.ErrInvalidArgument

	// ErrRetryExhausted is returned when generation or sampling runs out of
	// attempts.
	ErrRetryExhausted = sampling.ErrRetryExhausted

	// ErrArithmetic indicates the public exponent has no inverse modulo λ(n).
	// The generator treats it as a failed attempt and starts over.
	ErrArithmetic = errors.New("rsa: modular inverse does not exist")
)

// RetryExhaustedError reports a bounded loop that gave up.
type RetryExhaustedError = sampling.RetryExhaustedError

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
