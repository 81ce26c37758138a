package sampling

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a malformed range, bit count or key size.
	ErrInvalidArgument = errors.New("rsa: invalid argument")

	// ErrRetryExhausted indicates a bounded sampling or generation loop ran
	// out of attempts.
	ErrRetryExhausted = errors.New("rsa: retry limit exhausted")
)

// RetryExhaustedError reports which loop gave up and after how many attempts.
// It matches ErrRetryExhausted with errors.Is and unwraps to the cause of the
// final attempt, if any.
type RetryExhaustedError struct {
	Operation string
	Attempts  int
	Err       error
}

func (e *RetryExhaustedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rsa: %s gave up after %d attempts: %v", e.Operation, e.Attempts, e.Err)
	}
	return fmt.Sprintf("rsa: %s gave up after %d attempts", e.Operation, e.Attempts)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

func (e *RetryExhaustedError) Is(target error) bool {
	return target == ErrRetryExhausted
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
