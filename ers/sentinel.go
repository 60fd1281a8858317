package ers

import "errors"

// ErrInvariantViolation is the root error of the error object that is
// the content of all panics produced by invariant assertion helpers.
const ErrInvariantViolation Error = Error("invariant violation")

// ErrRecoveredPanic is at the root of any error produced by ParsePanic
// from a recovered panic.
const ErrRecoveredPanic Error = Error("recovered panic")

// ErrInvalidInput indicates malformed input. These errors are not
// generally retriable.
const ErrInvalidInput Error = Error("invalid input")

// IsInvariantViolation returns true if the argument is or resolves to
// ErrInvariantViolation. Use it to classify recovered panic payloads.
func IsInvariantViolation(r any) bool {
	err, _ := r.(error)

	if r == nil || IsOk(err) {
		return false
	}

	return errors.Is(err, ErrInvariantViolation)
}
