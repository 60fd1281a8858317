package ers

import "fmt"

// Recover catches a panic, turns it into an error and passes it to
// the provided observer function. Use directly in defer statements.
func Recover(ob func(error)) { ob(ParsePanic(recover())) }

// ParsePanic converts a panic payload to an error, attaching the
// ErrRecoveredPanic sentinel. If the payload is nil, as when no panic
// occurred, ParsePanic returns nil.
func ParsePanic(r any) error {
	if r == nil {
		return nil
	}

	switch err := r.(type) {
	case error:
		return Join(err, ErrRecoveredPanic)
	case string:
		return Join(New(err), ErrRecoveredPanic)
	default:
		return Join(fmt.Errorf("[%T]: %v", err, err), ErrRecoveredPanic)
	}
}

// WithRecoverCall runs a function, converting any panic it raises
// into an error.
func WithRecoverCall(fn func()) (err error) {
	defer func() { err = ParsePanic(recover()) }()
	fn()
	return
}

// WithRecoverDo runs a function that returns a value with a panic
// handler that converts the panic to an error.
func WithRecoverDo[T any](fn func() T) (out T, err error) {
	defer func() { err = ParsePanic(recover()) }()
	out = fn()
	return
}
