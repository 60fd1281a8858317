package oneshot

import (
	"errors"
	"fmt"

	"github.com/tychoish/oneshot/ers"
)

// ErrInvariantViolation is the root error of the error object that is
// the content of all panics produced by the Invariant helper.
const ErrInvariantViolation ers.Error = ers.ErrInvariantViolation

// ErrRecoveredPanic is at the root of any error produced by
// converting a recovered panic into an error.
const ErrRecoveredPanic ers.Error = ers.ErrRecoveredPanic

// Invariant provides a namespace for making runtime invariant
// assertions. These all raise panics, passing error objects from
// panic, which can be more easily handled. The panic payloads are
// errors rooted in ErrInvariantViolation.
//
// The package uses Invariant internally to guard the cell's own
// consistency (a set signal implies a set sent-flag); no caller input
// can trigger those checks, so they are not part of the public error
// taxonomy.
var Invariant RuntimeInvariant = RuntimeInvariant{}

// RuntimeInvariant is a type defined to create a namespace, callable
// (typically) via the Invariant symbol. Access these functions as in:
//
//	oneshot.Invariant.IsTrue(cell != nil, "cell must be populated")
type RuntimeInvariant struct{}

// IsTrue provides a runtime assertion that the condition is true. If
// it is not, IsTrue panics with an error rooted in
// ErrInvariantViolation; in all other cases the operation is a noop.
func (RuntimeInvariant) IsTrue(cond bool, args ...any) { Invariant.OK(cond, args...) }

// IsFalse provides a runtime assertion that the condition is false,
// with IsTrue's panic semantics inverted.
func (RuntimeInvariant) IsFalse(cond bool, args ...any) { Invariant.OK(!cond, args...) }

// Failure unconditionally raises an invariant failure error,
// processing the arguments as the other invariant assertions do.
func (RuntimeInvariant) Failure(args ...any) { Invariant.OK(false, args...) }

// Must raises an invariant failure if the error is not nil. The
// panic's content is both, via wrapping, an ErrInvariantViolation and
// the error itself.
func (RuntimeInvariant) Must(err error, args ...any) {
	Invariant.OK(err == nil, func() error { return ers.Wrap(err, args...) })
}

// OK panics if the condition is false, passing an error that is
// rooted in ErrInvariantViolation. Otherwise the operation is a noop.
//
// A single error, string, or func() error argument is joined with
// ErrInvariantViolation directly; any other argument list is
// formatted into the violation's message.
func (RuntimeInvariant) OK(cond bool, args ...any) {
	if cond {
		return
	}

	switch len(args) {
	case 0:
		panic(ErrInvariantViolation)
	case 1:
		switch ei := args[0].(type) {
		case error:
			panic(ers.Join(ei, ErrInvariantViolation))
		case string:
			panic(ers.Join(ers.New(ei), ErrInvariantViolation))
		case func() error:
			panic(ers.Join(ei(), ErrInvariantViolation))
		default:
			panic(fmt.Errorf("%v: %w", args[0], ErrInvariantViolation))
		}
	default:
		rest := make([]any, 0, len(args))
		errs := []error{ErrInvariantViolation}
		for idx := range args {
			if err, ok := args[idx].(error); ok {
				errs = append(errs, err)
				continue
			}
			rest = append(rest, args[idx])
		}
		if len(rest) > 0 {
			errs = append([]error{errors.New(fmt.Sprintln(rest...))}, errs...)
		}
		panic(ers.Join(errs...))
	}
}
