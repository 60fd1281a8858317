package ers

import (
	"context"
	"errors"
	"fmt"
)

// When constructs an error with the provided value IF the conditional
// is true, and returns nil otherwise.
func When(cond bool, err error) error {
	if !cond {
		return nil
	}

	return err
}

// Whenf constructs an error (using fmt.Errorf) IF the conditional is
// true, and returns nil otherwise.
func Whenf(cond bool, tmpl string, args ...any) error {
	if !cond {
		return nil
	}

	return fmt.Errorf(tmpl, args...)
}

// Wrap annotates a non-nil error with the formatted (fmt.Sprint)
// arguments, preserving the original error for errors.Is/As. Both nil
// errors and empty annotations pass through unmodified.
func Wrap(err error, args ...any) error {
	if err == nil || len(args) == 0 {
		return err
	}

	return fmt.Errorf("%s: %w", fmt.Sprint(args...), err)
}

// Wrapf is the Errorf-style form of Wrap.
func Wrapf(err error, tmpl string, args ...any) error {
	if err == nil {
		return err
	}

	return fmt.Errorf("%s: %w", fmt.Sprintf(tmpl, args...), err)
}

// IsError returns true when the error is non-nil. Provides the
// inverse of IsOk().
func IsError(err error) bool { return !IsOk(err) }

// IsOk returns true when the error is nil, and false otherwise. It
// should always be inlined, and mostly exists for clarity at call
// sites in bool/ok check relevant contexts.
func IsOk(err error) bool { return err == nil }

// Is returns true if the error is one of the target errors, or one
// of its constituent (wrapped) errors is a target error. ers.Is uses
// errors.Is.
func Is(err error, targets ...error) bool {
	for _, target := range targets {
		if err == nil && target != nil {
			continue
		}
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// IsExpiredContext checks an error to see if it, or any of its wrapped
// errors, signal that a context has expired. This covers both
// canceled contexts and ones which have exceeded their deadlines.
func IsExpiredContext(err error) bool { return Is(err, context.Canceled, context.DeadlineExceeded) }
