// Package assert provides an incredibly simple assertion framework,
// that relies on generics and simplicity. All assertions are "fatal"
// and cause the test to abort at the failure line (rather than
// continue on error).
package assert

import (
	"errors"
	"testing"
)

// True causes a test to fail if the condition is false.
func True(t testing.TB, cond bool) {
	t.Helper()
	if !cond {
		t.Fatal("assertion failure")
	}
}

// Equal causes a test to fail if the two (comparable) values are not
// equal. Be aware that two different pointers and objects passed as
// interfaces that are implemented by pointer receivers are comparable
// as equal and will fail this assertion even if their *values* are
// equal.
func Equal[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if valOne != valTwo {
		t.Fatalf("unequal: <%v> != <%v>", valOne, valTwo)
	}
}

// NotEqual causes a test to fail if two (comparable) values are
// equal.
func NotEqual[T comparable](t testing.TB, valOne, valTwo T) {
	t.Helper()
	if valOne == valTwo {
		t.Fatalf("equal: <%v>", valOne)
	}
}

// Zero fails a test if the value is not the zero-value for its type.
func Zero[T comparable](t testing.TB, val T) {
	t.Helper()

	var zero T
	if zero != val {
		t.Fatalf("expected zero for value of type %T <%v>", val, val)
	}
}

// NotZero fails a test if the value is the zero for its type.
func NotZero[T comparable](t testing.TB, val T) {
	t.Helper()

	var zero T
	if zero == val {
		t.Fatalf("expected non-zero for value of type %T", val)
	}
}

// Error fails the test if the error is nil.
func Error(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected non-nil error")
	}
}

// NotError fails the test if the error is non-nil.
func NotError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// ErrorIs is an assertion form of errors.Is, and fails the test if
// the error (or its wrapped values) are not equal to the target
// error.
func ErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error <%v>, is not <%v>", err, target)
	}
}

// NotErrorIs is an assertion form of !errors.Is, and fails the test
// if the error (or its wrapped values) are equal to the target error.
func NotErrorIs(t testing.TB, err, target error) {
	t.Helper()
	if errors.Is(err, target) {
		t.Fatalf("error <%v>, is <%v>", err, target)
	}
}

// Panic asserts that the function raises a panic.
func Panic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r == nil {
			t.Fatal("expected a panic but got none")
		}
	}()
	fn()
}

// NotPanic asserts that the function does not panic.
func NotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r != nil {
			t.Fatal("panic: ", r)
		}
	}()
	fn()
}

// Failing asserts that the specified test fails. This was required
// for validating the behavior of the assertions, and may be useful in
// your own testing.
func Failing[T testing.TB](t T, test func(T)) {
	t.Helper()
	sig := make(chan bool)
	go func() {
		t.Helper()
		defer close(sig)

		var tt testing.TB

		switch testing.TB(t).(type) {
		case *testing.T:
			tt = &testing.T{}
		case *testing.B:
			tt = &testing.B{}
		}

		test(tt.(T))

		if !tt.Failed() {
			sig <- true
		}
	}()

	if <-sig {
		t.Fatalf("expected test to fail in %s", t.Name())
	}
}
