package ers

import (
	"bytes"
	"errors"
)

// Stack is an aggregate error type implemented as a linked list, with
// support for errors.Unwrap and errors.Is/As over every constituent
// error. The zero value is usable.
type Stack struct {
	err   error
	next  *Stack
	count int
}

// Join takes a slice of errors and aggregates them into a single
// error: nil when all inputs are nil, the error itself when exactly
// one remains, and a *Stack otherwise.
func Join(errs ...error) error {
	s := &Stack{}
	for _, err := range errs {
		s.Push(err)
	}

	switch s.count {
	case 0:
		return nil
	case 1:
		return s.err
	default:
		return s
	}
}

// Len reports the number of non-nil constituent errors.
func (e *Stack) Len() int {
	if e == nil {
		return 0
	}
	return e.count
}

// Push adds an error to the stack. Nil errors are dropped, and
// aggregate errors (including other Stacks and errors.Join output)
// are flattened into their constituents.
func (e *Stack) Push(err error) {
	switch werr := err.(type) {
	case nil:
		return
	case interface{ Unwrap() []error }:
		for _, err := range werr.Unwrap() {
			e.Push(err)
		}
	case *Stack:
		for werr != nil {
			e.Push(werr.err)
			werr = werr.next
		}
	default:
		e.next = &Stack{next: e.next, err: e.err}
		e.err = err
		e.count++
	}
}

// Error renders the aggregated error strings, most recently pushed
// first.
func (e *Stack) Error() string {
	if e.err == nil && e.next == nil {
		return "<nil>"
	}

	buf := &bytes.Buffer{}
	for _, err := range e.Unwind() {
		if buf.Len() > 0 {
			buf.WriteString(": ")
		}
		buf.WriteString(err.Error())
	}

	return buf.String()
}

// Is calls errors.Is on the most recently pushed error, for
// compatibility with errors.Is, which (with Unwrap) covers the whole
// stack.
func (e *Stack) Is(err error) bool { return errors.Is(e.err, err) }

// As calls errors.As on the most recently pushed error, for
// compatibility with errors.As.
func (e *Stack) As(target any) bool { return errors.As(e.err, target) }

// Unwrap returns the next layer of the stack, and is compatible with
// errors.Unwrap.
func (e *Stack) Unwrap() error {
	if e.next == nil || e.next.err == nil {
		return nil
	}
	return e.next
}

// Unwind assembles the full list of constituent errors.
func (e *Stack) Unwind() []error {
	out := make([]error, 0, e.count)
	for iter := e; iter != nil && iter.err != nil; iter = iter.next {
		out = append(out, iter.err)
	}

	return out
}
