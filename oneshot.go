// Package oneshot provides a single-use value-passing channel: a
// synchronization primitive that moves exactly one value from exactly
// one producer to a consumer, which may poll for the value without
// blocking or suspend until it arrives.
//
// The channel is split into two capability-restricted handles bound
// to a single shared cell: a Sender, which can deposit the value at
// most once, and a Receiver, which can observe the cell any number of
// times. Construct the pair with New, or use the OneShot type for a
// single-object view over the same cell.
//
// The cell never resets. After a successful Send the value remains
// readable for the life of the handles, and every waiter, current or
// future, observes the same value.
package oneshot

import (
	"context"
	"sync/atomic"

	"github.com/tychoish/oneshot/ers"
)

// ErrAlreadySent is returned by Send when a value has already passed
// through the channel. The stored value is never affected: the first
// Send wins and every later attempt reports this error.
const ErrAlreadySent ers.Error = ers.Error("oneshot: value already sent")

// state is the shared cell behind a sender/receiver pair. The sent
// flag is the single-writer lock: exactly one Send call wins the
// compare-and-swap, stores the value, and closes the signal channel.
//
// Ordering: the value store happens between the flag transition and
// the close. Closing a channel is a release operation under the Go
// memory model, so any observer that sees the signal closed also sees
// the flag set and the value populated.
type state[T any] struct {
	signal chan struct{}
	sent   atomic.Bool
	value  T
}

func makeState[T any]() *state[T] { return &state[T]{signal: make(chan struct{})} }

func (s *state[T]) send(value T) error {
	if !s.sent.CompareAndSwap(false, true) {
		return ErrAlreadySent
	}

	s.value = value
	close(s.signal)
	return nil
}

func (s *state[T]) tryRecv() (out T, _ bool) {
	select {
	case <-s.signal:
		Invariant.IsTrue(s.sent.Load(), "signal fired without the sent flag")
		return s.value, true
	default:
		return out, false
	}
}

func (s *state[T]) recv(ctx context.Context) (out T, _ error) {
	// fast path: when the value is already present, return without
	// entering the select, so a racing context expiration cannot
	// shadow a delivered value.
	if out, ok := s.tryRecv(); ok {
		return out, nil
	}

	select {
	case <-ctx.Done():
		return out, ctx.Err()
	case <-s.signal:
		Invariant.IsTrue(s.sent.Load(), "signal fired without the sent flag")
		return s.value, nil
	}
}

func (s *state[T]) ready() bool {
	select {
	case <-s.signal:
		return true
	default:
		return false
	}
}

// New constructs a one-shot channel, returning the sender and
// receiver halves bound to a freshly allocated cell. Treat the
// halves as movable single-owner handles: hand the Sender to one
// producer and the Receiver to one consumer.
func New[T any]() (*Sender[T], *Receiver[T]) {
	cell := makeState[T]()
	return &Sender[T]{state: cell}, &Receiver[T]{state: cell}
}

// Sender is the write half of a one-shot channel. Its only
// capability is depositing a value into the shared cell, once.
type Sender[T any] struct{ state *state[T] }

// Send stores the value in the channel's cell, marks it sent, and
// wakes every current and future waiter, as a single unit from the
// perspective of any observer.
//
// Send never blocks. The first call returns nil; every subsequent
// call, including calls racing with the first, returns ErrAlreadySent
// and leaves the stored value untouched. Two concurrent Send calls
// resolve to exactly one success.
func (s *Sender[T]) Send(value T) error { return s.state.send(value) }

// Check performs a Send and reports whether it was successful,
// discarding the error.
func (s *Sender[T]) Check(value T) bool { return ers.IsOk(s.Send(value)) }

// Receiver is the read half of a one-shot channel. All of its
// operations are pure observers of the cell and remain safe to call
// concurrently and repeatedly, before or after the value arrives.
type Receiver[T any] struct{ state *state[T] }

// TryRecv polls the channel without blocking. It returns the stored
// value and true once Send has completed, and the zero value and
// false before then. Polls after a successful Send always return the
// same value.
func (r *Receiver[T]) TryRecv() (T, bool) { return r.state.tryRecv() }

// Recv suspends the calling goroutine until a value has been sent,
// then returns it. If the value is already present, Recv returns
// immediately.
//
// The base operation has no timeout; the context is the composition
// point for external cancellation. When the context expires before
// the value arrives Recv returns the context's error, the cell is
// unmodified, and the channel remains valid for any other waiter or
// a later TryRecv/Recv.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) { return r.state.recv(ctx) }

// Force performs a Recv and drops the error, returning either the
// delivered value or, if the context expired first, the zero value
// of T. Use TryRecv when the zero value is a legal payload and the
// distinction matters.
func (r *Receiver[T]) Force(ctx context.Context) (out T) { out, _ = r.Recv(ctx); return }

// Ready reports whether a value has been sent, without consuming or
// copying it.
func (r *Receiver[T]) Ready() bool { return r.state.ready() }
