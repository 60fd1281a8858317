package oneshot

import "context"

// OneShot bundles both halves of a one-shot channel into a single
// object, for call sites that construct, send, and receive in one
// place and don't need to distribute capability-restricted handles.
// It is thin sugar over the same cell used by New: there is one
// implementation of the primitive, with two constructor styles.
type OneShot[T any] struct {
	sender   *Sender[T]
	receiver *Receiver[T]
}

// MakeOneShot constructs a single-object one-shot channel.
func MakeOneShot[T any]() *OneShot[T] {
	sender, receiver := New[T]()
	return &OneShot[T]{sender: sender, receiver: receiver}
}

// Split returns the underlying sender and receiver handles. The
// handles share the wrapper's cell: a value sent through either
// surface is visible through the other.
func (os *OneShot[T]) Split() (*Sender[T], *Receiver[T]) { return os.sender, os.receiver }

// Send stores the value and wakes all waiters, returning
// ErrAlreadySent if a value has already been sent.
func (os *OneShot[T]) Send(value T) error { return os.sender.Send(value) }

// TryRecv polls for the value without blocking.
func (os *OneShot[T]) TryRecv() (T, bool) { return os.receiver.TryRecv() }

// Recv waits for the value, honoring context cancellation as in
// Receiver.Recv.
func (os *OneShot[T]) Recv(ctx context.Context) (T, error) { return os.receiver.Recv(ctx) }

// Force performs a Recv and drops the error.
func (os *OneShot[T]) Force(ctx context.Context) T { return os.receiver.Force(ctx) }

// Ready reports whether a value has been sent.
func (os *OneShot[T]) Ready() bool { return os.receiver.Ready() }
