package oneshot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tychoish/oneshot/assert"
	"github.com/tychoish/oneshot/testt"
)

func TestPair(t *testing.T) {
	t.Parallel()
	t.Run("PollBeforeSend", func(t *testing.T) {
		_, receiver := New[int]()

		value, ok := receiver.TryRecv()
		assert.True(t, !ok)
		assert.Zero(t, value)
		assert.True(t, !receiver.Ready())
	})
	t.Run("SendThenPoll", func(t *testing.T) {
		sender, receiver := New[int]()

		assert.NotError(t, sender.Send(4))

		value, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.Equal(t, value, 4)
		assert.True(t, receiver.Ready())
	})
	t.Run("SecondSendFails", func(t *testing.T) {
		sender, receiver := New[int]()

		assert.NotError(t, sender.Send(4))

		err := sender.Send(5)
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadySent)

		// the losing send must not clobber the stored value
		value, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.Equal(t, value, 4)
	})
	t.Run("PollIsIdempotent", func(t *testing.T) {
		sender, receiver := New[string]()
		assert.NotError(t, sender.Send("merlin"))

		for i := 0; i < 64; i++ {
			value, ok := receiver.TryRecv()
			assert.True(t, ok)
			assert.Equal(t, value, "merlin")
		}
	})
	t.Run("RecvAfterSend", func(t *testing.T) {
		sender, receiver := New[int]()
		assert.NotError(t, sender.Send(100))

		// an expired context proves the fast path: the value is
		// already present, so Recv returns it without waiting.
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		value, err := receiver.Recv(ctx)
		assert.NotError(t, err)
		assert.Equal(t, value, 100)
	})
	t.Run("RecvWaitsForSend", func(t *testing.T) {
		ctx := testt.ContextWithTimeout(t, 10*time.Second)
		sender, receiver := New[int]()

		sig := make(chan struct{})
		go func() {
			defer close(sig)
			time.Sleep(2 * time.Millisecond)
			assert.True(t, sender.Check(9))
		}()

		value, err := receiver.Recv(ctx)
		assert.NotError(t, err)
		assert.Equal(t, value, 9)
		<-sig
	})
	t.Run("AbandonedRecvLeavesChannelValid", func(t *testing.T) {
		sender, receiver := New[int]()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		value, err := receiver.Recv(ctx)
		assert.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, value)

		// no state transition happened; the cell still works for
		// the sender and any later wait.
		assert.NotError(t, sender.Send(42))

		value, err = receiver.Recv(testt.Context(t))
		assert.NotError(t, err)
		assert.Equal(t, value, 42)
	})
	t.Run("ZeroValuePayload", func(t *testing.T) {
		sender, receiver := New[int]()
		assert.NotError(t, sender.Send(0))

		value, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.Zero(t, value)
	})
	t.Run("Force", func(t *testing.T) {
		ctx := testt.Context(t)

		sender, receiver := New[string]()
		assert.NotError(t, sender.Send("kip"))
		assert.Equal(t, receiver.Force(ctx), "kip")

		_, empty := New[string]()
		canceled, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Zero(t, empty.Force(canceled))
	})
	t.Run("ConcurrentSend", func(t *testing.T) {
		const senders = 32

		sender, receiver := New[int]()

		wg := &sync.WaitGroup{}
		start := make(chan struct{})
		errs := make(chan error, senders)

		for i := 0; i < senders; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				<-start
				errs <- sender.Send(id)
			}(i)
		}
		close(start)
		wg.Wait()
		close(errs)

		wins := 0
		for err := range errs {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, ErrAlreadySent)
		}
		assert.Equal(t, wins, 1)

		// whatever won is stable under later polls
		first, ok := receiver.TryRecv()
		assert.True(t, ok)
		again, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.Equal(t, first, again)
	})
	t.Run("ConcurrentRecv", func(t *testing.T) {
		const waiters = 16

		ctx := testt.ContextWithTimeout(t, 10*time.Second)
		sender, receiver := New[int]()

		wg := &sync.WaitGroup{}
		values := make(chan int, waiters)

		for i := 0; i < waiters; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := receiver.Recv(ctx)
				assert.NotError(t, err)
				values <- value
			}()
		}

		// all waiters resume after one send, and observe one value
		assert.NotError(t, sender.Send(9001))
		wg.Wait()
		close(values)

		count := 0
		for value := range values {
			assert.Equal(t, value, 9001)
			count++
		}
		assert.Equal(t, count, waiters)
	})
}

func TestPayloadTypes(t *testing.T) {
	t.Parallel()
	t.Run("Pointer", func(t *testing.T) {
		type payload struct{ name string }

		sender, receiver := New[*payload]()
		in := &payload{name: "deleuze"}
		assert.NotError(t, sender.Send(in))

		out, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.True(t, in == out)
	})
	t.Run("NilPointer", func(t *testing.T) {
		sender, receiver := New[*int]()
		assert.NotError(t, sender.Send(nil))

		// a nil payload is still a delivered payload
		out, ok := receiver.TryRecv()
		assert.True(t, ok)
		assert.True(t, out == nil)
		assert.True(t, receiver.Ready())
	})
	t.Run("Slice", func(t *testing.T) {
		ctx := testt.Context(t)

		sender, receiver := New[[]string]()
		assert.NotError(t, sender.Send([]string{"a", "b"}))

		out, err := receiver.Recv(ctx)
		assert.NotError(t, err)
		assert.Equal(t, len(out), 2)
		assert.Equal(t, out[0], "a")
	})
}

func BenchmarkOneShot(b *testing.B) {
	b.Run("SendTryRecv", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			sender, receiver := New[int]()
			if err := sender.Send(i); err != nil {
				b.Fatal(err)
			}
			if value, ok := receiver.TryRecv(); !ok || value != i {
				b.Fatal("did not round trip", value, ok)
			}
		}
	})
	b.Run("RecvReady", func(b *testing.B) {
		ctx := context.Background()
		for i := 0; i < b.N; i++ {
			sender, receiver := New[int]()
			if err := sender.Send(i); err != nil {
				b.Fatal(err)
			}
			if value, err := receiver.Recv(ctx); err != nil || value != i {
				b.Fatal("did not round trip", value, err)
			}
		}
	})
	b.Run("TryRecvEmpty", func(b *testing.B) {
		_, receiver := New[int]()
		for i := 0; i < b.N; i++ {
			if _, ok := receiver.TryRecv(); ok {
				b.Fatal("value appeared from nowhere")
			}
		}
	})
}
