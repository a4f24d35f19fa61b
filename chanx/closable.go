package chanx

import (
	"context"
	"errors"
	"sync"

	"github.com/baxromumarov/asynch"
)

// ErrClosed is returned by [Closable] operations once the channel has been
// closed, and by receivers whose Go channel has been closed.
var ErrClosed = errors.New("chanx: channel closed")

// ErrBuffFull is returned by [Closable.TrySend] when the buffer is full.
var ErrBuffFull = errors.New("chanx: buffer is full")

// ErrEmpty is returned by [Closable.TryRecv] when no value is buffered.
var ErrEmpty = errors.New("chanx: channel empty")

// Closable is a buffered mailbox with idempotent close and panic-safe send.
// It implements [asynch.Channel].
//
// Go channels panic on double close and on send-after-close. Closable
// converts these panics into errors, making it safe to use in concurrent
// teardown scenarios. Values buffered before Close are still delivered
// by Recv; after that Recv returns [ErrClosed].
type Closable[T any] struct {
	ch     chan T
	once   sync.Once
	closed chan struct{} // closed when Close() is called

	mu       sync.RWMutex // held shared by senders, exclusively by Close
	isClosed bool
}

var _ asynch.Channel[int] = (*Closable[int])(nil)

// NewClosable creates a Closable channel with the given buffer capacity.
func NewClosable[T any](capacity int) *Closable[T] {
	if capacity < 0 {
		panic("chanx: NewClosable requires capacity >= 0")
	}
	return &Closable[T]{
		ch:     make(chan T, capacity),
		closed: make(chan struct{}),
	}
}

// Send sends v, blocking while the buffer is full. It returns [ErrClosed]
// if the channel is or becomes closed before v is accepted, or the
// context error if ctx is done first.
func (c *Closable[T]) Send(ctx context.Context, v T) error {
	// Close cannot close c.ch while any sender holds the read lock.
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isClosed {
		return ErrClosed
	}

	select {
	case c.ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.closed:
		return ErrClosed
	}
}

// TrySend sends v without blocking. It returns [ErrBuffFull] instead of
// waiting for buffer space.
func (c *Closable[T]) TrySend(v T) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isClosed {
		return ErrClosed
	}

	select {
	case c.ch <- v:
		return nil
	default:
		return ErrBuffFull
	}
}

// Recv returns the next buffered value, blocking until one is available.
// It returns [ErrClosed] once the channel is closed and drained, or the
// context error if ctx is done first.
func (c *Closable[T]) Recv(ctx context.Context) (T, error) {
	return recvOpen(ctx, c.ch)
}

// TryRecv returns the next buffered value without blocking. It returns
// [ErrEmpty] if none is buffered and [ErrClosed] if the channel is closed
// and drained.
func (c *Closable[T]) TryRecv() (T, error) {
	select {
	case v, ok := <-c.ch:
		if !ok {
			return v, ErrClosed
		}
		return v, nil
	default:
		var zero T
		return zero, ErrEmpty
	}
}

// Close closes the channel. It is safe to call multiple times;
// only the first call actually closes the channel. Blocked senders
// return [ErrClosed].
func (c *Closable[T]) Close() {
	c.once.Do(func() {
		// Wake blocked senders first so they release the read lock.
		close(c.closed)

		c.mu.Lock()
		c.isClosed = true
		close(c.ch)
		c.mu.Unlock()
	})
}

// Len returns the number of values currently buffered.
func (c *Closable[T]) Len() int { return len(c.ch) }

// Cap returns the buffer capacity.
func (c *Closable[T]) Cap() int { return cap(c.ch) }

// Chan returns the underlying channel for reading. The returned channel
// is closed when [Closable.Close] is called.
func (c *Closable[T]) Chan() <-chan T {
	return c.ch
}

// Done returns a channel that is closed when [Closable.Close] is called.
// This is useful for select statements that need to detect closure.
func (c *Closable[T]) Done() <-chan struct{} {
	return c.closed
}
