package chanx

import (
	"context"

	"github.com/baxromumarov/asynch"
)

// Send sends v to ch, unblocking early if ctx is canceled.
// It returns nil on successful send, or the context error if canceled.
func Send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recv receives a value from ch, unblocking early if ctx is canceled.
// It returns the value, a boolean indicating whether the channel is still
// open (false means ch was closed), and any context error.
func Recv[T any](ctx context.Context, ch <-chan T) (T, bool, error) {
	select {
	case v, ok := <-ch:
		return v, ok, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

// Chan adapts a bidirectional Go channel to [asynch.Channel].
//
// Recv on a closed channel returns [ErrClosed]. Send on a closed channel
// panics, as it does for the Go channel; use [Closable] when the channel
// may be closed while senders are active.
type Chan[T any] struct {
	ch chan T
}

var _ asynch.Channel[int] = (*Chan[int])(nil)

// Wrap returns a [Chan] over ch. It panics if ch is nil.
func Wrap[T any](ch chan T) *Chan[T] {
	if ch == nil {
		panic("chanx: Wrap requires a non-nil channel")
	}
	return &Chan[T]{ch: ch}
}

// Send sends v on the underlying channel.
func (c *Chan[T]) Send(ctx context.Context, v T) error {
	return Send(ctx, c.ch, v)
}

// Recv receives from the underlying channel.
func (c *Chan[T]) Recv(ctx context.Context) (T, error) {
	return recvOpen(ctx, c.ch)
}

// Chan returns the underlying channel.
func (c *Chan[T]) Chan() chan T { return c.ch }

// Source adapts a receive-only Go channel to [asynch.Receiver].
type Source[T any] struct {
	ch <-chan T
}

// FromChan returns a [Source] over ch. It panics if ch is nil.
func FromChan[T any](ch <-chan T) *Source[T] {
	if ch == nil {
		panic("chanx: FromChan requires a non-nil channel")
	}
	return &Source[T]{ch: ch}
}

// Recv receives from the underlying channel. It returns [ErrClosed] once
// the channel is closed and drained.
func (s *Source[T]) Recv(ctx context.Context) (T, error) {
	return recvOpen(ctx, s.ch)
}

// Sink adapts a send-only Go channel to [asynch.Sender].
type Sink[T any] struct {
	ch chan<- T
}

// ToChan returns a [Sink] over ch. It panics if ch is nil.
func ToChan[T any](ch chan<- T) *Sink[T] {
	if ch == nil {
		panic("chanx: ToChan requires a non-nil channel")
	}
	return &Sink[T]{ch: ch}
}

// Send sends v on the underlying channel.
func (s *Sink[T]) Send(ctx context.Context, v T) error {
	return Send(ctx, s.ch, v)
}

func recvOpen[T any](ctx context.Context, ch <-chan T) (T, error) {
	v, ok, err := Recv(ctx, ch)
	if err != nil {
		return v, err
	}
	if !ok {
		return v, ErrClosed
	}
	return v, nil
}
