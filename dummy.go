package asynch

import "context"

// DummyChannel is a [Channel] with nothing behind it. Sends succeed
// immediately and discard the value; receives never produce a value.
//
// It is the neutral leg of a merge: Merge(c, Dummy[T]()) receives exactly
// what c receives, and sends to c plus a no-op.
type DummyChannel[T any] struct{}

// Dummy returns a [DummyChannel].
func Dummy[T any]() DummyChannel[T] {
	return DummyChannel[T]{}
}

// Send discards v and returns nil, even if ctx is already done.
func (DummyChannel[T]) Send(context.Context, T) error {
	return nil
}

// Recv blocks until ctx is done and returns its error.
func (DummyChannel[T]) Recv(ctx context.Context) (T, error) {
	<-ctx.Done()
	var zero T
	return zero, ctx.Err()
}
