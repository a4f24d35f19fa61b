package asynch

import "context"

// Sender is the capability to hand off one value at a time.
//
// Send blocks until v is accepted or ctx is done. A conforming Sender
// returns nil only if v was delivered, and returns the context error only
// if nothing was delivered. Callers must not issue a second Send on the
// same Sender while one is still blocked.
type Sender[T any] interface {
	Send(ctx context.Context, v T) error
}

// Receiver is the capability to obtain one value at a time.
//
// Recv blocks until a value is available or ctx is done. If Recv consumed
// a value it must return it, even when ctx was cancelled concurrently; if
// it returns the context error it must not have consumed anything. This
// is what makes a Receiver safe to race with [Select] and [Merge].
// Callers must not issue a second Recv on the same Receiver while one is
// still blocked.
type Receiver[T any] interface {
	Recv(ctx context.Context) (T, error)
}

// Channel is both a [Sender] and a [Receiver] of the same type.
type Channel[T any] interface {
	Sender[T]
	Receiver[T]
}

// SenderFunc adapts an ordinary function to the [Sender] interface.
type SenderFunc[T any] func(ctx context.Context, v T) error

// Send calls f(ctx, v).
func (f SenderFunc[T]) Send(ctx context.Context, v T) error {
	return f(ctx, v)
}

// ReceiverFunc adapts an ordinary function to the [Receiver] interface.
type ReceiverFunc[T any] func(ctx context.Context) (T, error)

// Recv calls f(ctx).
func (f ReceiverFunc[T]) Recv(ctx context.Context) (T, error) {
	return f(ctx)
}

// Cloner is implemented by values that must be deep-copied when a
// [MergedSender] delivers them to more than one leg.
type Cloner[T any] interface {
	Clone() T
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
