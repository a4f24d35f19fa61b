package asynch

import "context"

// AdapterChannel wraps a [Channel] with a function that filters or
// rewrites every value crossing it, in both directions.
//
// The adapter must be free of per-call state: Recv may call it any number
// of times for a single returned value.
type AdapterChannel[T any] struct {
	inner   Channel[T]
	adapter func(T) (T, bool)
}

// Adapt returns an [AdapterChannel] over inner.
//
// On Send, adapter decides whether (and as what) the value reaches inner;
// a false result drops it silently. On Recv, values from inner that
// adapter rejects are discarded and the next one is received.
//
// Adapt panics if inner or adapter is nil.
func Adapt[T any](inner Channel[T], adapter func(T) (T, bool)) *AdapterChannel[T] {
	if inner == nil || adapter == nil {
		panic("asynch: Adapt requires a channel and an adapter")
	}
	return &AdapterChannel[T]{inner: inner, adapter: adapter}
}

// Send adapts v and forwards it to the inner channel, or drops it.
func (a *AdapterChannel[T]) Send(ctx context.Context, v T) error {
	return Send(ctx, a.inner, v, a.adapter)
}

// Recv returns the next value from the inner channel the adapter accepts.
func (a *AdapterChannel[T]) Recv(ctx context.Context) (T, error) {
	return Recv(ctx, a.inner, a.adapter)
}

// Inner returns the wrapped channel.
func (a *AdapterChannel[T]) Inner() Channel[T] { return a.inner }

// AdapterSender exposes a [Sender] of I as a Sender of E.
type AdapterSender[E, I any] struct {
	inner   Sender[I]
	adapter func(E) (I, bool)
}

// AdaptSender returns an [AdapterSender] that converts each E with adapter
// before sending it to inner. Values the adapter rejects are dropped and
// Send returns nil.
//
// AdaptSender panics if inner or adapter is nil.
func AdaptSender[E, I any](inner Sender[I], adapter func(E) (I, bool)) *AdapterSender[E, I] {
	if inner == nil || adapter == nil {
		panic("asynch: AdaptSender requires a sender and an adapter")
	}
	return &AdapterSender[E, I]{inner: inner, adapter: adapter}
}

func (a *AdapterSender[E, I]) Send(ctx context.Context, v E) error {
	return Send(ctx, a.inner, v, a.adapter)
}

// Inner returns the wrapped sender.
func (a *AdapterSender[E, I]) Inner() Sender[I] { return a.inner }

// AdapterReceiver exposes a [Receiver] of I as a Receiver of E.
type AdapterReceiver[I, E any] struct {
	inner   Receiver[I]
	adapter func(I) (E, bool)
}

// AdaptReceiver returns an [AdapterReceiver] that converts each value from
// inner with adapter, skipping the ones it rejects.
//
// AdaptReceiver panics if inner or adapter is nil.
func AdaptReceiver[I, E any](inner Receiver[I], adapter func(I) (E, bool)) *AdapterReceiver[I, E] {
	if inner == nil || adapter == nil {
		panic("asynch: AdaptReceiver requires a receiver and an adapter")
	}
	return &AdapterReceiver[I, E]{inner: inner, adapter: adapter}
}

func (a *AdapterReceiver[I, E]) Recv(ctx context.Context) (E, error) {
	return Recv(ctx, a.inner, a.adapter)
}

// Inner returns the wrapped receiver.
func (a *AdapterReceiver[I, E]) Inner() Receiver[I] { return a.inner }
