package asynch

import "context"

// Send applies adapter to v and, if it yields a value, sends that value on
// s. If adapter reports false, Send returns nil without touching s.
func Send[E, I any](ctx context.Context, s Sender[I], v E, adapter func(E) (I, bool)) error {
	x, ok := adapter(v)
	if !ok {
		return nil
	}
	return s.Send(ctx, x)
}

// Recv receives from r until adapter accepts a value and returns the
// adapted result. Rejected values are consumed and discarded. There is no
// bound on the number of rejected values; Recv returns early only if r
// fails, typically because ctx is done.
func Recv[I, E any](ctx context.Context, r Receiver[I], adapter func(I) (E, bool)) (E, error) {
	for {
		v, err := r.Recv(ctx)
		if err != nil {
			var zero E
			return zero, err
		}
		if x, ok := adapter(v); ok {
			return x, nil
		}
	}
}

// SendBoth sends a clone of v to first, waits for it to be accepted, then
// sends v to second. second is never attempted before first has accepted,
// and is not attempted at all if first fails. Failures are wrapped in a
// [*LegError].
func SendBoth[T any](ctx context.Context, first, second Sender[T], v T) error {
	if err := first.Send(ctx, clone(v)); err != nil {
		return &LegError{Side: FirstSide, Err: err}
	}
	if err := second.Send(ctx, v); err != nil {
		return &LegError{Side: SecondSide, Err: err}
	}
	return nil
}

// RecvBoth races a receive on first against a receive on second and
// returns whichever value arrives first.
//
// If the losing receive also consumed a value before it observed
// cancellation, that value is passed to onLate. A nil onLate discards it,
// which loses a message; callers that need every message should hold it
// and return it from their next receive, as [MergedReceiver] does.
func RecvBoth[T any](ctx context.Context, first, second Receiver[T], onLate func(T)) (T, error) {
	var opts []SelectOption[T, T]
	if onLate != nil {
		opts = append(opts, OnLate(func(late Either[T, T]) {
			onLate(Unify(late))
		}))
	}

	e, err := Select(ctx, first.Recv, second.Recv, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Unify(e), nil
}
