package chanx

import (
	"context"
	"errors"

	"github.com/baxromumarov/asynch"
)

// Drain receives and discards values from r until Recv fails, and returns
// how many values were discarded. Use this to unblock a producer during
// shutdown.
func Drain[T any](ctx context.Context, r asynch.Receiver[T]) int {
	n := 0
	for {
		if _, err := r.Recv(ctx); err != nil {
			return n
		}
		n++
	}
}

// Pump forwards values from r to s until one of them fails, and returns
// the number of values forwarded. A receiver reporting [ErrClosed] ends
// the pump cleanly with a nil error; any other failure is returned.
//
// A value received but rejected by s is lost.
func Pump[T any](ctx context.Context, r asynch.Receiver[T], s asynch.Sender[T]) (int, error) {
	n := 0
	for {
		v, err := r.Recv(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return n, nil
			}
			return n, err
		}
		if err := s.Send(ctx, v); err != nil {
			return n, err
		}
		n++
	}
}
