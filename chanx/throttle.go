package chanx

import (
	"context"
	"time"

	"github.com/baxromumarov/asynch"
)

// Throttled rate-limits an [asynch.Sender] to at most n sends per
// duration. It uses a token-bucket approach: n tokens are available
// initially, and one token is replenished every per/n interval.
//
// Like any Sender, a Throttled must not be used by two goroutines at once.
type Throttled[T any] struct {
	inner    asynch.Sender[T]
	n        int
	interval time.Duration

	tokens int
	last   time.Time // time of the last refill
}

// Throttle returns a [Throttled] sender over inner.
//
// Throttle panics if inner is nil, n is not positive or per is not
// positive.
func Throttle[T any](inner asynch.Sender[T], n int, per time.Duration) *Throttled[T] {
	if inner == nil {
		panic("chanx: Throttle requires a sender")
	}
	if n <= 0 {
		panic("chanx: Throttle requires n > 0")
	}
	if per <= 0 {
		panic("chanx: Throttle requires per > 0")
	}

	interval := per / time.Duration(n)
	if interval <= 0 {
		interval = 1
	}
	return &Throttled[T]{
		inner:    inner,
		n:        n,
		interval: interval,
		tokens:   n, // start with full bucket for initial burst
		last:     time.Now(),
	}
}

// Send waits for a token and then sends v on the inner sender. If ctx is
// done while waiting, or the inner send fails, the token is returned and
// the error is reported.
func (t *Throttled[T]) Send(ctx context.Context, v T) error {
	t.refill(time.Now())

	if t.tokens == 0 {
		// Wait for a token refill.
		if _, err := waitTimer(ctx, time.Until(t.last.Add(t.interval))); err != nil {
			return err
		}
		t.refill(time.Now())
		if t.tokens == 0 {
			t.tokens = 1
			t.last = t.last.Add(t.interval)
		}
	}

	t.tokens--
	if err := t.inner.Send(ctx, v); err != nil {
		t.tokens++
		return err
	}
	return nil
}

func (t *Throttled[T]) refill(now time.Time) {
	if t.tokens >= t.n {
		t.last = now
		return
	}
	add := int(now.Sub(t.last) / t.interval)
	if add <= 0 {
		return
	}
	t.tokens = min(t.n, t.tokens+add)
	t.last = t.last.Add(time.Duration(add) * t.interval)
}
