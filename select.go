package asynch

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc"
)

// errRaceLost is the cancellation cause seen by the losing operation.
var errRaceLost = errors.New("asynch: lost race")

// errLegPanicked is the cancellation cause seen by the surviving operation
// when the other one panicked.
var errLegPanicked = errors.New("asynch: other leg panicked")

type selectConfig[A, B any] struct {
	onLate func(Either[A, B])
}

// SelectOption configures a single [Select] call.
type SelectOption[A, B any] func(*selectConfig[A, B])

// OnLate registers fn to receive the loser's value when the losing
// operation had already succeeded by the time it returned. Without it such
// a value is discarded. fn runs in the caller's goroutine before Select
// returns.
func OnLate[A, B any](fn func(late Either[A, B])) SelectOption[A, B] {
	return func(c *selectConfig[A, B]) {
		c.onLate = fn
	}
}

type outcome[T any] struct {
	val      T
	err      error
	returned bool // false if the operation panicked
}

func (o outcome[T]) ok() bool { return o.returned && o.err == nil }

// Select runs first and second concurrently and returns the result of the
// first one to succeed, tagged with its [Side]. The other operation's
// context is cancelled immediately and Select waits for it to return, so
// no goroutine started by Select outlives the call.
//
// If both operations have succeeded by the time a winner is picked, first
// wins. This is deterministic but not a fairness policy; callers must not
// rely on it when both legs can legitimately be ready together.
//
// An operation that returns an error does not win; Select keeps waiting
// for the other one. If both fail, Select returns ctx.Err() when ctx is
// done, otherwise both errors joined, each wrapped in a [*LegError].
//
// A panic in either operation cancels the other and is re-raised in the
// caller once both have returned.
//
// Select panics if first or second is nil.
func Select[A, B any](
	ctx context.Context,
	first func(context.Context) (A, error),
	second func(context.Context) (B, error),
	opts ...SelectOption[A, B],
) (Either[A, B], error) {
	if first == nil || second == nil {
		panic("asynch: Select operations must not be nil")
	}

	var cfg selectConfig[A, B]
	for _, opt := range opts {
		opt(&cfg)
	}

	raceCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	// Buffered so a leg never blocks on publishing its outcome.
	firstCh := make(chan outcome[A], 1)
	secondCh := make(chan outcome[B], 1)

	wg := conc.NewWaitGroup()
	wg.Go(func() { runLeg(raceCtx, first, firstCh) })
	wg.Go(func() { runLeg(raceCtx, second, secondCh) })

	var (
		a       outcome[A]
		b       outcome[B]
		gotA    bool
		gotB    bool
		decided bool
		winner  Side
	)

	for !gotA || !gotB {
		select {
		case a = <-firstCh:
			gotA = true
		case b = <-secondCh:
			gotB = true
		}
		if decided {
			continue
		}

		switch {
		case gotA && a.ok():
			decided, winner = true, FirstSide
			cancel(errRaceLost)
		case gotB && b.ok():
			// Poll first before conceding: the runtime picks randomly
			// among ready select cases.
			if !gotA {
				select {
				case a = <-firstCh:
					gotA = true
				default:
				}
			}
			winner = SecondSide
			if gotA && a.ok() {
				winner = FirstSide
			}
			decided = true
			cancel(errRaceLost)
		case (gotA && !a.returned) || (gotB && !b.returned):
			cancel(errLegPanicked)
		}
	}

	// Re-raises a leg panic here, in the caller's goroutine.
	wg.Wait()

	if decided {
		if winner == FirstSide {
			if b.ok() && cfg.onLate != nil {
				cfg.onLate(NewSecond[A](b.val))
			}
			return NewFirst[A, B](a.val), nil
		}
		if a.ok() && cfg.onLate != nil {
			cfg.onLate(NewFirst[A, B](a.val))
		}
		return NewSecond[A](b.val), nil
	}

	var zero Either[A, B]
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, errors.Join(
		&LegError{Side: FirstSide, Err: a.err},
		&LegError{Side: SecondSide, Err: b.err},
	)
}

func runLeg[T any](ctx context.Context, fn func(context.Context) (T, error), out chan<- outcome[T]) {
	var o outcome[T]
	// Deferred so the outcome is published even while a panic unwinds.
	defer func() { out <- o }()
	o.val, o.err = fn(ctx)
	o.returned = true
}
