package observe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baxromumarov/asynch"
)

const (
	opSend = "send"
	opRecv = "recv"
)

// Observed is an [asynch.Channel] that logs and measures every operation
// on the channel it wraps.
type Observed[T any] struct {
	inner asynch.Channel[T]
	cfg   config
}

var _ asynch.Channel[int] = (*Observed[int])(nil)

// Observe wraps ch. Each observed channel gets a random identifier unless
// [WithID] is given.
//
// Observe panics if ch is nil.
func Observe[T any](ch asynch.Channel[T], opts ...Option) *Observed[T] {
	if ch == nil {
		panic("observe: Observe requires a channel")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == uuid.Nil {
		cfg.id = uuid.New()
	}
	cfg.logger = cfg.logger.With().
		Str("channel", cfg.name).
		Str("id", cfg.id.String()).
		Logger()

	return &Observed[T]{inner: ch, cfg: cfg}
}

// Send forwards to the wrapped channel.
func (o *Observed[T]) Send(ctx context.Context, v T) error {
	start := o.begin(opSend)
	err := o.inner.Send(ctx, v)
	o.end(opSend, start, err)
	return err
}

// Recv forwards to the wrapped channel.
func (o *Observed[T]) Recv(ctx context.Context) (T, error) {
	start := o.begin(opRecv)
	v, err := o.inner.Recv(ctx)
	o.end(opRecv, start, err)
	return v, err
}

// Name returns the channel label.
func (o *Observed[T]) Name() string { return o.cfg.name }

// ID returns the channel identifier.
func (o *Observed[T]) ID() uuid.UUID { return o.cfg.id }

// Inner returns the wrapped channel.
func (o *Observed[T]) Inner() asynch.Channel[T] { return o.inner }

func (o *Observed[T]) begin(op string) time.Time {
	o.cfg.metrics.begin(o.cfg.name, op)
	return time.Now()
}

func (o *Observed[T]) end(op string, start time.Time, err error) {
	d := time.Since(start)
	outcome := classify(err)
	o.cfg.metrics.end(o.cfg.name, op, outcome, d)

	var ev *zerolog.Event
	if outcome == OutcomeError {
		ev = o.cfg.logger.Warn().Err(err)
	} else {
		ev = o.cfg.logger.Debug()
		if err != nil {
			ev = ev.Str("reason", err.Error())
		}
	}
	ev.Str("op", op).
		Str("outcome", outcome).
		Dur("duration", d).
		Msg("channel op")
}

func classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
