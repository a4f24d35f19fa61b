package asynchtest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/asynch"
)

// Sequence hands out strictly increasing numbers. Spies sharing a
// Sequence stamp their records from a single clock.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence returns a Sequence starting at 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next number.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Record is one value accepted by [Spy.Send].
type Record[T any] struct {
	Seq   uint64
	Value T
}

type spyConfig struct {
	seq       *Sequence
	loopback  bool
	sendDelay time.Duration
}

// SpyOption configures a [Spy].
type SpyOption func(*spyConfig)

// WithSequence stamps records from seq instead of a private sequence.
func WithSequence(seq *Sequence) SpyOption {
	return func(c *spyConfig) {
		c.seq = seq
	}
}

// WithLoopback makes every accepted send available to Recv, as if the
// spy were a mailbox.
func WithLoopback() SpyOption {
	return func(c *spyConfig) {
		c.loopback = true
	}
}

// WithSendDelay makes every Send block for d before it accepts the value.
// A Send abandoned during the delay records nothing.
func WithSendDelay(d time.Duration) SpyOption {
	return func(c *spyConfig) {
		c.sendDelay = d
	}
}

// Spy is an [asynch.Channel] that records sends and serves receives from
// values supplied with [Spy.Feed]. It is safe for concurrent use and
// satisfies the cancellation contract.
type Spy[T any] struct {
	cfg spyConfig

	sendCalls atomic.Int64
	recvCalls atomic.Int64

	mu       sync.Mutex
	sent     []Record[T]
	queue    []T
	consumed int
	wake     chan struct{} // closed and replaced whenever queue grows
}

var _ asynch.Channel[int] = (*Spy[int])(nil)

// NewSpy returns an empty Spy.
func NewSpy[T any](opts ...SpyOption) *Spy[T] {
	var cfg spyConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.seq == nil {
		cfg.seq = NewSequence()
	}
	return &Spy[T]{cfg: cfg, wake: make(chan struct{})}
}

// Send records v, after the configured delay if any.
func (s *Spy[T]) Send(ctx context.Context, v T) error {
	s.sendCalls.Add(1)

	if s.cfg.sendDelay > 0 {
		timer := time.NewTimer(s.cfg.sendDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	s.sent = append(s.sent, Record[T]{Seq: s.cfg.seq.Next(), Value: v})
	if s.cfg.loopback {
		s.pushLocked(v)
	}
	s.mu.Unlock()
	return nil
}

// Recv returns the oldest fed value, blocking until one is available or
// ctx is done. A value is only consumed when Recv returns it.
func (s *Spy[T]) Recv(ctx context.Context) (T, error) {
	s.recvCalls.Add(1)

	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			v := s.queue[0]
			var zero T
			s.queue[0] = zero
			s.queue = s.queue[1:]
			s.consumed++
			s.mu.Unlock()
			return v, nil
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-wake:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Feed queues vs for Recv, in order.
func (s *Spy[T]) Feed(vs ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vs {
		s.pushLocked(v)
	}
}

func (s *Spy[T]) pushLocked(v T) {
	s.queue = append(s.queue, v)
	close(s.wake)
	s.wake = make(chan struct{})
}

// Sent returns a copy of every record accepted so far.
func (s *Spy[T]) Sent() []Record[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record[T], len(s.sent))
	copy(out, s.sent)
	return out
}

// Values returns the values accepted so far, in order.
func (s *Spy[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.sent))
	for i, r := range s.sent {
		out[i] = r.Value
	}
	return out
}

// SendCalls returns how many times Send was called, including calls that
// were abandoned.
func (s *Spy[T]) SendCalls() int { return int(s.sendCalls.Load()) }

// RecvCalls returns how many times Recv was called, including calls that
// were abandoned.
func (s *Spy[T]) RecvCalls() int { return int(s.recvCalls.Load()) }

// Consumed returns how many fed values Recv has returned.
func (s *Spy[T]) Consumed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consumed
}

// Pending returns how many fed values are waiting for Recv.
func (s *Spy[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
