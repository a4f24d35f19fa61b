package chanx

import (
	"context"
	"time"

	"github.com/baxromumarov/asynch"
)

// Timer is an [asynch.Receiver] whose every Recv completes a fixed
// duration after it was called, yielding the time it fired.
//
// Racing an operation against a Timer bounds how long the operation may
// take:
//
//	e, err := asynch.Select(ctx, mailbox.Recv, chanx.After(time.Second).Recv)
//
// An abandoned Recv stops its timer and leaves nothing behind.
type Timer struct {
	d time.Duration
}

var _ asynch.Receiver[time.Time] = (*Timer)(nil)

// After returns a [Timer] firing d after each Recv. A non-positive d
// fires immediately.
func After(d time.Duration) *Timer {
	return &Timer{d: d}
}

// Recv blocks for the timer's duration or until ctx is done.
func (t *Timer) Recv(ctx context.Context) (time.Time, error) {
	if t.d <= 0 {
		return time.Now(), nil
	}
	return waitTimer(ctx, t.d)
}

// Deadline is an [asynch.Receiver] that completes once wall-clock time
// reaches a fixed instant, and immediately on every Recv after that.
type Deadline struct {
	at time.Time
}

var _ asynch.Receiver[time.Time] = (*Deadline)(nil)

// Until returns a [Deadline] for at.
func Until(at time.Time) *Deadline {
	return &Deadline{at: at}
}

// Recv blocks until the deadline passes or ctx is done.
func (d *Deadline) Recv(ctx context.Context) (time.Time, error) {
	wait := time.Until(d.at)
	if wait <= 0 {
		return time.Now(), nil
	}
	return waitTimer(ctx, wait)
}

// At returns the deadline instant.
func (d *Deadline) At() time.Time { return d.at }

func waitTimer(ctx context.Context, d time.Duration) (time.Time, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case now := <-timer.C:
		return now, nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}
