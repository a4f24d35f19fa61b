package asynchtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/asynch"
)

// ChannelFactory creates a fresh, empty channel for one test. Values sent
// on it must come back out of Recv in the order they were sent.
type ChannelFactory func(t *testing.T) asynch.Channel[int]

// ChannelSuite runs a common set of tests against any channel
// implementation. The tests focus on the cancellation contract: an
// abandoned Recv consumes nothing, an abandoned Send delivers nothing,
// and racing a channel never loses a value.
type ChannelSuite struct {
	// Name identifies the implementation being tested.
	Name string

	// New creates a new channel instance.
	New ChannelFactory

	// Skip lists test names to skip for this implementation.
	Skip map[string]string
}

// Run executes the suite.
func (s *ChannelSuite) Run(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, ch asynch.Channel[int])
	}{
		{"FIFO", testFIFO},
		{"RecvCanceled", testRecvCanceled},
		{"AbandonedRecvKeepsValue", testAbandonedRecvKeepsValue},
		{"CanceledSendIsAllOrNothing", testCanceledSendIsAllOrNothing},
		{"MergeWithDummy", testMergeWithDummy},
		{"RaceLosesNothing", testRaceLosesNothing},
	}

	for _, tt := range tests {
		t.Run(s.Name+"/"+tt.name, func(t *testing.T) {
			if reason, ok := s.Skip[tt.name]; ok {
				t.Skip(reason)
			}

			ch := s.New(t)

			tt.fn(t, ch)
		})
	}
}

// RunChannelSuite is shorthand for running a [ChannelSuite] with no skips.
func RunChannelSuite(t *testing.T, name string, factory ChannelFactory) {
	s := &ChannelSuite{Name: name, New: factory}
	s.Run(t)
}

func suiteCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// feed sends 1..n on ch from a separate goroutine and reports the first
// error on the returned channel.
func feed(ctx context.Context, ch asynch.Sender[int], n int) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for i := 1; i <= n; i++ {
			if err := ch.Send(ctx, i); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func testFIFO(t *testing.T, ch asynch.Channel[int]) {
	ctx := suiteCtx(t)
	const n = 10

	errc := feed(ctx, ch, n)

	got := make([]int, 0, n)
	for range n {
		v, err := ch.Recv(ctx)
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, sequence(n), got)
	assert.NoError(t, <-errc)
}

func testRecvCanceled(t *testing.T, ch asynch.Channel[int]) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		_, err := ch.Recv(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Recv did not return after its context was canceled")
	}
}

func testAbandonedRecvKeepsValue(t *testing.T, ch asynch.Channel[int]) {
	ctx := suiteCtx(t)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err := ch.Recv(short)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	errc := feed(ctx, ch, 1)

	v, err := ch.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.NoError(t, <-errc)
}

func testCanceledSendIsAllOrNothing(t *testing.T, ch asynch.Channel[int]) {
	ctx := suiteCtx(t)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	sendErr := ch.Send(canceled, 99)

	probe, stop := context.WithTimeout(ctx, 50*time.Millisecond)
	defer stop()
	v, recvErr := ch.Recv(probe)

	if sendErr == nil {
		require.NoError(t, recvErr, "accepted send must be receivable")
		assert.Equal(t, 99, v)
		return
	}
	assert.ErrorIs(t, sendErr, context.Canceled)
	assert.ErrorIs(t, recvErr, context.DeadlineExceeded, "rejected send must deliver nothing")
}

func testMergeWithDummy(t *testing.T, ch asynch.Channel[int]) {
	ctx := suiteCtx(t)
	const n = 20

	merged := asynch.Merge[int](ch, asynch.Dummy[int]())
	errc := feed(ctx, ch, n)

	got := make([]int, 0, n)
	for range n {
		v, err := merged.Recv(ctx)
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, sequence(n), got)
	assert.NoError(t, <-errc)
}

// testRaceLosesNothing races every receive against a very short timer so
// the channel's Recv is frequently abandoned mid-flight. Values that arrive
// after the timer won are collected through OnLate.
func testRaceLosesNothing(t *testing.T, ch asynch.Channel[int]) {
	ctx := suiteCtx(t)
	const n = 50

	errc := feed(ctx, ch, n)

	tick := func(ctx context.Context) (struct{}, error) {
		timer := time.NewTimer(50 * time.Microsecond)
		defer timer.Stop()
		select {
		case <-timer.C:
			return struct{}{}, nil
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
	}

	got := make([]int, 0, n)
	late := asynch.OnLate(func(e asynch.Either[int, struct{}]) {
		if v, ok := e.First(); ok {
			got = append(got, v)
		}
	})

	for len(got) < n {
		e, err := asynch.Select(ctx, ch.Recv, tick, late)
		require.NoError(t, err)
		if v, ok := e.First(); ok {
			got = append(got, v)
		}
	}

	assert.Equal(t, sequence(n), got)
	assert.NoError(t, <-errc)
}
