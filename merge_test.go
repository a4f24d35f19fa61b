package asynch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/asynch"
	"github.com/baxromumarov/asynch/asynchtest"
)

type frame struct {
	data []byte
}

func (f frame) Clone() frame {
	return frame{data: append([]byte(nil), f.data...)}
}

func TestMerge_SendOrder(t *testing.T) {
	seq := asynchtest.NewSequence()
	// The delay on a gives b every chance to go first if ordering is broken.
	a := asynchtest.NewSpy[int](asynchtest.WithSequence(seq), asynchtest.WithSendDelay(10*time.Millisecond))
	b := asynchtest.NewSpy[int](asynchtest.WithSequence(seq))

	require.NoError(t, asynch.Merge[int](a, b).Send(context.Background(), 1))

	require.Len(t, a.Sent(), 1)
	require.Len(t, b.Sent(), 1)
	assert.Equal(t, 1, a.Sent()[0].Value)
	assert.Equal(t, 1, b.Sent()[0].Value)
	assert.Less(t, a.Sent()[0].Seq, b.Sent()[0].Seq)
}

func TestMerge_SendClonesForFirstLeg(t *testing.T) {
	a := asynchtest.NewSpy[frame]()
	b := asynchtest.NewSpy[frame]()

	orig := frame{data: []byte("abc")}
	require.NoError(t, asynch.Merge[frame](a, b).Send(context.Background(), orig))

	got := a.Values()[0]
	got.data[0] = 'X'

	assert.Equal(t, "abc", string(b.Values()[0].data))
	assert.Equal(t, "abc", string(orig.data))
}

func TestMerge_FirstSendFailureSkipsSecond(t *testing.T) {
	refused := errors.New("refused")
	a := asynch.SenderFunc[int](func(context.Context, int) error { return refused })
	b := asynchtest.NewSpy[int]()

	err := asynch.MergeSenders[int](a, b).Send(context.Background(), 1)
	require.ErrorIs(t, err, refused)

	side, ok := asynch.SideOf(err)
	assert.True(t, ok)
	assert.Equal(t, asynch.FirstSide, side)
	assert.Equal(t, 0, b.SendCalls())
}

func TestMerge_SecondSendFailure(t *testing.T) {
	refused := errors.New("refused")
	a := asynchtest.NewSpy[int]()
	b := asynch.SenderFunc[int](func(context.Context, int) error { return refused })

	err := asynch.MergeSenders[int](a, b).Send(context.Background(), 1)
	require.ErrorIs(t, err, refused)

	side, _ := asynch.SideOf(err)
	assert.Equal(t, asynch.SecondSide, side)
	assert.Equal(t, []int{1}, a.Values())
}

func TestMerge_CanceledSendNeverReachesSecond(t *testing.T) {
	a := asynchtest.NewSpy[int](asynchtest.WithSendDelay(time.Second))
	b := asynchtest.NewSpy[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := asynch.Merge[int](a, b).Send(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, a.Values())
	assert.Equal(t, 0, b.SendCalls())
}

func TestMerge_RecvReturnsReadyLeg(t *testing.T) {
	a := asynchtest.NewSpy[string]()
	b := asynchtest.NewSpy[string]()
	b.Feed("m1")

	v, err := asynch.Merge[string](a, b).Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m1", v)
	assert.Equal(t, 0, a.Consumed())
	assert.Equal(t, 1, b.Consumed())
}

func TestMerge_DummyIsNeutral(t *testing.T) {
	ctx := context.Background()
	spy := asynchtest.NewSpy[int]()
	m := asynch.Merge[int](spy, asynch.Dummy[int]())

	require.NoError(t, m.Send(ctx, 5))
	assert.Equal(t, []int{5}, spy.Values())

	spy.Feed(1, 2, 3)
	for want := 1; want <= 3; want++ {
		v, err := m.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
}

func TestMerge_HoldsLateValue(t *testing.T) {
	var aCalls, bCalls atomic.Int32
	a := asynch.ReceiverFunc[int](func(context.Context) (int, error) {
		aCalls.Add(1)
		return 1, nil
	})
	b := asynch.ReceiverFunc[int](func(context.Context) (int, error) {
		bCalls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return 2, nil
	})
	m := asynch.MergeReceivers[int](a, b)
	ctx := context.Background()

	v1, err := m.Recv(ctx)
	require.NoError(t, err)
	v2, err := m.Recv(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2, "value consumed by the losing leg must be returned next")
	assert.Equal(t, int32(1), aCalls.Load())
	assert.Equal(t, int32(1), bCalls.Load())
}

func TestMerge_AndBuildsNWay(t *testing.T) {
	ctx := context.Background()
	seq := asynchtest.NewSequence()
	a := asynchtest.NewSpy[int](asynchtest.WithSequence(seq))
	b := asynchtest.NewSpy[int](asynchtest.WithSequence(seq))
	c := asynchtest.NewSpy[int](asynchtest.WithSequence(seq))

	m := asynch.Merge[int](a, b).And(c)
	require.NoError(t, m.Send(ctx, 9))

	for _, s := range []*asynchtest.Spy[int]{a, b, c} {
		assert.Equal(t, []int{9}, s.Values())
	}
	assert.Less(t, a.Sent()[0].Seq, b.Sent()[0].Seq)
	assert.Less(t, b.Sent()[0].Seq, c.Sent()[0].Seq)

	c.Feed(3)
	v, err := m.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestMerge_NWayReceivesInArrivalOrder(t *testing.T) {
	perms := [][3]int{
		{0, 1, 2}, {0, 2, 1},
		{1, 0, 2}, {1, 2, 0},
		{2, 0, 1}, {2, 1, 0},
	}

	for _, perm := range perms {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		legs := []*asynchtest.Spy[int]{
			asynchtest.NewSpy[int](),
			asynchtest.NewSpy[int](),
			asynchtest.NewSpy[int](),
		}
		m := asynch.Merge[int](legs[0], legs[1]).And(legs[2])

		go func() {
			for i, leg := range perm {
				time.Sleep(5 * time.Millisecond)
				legs[leg].Feed(i + 1)
			}
		}()

		var got []int
		for range 3 {
			v, err := m.Recv(ctx)
			require.NoError(t, err)
			got = append(got, v)
		}
		cancel()

		assert.Equal(t, []int{1, 2, 3}, got, "perm %v", perm)
	}
}

func TestMergeSenders_And(t *testing.T) {
	a := asynchtest.NewSpy[int]()
	b := asynchtest.NewSpy[int]()
	c := asynchtest.NewSpy[int]()

	s := asynch.MergeSenders[int](a, b).And(c)
	require.NoError(t, s.Send(context.Background(), 4))

	assert.Equal(t, []int{4}, a.Values())
	assert.Equal(t, []int{4}, b.Values())
	assert.Equal(t, []int{4}, c.Values())
}

func TestMergeReceivers_And(t *testing.T) {
	a := asynchtest.NewSpy[int]()
	b := asynchtest.NewSpy[int]()
	c := asynchtest.NewSpy[int]()
	b.Feed(8)

	r := asynch.MergeReceivers[int](a, asynch.Dummy[int]()).And(b).And(c)
	v, err := r.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, v)
}

func TestMerge_RecvCanceledConsumesNothing(t *testing.T) {
	a := asynchtest.NewSpy[int]()
	b := asynchtest.NewSpy[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := asynch.Merge[int](a, b).Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, a.Consumed()+b.Consumed())
}

func TestMerge_Conformance(t *testing.T) {
	asynchtest.RunChannelSuite(t, "merge-with-dummy", func(t *testing.T) asynch.Channel[int] {
		return asynch.Merge[int](asynchtest.NewSpy[int](asynchtest.WithLoopback()), asynch.Dummy[int]())
	})
}

func TestMerge_NilPanics(t *testing.T) {
	spy := asynchtest.NewSpy[int]()
	assert.Panics(t, func() { asynch.Merge[int](spy, nil) })
	assert.Panics(t, func() { asynch.MergeSenders[int](nil, spy) })
	assert.Panics(t, func() { asynch.MergeReceivers[int](spy, nil) })
}
