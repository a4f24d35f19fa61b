package chanx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/asynch"
	"github.com/baxromumarov/asynch/asynchtest"
)

func TestDrain_ClosedMailbox(t *testing.T) {
	c := NewClosable[int](3)
	require.NoError(t, c.TrySend(1))
	require.NoError(t, c.TrySend(2))
	require.NoError(t, c.TrySend(3))
	c.Close()

	assert.Equal(t, 3, Drain[int](context.Background(), c))
	assert.Equal(t, 0, c.Len())
}

func TestDrain_StopsOnContext(t *testing.T) {
	c := NewClosable[int](3)
	require.NoError(t, c.TrySend(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Equal(t, 1, Drain[int](ctx, c))
}

func TestPump_ForwardsUntilClosed(t *testing.T) {
	src := NewClosable[int](5)
	for i := 1; i <= 5; i++ {
		require.NoError(t, src.TrySend(i))
	}
	src.Close()

	dst := asynchtest.NewSpy[int]()
	n, err := Pump[int](context.Background(), src, dst)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, dst.Values())
}

func TestPump_ThroughAdapter(t *testing.T) {
	src := NewClosable[int](4)
	for i := 1; i <= 4; i++ {
		require.NoError(t, src.TrySend(i))
	}
	src.Close()

	dst := asynchtest.NewSpy[string]()
	evens := asynch.AdaptReceiver[int](src, func(v int) (int, bool) { return v, v%2 == 0 })
	labels := asynch.AdaptSender[int](dst, func(v int) (string, bool) {
		return string(rune('a' + v)), true
	})

	n, err := Pump[int](context.Background(), evens, labels)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"c", "e"}, dst.Values())
}

func TestPump_SendFailure(t *testing.T) {
	src := NewClosable[int](2)
	require.NoError(t, src.TrySend(1))
	require.NoError(t, src.TrySend(2))

	boom := errors.New("boom")
	dst := asynch.SenderFunc[int](func(context.Context, int) error { return boom })

	n, err := Pump[int](context.Background(), src, dst)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, n)
}

func TestPump_ContextCanceled(t *testing.T) {
	src := NewClosable[int](1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	n, err := Pump[int](ctx, src, asynch.Dummy[int]())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, n)
}
