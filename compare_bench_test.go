package asynch_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/asynch"
)

// ─────────────────────────────────────────────────────────────────────────────
// Race two operations, one immediate and one that waits for cancellation,
// and return the winner after both have exited.
// ─────────────────────────────────────────────────────────────────────────────

var errDone = errors.New("done")

func fast(context.Context) (int, error) { return 1, nil }

func slow(ctx context.Context) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func BenchmarkRace_Native(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		out := make(chan int, 2)
		var wg sync.WaitGroup
		for _, fn := range []func(context.Context) (int, error){fast, slow} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if v, err := fn(ctx); err == nil {
					out <- v
				}
			}()
		}
		<-out
		cancel()
		wg.Wait()
	}
}

func BenchmarkRace_Errgroup(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g, ctx := errgroup.WithContext(context.Background())
		var winner int
		var once sync.Once
		for _, fn := range []func(context.Context) (int, error){fast, slow} {
			g.Go(func() error {
				v, err := fn(ctx)
				if err != nil {
					return err
				}
				once.Do(func() { winner = v })
				// Cancels the group's context for the other operation.
				return errDone
			})
		}
		_ = g.Wait()
		_ = winner
	}
}

func BenchmarkRace_Conc(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		out := make(chan int, 2)
		wg := conc.NewWaitGroup()
		for _, fn := range []func(context.Context) (int, error){fast, slow} {
			wg.Go(func() {
				if v, err := fn(ctx); err == nil {
					out <- v
					cancel()
				}
			})
		}
		wg.Wait()
		cancel()
		<-out
	}
}

func BenchmarkRace_Select(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = asynch.Select(context.Background(), fast, slow)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Receive through N-way merges of Go channels.
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkMergeDepth(b *testing.B) {
	for _, n := range []int{2, 4, 8} {
		b.Run(fmt.Sprintf("legs=%d", n), func(b *testing.B) {
			ready := make(chan int, 1)
			var ch asynch.Channel[int] = chanFunc(ready)
			for range n - 1 {
				ch = asynch.Merge[int](asynch.Dummy[int](), ch)
			}
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ready <- i
				if _, err := ch.Recv(ctx); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// chanFunc exposes a buffered Go channel as an asynch.Channel without the
// chanx dependency.
func chanFunc(ch chan int) asynch.Channel[int] {
	return struct {
		asynch.SenderFunc[int]
		asynch.ReceiverFunc[int]
	}{
		SenderFunc: func(ctx context.Context, v int) error {
			select {
			case ch <- v:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		ReceiverFunc: func(ctx context.Context) (int, error) {
			select {
			case v := <-ch:
				return v, nil
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		},
	}
}
