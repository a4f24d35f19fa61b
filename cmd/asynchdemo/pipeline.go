package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/baxromumarov/asynch"
	"github.com/baxromumarov/asynch/chanx"
	"github.com/baxromumarov/asynch/observe"
)

// Summary counts what a pipeline run moved.
type Summary struct {
	Sent     int
	Received int
	Distinct int
}

// event is what the consumer sees: an accepted value or an idle tick.
type event struct {
	value int
	idle  bool
}

var errIdle = errors.New("consumer idle")

// valueFilter returns the adapter that selects and scales received values.
func valueFilter(filter string, scale int) (func(int) (event, bool), error) {
	var accept func(int) bool
	switch filter {
	case "all", "":
		accept = func(int) bool { return true }
	case "even":
		accept = func(v int) bool { return v%2 == 0 }
	case "odd":
		accept = func(v int) bool { return v%2 != 0 }
	default:
		return nil, fmt.Errorf("config: unknown filter %q", filter)
	}

	return func(v int) (event, bool) {
		if !accept(v) {
			return event{}, false
		}
		return event{value: v * scale}, true
	}, nil
}

// runPipeline sends 1..cfg.Count through a merge of cfg.Legs mailboxes, so
// every mailbox holds every value, and receives from the same merge until
// nothing arrives for cfg.Idle.
func runPipeline(ctx context.Context, cfg Config, log zerolog.Logger, m *observe.Metrics) (Summary, error) {
	accept, err := valueFilter(cfg.Filter, cfg.Scale)
	if err != nil {
		return Summary{}, err
	}

	mailboxes := make([]*chanx.Closable[int], cfg.Legs)
	legs := make([]asynch.Channel[int], cfg.Legs)
	for i := range mailboxes {
		mailboxes[i] = chanx.NewClosable[int](cfg.Buffer)
		legs[i] = observe.Observe[int](mailboxes[i],
			observe.WithName(fmt.Sprintf("leg-%d", i)),
			observe.WithLogger(log),
			observe.WithMetrics(m),
		)
	}

	merged := asynch.Merge(legs[0], legs[1])
	for _, leg := range legs[2:] {
		merged = merged.And(leg)
	}

	var out asynch.Sender[int] = merged
	if cfg.Rate > 0 {
		out = chanx.Throttle[int](merged, cfg.Rate, time.Second)
	}

	values := asynch.AdaptReceiver[int, event](merged, accept)
	ticks := asynch.AdaptReceiver[time.Time, event](chanx.After(cfg.Idle), func(time.Time) (event, bool) {
		return event{idle: true}, true
	})
	in := asynch.MergeReceivers[event](values, ticks)

	consumerCtx, consumerDone := context.WithCancel(ctx)
	defer consumerDone()

	var sum Summary
	seen := make(map[int]struct{})

	produced := make(chan error, 1)
	go func() {
		produced <- produce(consumerCtx, out, cfg.Count, &sum.Sent)
		for _, mb := range mailboxes {
			mb.Close()
		}
	}()

	sink := asynch.SenderFunc[event](func(_ context.Context, e event) error {
		if e.idle {
			return errIdle
		}
		sum.Received++
		seen[e.value] = struct{}{}
		log.Debug().Int("value", e.value).Msg("received")
		return nil
	})

	_, err = chanx.Pump[event](ctx, in, sink)
	consumerDone()
	perr := <-produced
	sum.Distinct = len(seen)

	if err != nil && !errors.Is(err, errIdle) {
		return sum, fmt.Errorf("consume: %w", err)
	}
	if perr != nil && ctx.Err() == nil && sum.Sent < cfg.Count {
		log.Warn().
			Int("sent", sum.Sent).
			Int("count", cfg.Count).
			Msg("consumer went idle before the producer finished")
	}
	return sum, nil
}

func produce(ctx context.Context, out asynch.Sender[int], count int, sent *int) error {
	for i := 1; i <= count; i++ {
		if err := out.Send(ctx, i); err != nil {
			return fmt.Errorf("send %d: %w", i, err)
		}
		*sent++
	}
	return nil
}
