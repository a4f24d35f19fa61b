// Package observe wraps an [asynch.Channel] with structured logging and
// Prometheus metrics.
//
// An observed channel behaves exactly like the channel it wraps: every
// Send and Recv is forwarded unchanged and its result returned unchanged.
// Around each call it records the outcome, the duration and the number of
// calls in flight.
//
//	reg := prometheus.NewRegistry()
//	m := observe.NewMetrics(reg, "orders")
//
//	ch := observe.Observe[Order](mailbox,
//		observe.WithName("primary"),
//		observe.WithLogger(log),
//		observe.WithMetrics(m),
//	)
//
// Cancellation is reported as its own outcome and logged at debug level:
// the losing side of a race is cancelled on every call, so it is routine
// rather than a failure.
package observe
