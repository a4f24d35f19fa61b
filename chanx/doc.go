// Package chanx provides concrete channels for the asynch combinators.
//
// Go channels are powerful but have sharp edges: sends to closed channels
// panic, blocked sends leak goroutines, and combining channels with
// context cancellation requires careful select statements.
//
// Every type here implements [asynch.Sender], [asynch.Receiver] or both,
// honours context cancellation, and satisfies the cancellation contract
// the combinators rely on: an abandoned operation consumes or delivers
// nothing.
//
//   - [Send] and [Recv]: context-aware send and receive on raw Go channels.
//   - [Wrap], [FromChan] and [ToChan]: adapt raw Go channels.
//   - [Closable]: a buffered mailbox with idempotent close that converts
//     send-on-closed panics to [ErrClosed].
//   - [After] and [Until]: timer-backed receivers. Race an operation
//     against one to bound it in time.
//   - [Throttle]: rate-limits a sender to N values per duration.
//   - [Drain] and [Pump]: consume a receiver, or forward it to a sender.
package chanx
