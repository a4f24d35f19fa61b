// Package asynch composes single-value channels out of two capabilities:
// a [Sender], which hands off one value at a time, and a [Receiver],
// which obtains one value at a time.
//
// Any concrete channel (a Go channel, a mailbox, a hardware queue behind
// a driver, a test spy) implements these independently. The combinators
// in this package take such channels and return values that implement the
// same interfaces, so compositions nest freely and call sites never learn
// the shape behind a channel.
//
// # Combinators
//
//   - [Adapt], [AdaptSender], [AdaptReceiver]: translate or filter values
//     crossing a channel boundary with a func(In) (Out, bool).
//   - [Merge], [MergeSenders], [MergeReceivers]: present two channels as
//     one. Sending delivers to both legs in order; receiving races them.
//     [MergedChannel.And] chains further legs.
//   - [Dummy]: a channel whose sends vanish and whose receives never
//     complete, usable as a disabled leg.
//
// The free functions [Send], [Recv], [SendBoth] and [RecvBoth] hold the
// logic the wrapper types delegate to.
//
// # Racing
//
// [Select] runs two operations concurrently and returns the first to
// succeed as an [Either]. The loser's context is cancelled and Select
// waits for it to return before returning itself.
//
// # Cancellation
//
// Every blocking call takes a [context.Context]. Cancelling it is how an
// operation is abandoned, including the losing side of a race. A
// conforming Receiver either returns a value it consumed or returns the
// context error having consumed nothing; a conforming Sender either
// delivers the value or returns the context error having delivered
// nothing. The combinators cannot enforce this; it is an obligation on
// every leaf channel. The
// [github.com/baxromumarov/asynch/asynchtest] package provides a
// conformance suite for it.
//
// A Go receiver may still complete just after its context is cancelled.
// Select reports such a late value through [OnLate], and
// [MergedReceiver] holds it for the next Recv, so a merge never drops a
// message it has consumed.
//
// # Errors
//
// The combinators do not invent failures. Errors returned by Send and
// Recv come from the leaf channels, normally the context error. Leaf
// failures that callers need to observe belong in the data type. Errors
// from a merge are wrapped in [*LegError]; use [IsLegError], [SideOf] and
// [CauseOf] to inspect them.
//
// # Leaf Channels
//
// The [github.com/baxromumarov/asynch/chanx] subpackage provides concrete
// channels: wrappers around Go channels, a closable mailbox, timer-backed
// receivers for timeouts, and a throttled sender. The
// [github.com/baxromumarov/asynch/observe] subpackage wraps any channel
// with structured logging and Prometheus metrics.
package asynch
