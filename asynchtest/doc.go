// Package asynchtest provides test doubles and a conformance suite for
// asynch channels.
//
// [Spy] is a channel that records every send with a sequence number drawn
// from a [Sequence] that several spies can share, so tests can assert the
// order in which legs observed a value. Values for Recv are supplied with
// [Spy.Feed].
//
// [ChannelSuite] checks the cancellation contract that every leaf channel
// must satisfy before it is composed with [asynch.Select] or
// [asynch.Merge].
package asynchtest
