package asynch

import "context"

// MergedSender presents two senders of the same type as one. Every value
// is delivered to both legs, first then second.
type MergedSender[T any] struct {
	first  Sender[T]
	second Sender[T]
}

// MergeSenders returns a [MergedSender] over first and second.
// It panics if either leg is nil.
func MergeSenders[T any](first, second Sender[T]) *MergedSender[T] {
	if first == nil || second == nil {
		panic("asynch: MergeSenders requires non-nil legs")
	}
	return &MergedSender[T]{first: first, second: second}
}

// Send delivers a clone of v to the first leg and then v to the second.
// See [SendBoth].
func (m *MergedSender[T]) Send(ctx context.Context, v T) error {
	return SendBoth(ctx, m.first, m.second, v)
}

// And returns a sender that delivers to m's legs and then to third.
func (m *MergedSender[T]) And(third Sender[T]) *MergedSender[T] {
	return MergeSenders[T](m, third)
}

// MergedReceiver presents two receivers of the same type as one. Every
// Recv races both legs and returns whichever value arrives first.
//
// When both legs produce a value in the same race, the loser's value is
// held and returned by the next Recv without racing, so no message is lost.
type MergedReceiver[T any] struct {
	first  Receiver[T]
	second Receiver[T]

	held    T
	hasHeld bool
}

// MergeReceivers returns a [MergedReceiver] over first and second.
// It panics if either leg is nil.
func MergeReceivers[T any](first, second Receiver[T]) *MergedReceiver[T] {
	if first == nil || second == nil {
		panic("asynch: MergeReceivers requires non-nil legs")
	}
	return &MergedReceiver[T]{first: first, second: second}
}

// Recv returns a value held from an earlier race if there is one,
// otherwise the first value either leg produces.
func (m *MergedReceiver[T]) Recv(ctx context.Context) (T, error) {
	if m.hasHeld {
		var zero T
		v := m.held
		m.held, m.hasHeld = zero, false
		return v, nil
	}
	return RecvBoth(ctx, m.first, m.second, m.hold)
}

func (m *MergedReceiver[T]) hold(v T) {
	m.held, m.hasHeld = v, true
}

// And returns a receiver that races m's legs and third.
func (m *MergedReceiver[T]) And(third Receiver[T]) *MergedReceiver[T] {
	return MergeReceivers[T](m, third)
}

// MergedChannel presents two channels of the same type as one: a
// [MergedSender] and a [MergedReceiver] over the same legs.
//
// Legs may themselves be MergedChannels; [MergedChannel.And] builds such
// left-leaning trees. Sends then visit the legs depth-first, left to right,
// and receives race all of them.
type MergedChannel[T any] struct {
	sender   MergedSender[T]
	receiver MergedReceiver[T]
}

// Merge returns a [MergedChannel] over first and second.
// It panics if either leg is nil.
func Merge[T any](first, second Channel[T]) *MergedChannel[T] {
	if first == nil || second == nil {
		panic("asynch: Merge requires non-nil legs")
	}
	return &MergedChannel[T]{
		sender:   MergedSender[T]{first: first, second: second},
		receiver: MergedReceiver[T]{first: first, second: second},
	}
}

// Send delivers v to both legs in order. See [SendBoth].
func (m *MergedChannel[T]) Send(ctx context.Context, v T) error {
	return m.sender.Send(ctx, v)
}

// Recv returns the first value produced by either leg.
func (m *MergedChannel[T]) Recv(ctx context.Context) (T, error) {
	return m.receiver.Recv(ctx)
}

// And returns Merge(m, third).
func (m *MergedChannel[T]) And(third Channel[T]) *MergedChannel[T] {
	return Merge[T](m, third)
}
