package asynch

import "fmt"

// Side identifies one of the two operations raced by [Select].
type Side int

const (
	// FirstSide is the operation passed first to Select.
	FirstSide Side = iota
	// SecondSide is the operation passed second to Select.
	SecondSide
)

func (s Side) String() string {
	switch s {
	case FirstSide:
		return "first"
	case SecondSide:
		return "second"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Either holds the result of exactly one of two operations, tagged with
// the [Side] it came from. The zero value is a First holding the zero A.
type Either[A, B any] struct {
	side   Side
	first  A
	second B
}

// NewFirst returns an Either tagged [FirstSide] holding a.
func NewFirst[A, B any](a A) Either[A, B] {
	return Either[A, B]{side: FirstSide, first: a}
}

// NewSecond returns an Either tagged [SecondSide] holding b.
func NewSecond[A, B any](b B) Either[A, B] {
	return Either[A, B]{side: SecondSide, second: b}
}

// Side reports which operation produced the value.
func (e Either[A, B]) Side() Side { return e.side }

// IsFirst reports whether e holds a first-side value.
func (e Either[A, B]) IsFirst() bool { return e.side == FirstSide }

// IsSecond reports whether e holds a second-side value.
func (e Either[A, B]) IsSecond() bool { return e.side == SecondSide }

// First returns the first-side value and true, or the zero A and false.
func (e Either[A, B]) First() (A, bool) {
	if e.side != FirstSide {
		var zero A
		return zero, false
	}
	return e.first, true
}

// Second returns the second-side value and true, or the zero B and false.
func (e Either[A, B]) Second() (B, bool) {
	if e.side != SecondSide {
		var zero B
		return zero, false
	}
	return e.second, true
}

func (e Either[A, B]) String() string {
	if e.side == SecondSide {
		return fmt.Sprintf("Second(%v)", e.second)
	}
	return fmt.Sprintf("First(%v)", e.first)
}

// Unify returns the value held by e regardless of its side.
func Unify[T any](e Either[T, T]) T {
	if e.side == SecondSide {
		return e.second
	}
	return e.first
}
