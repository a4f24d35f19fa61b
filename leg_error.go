package asynch

import (
	"errors"
	"fmt"
)

// LegError wraps an error together with the [Side] of the raced operation
// that produced it. [Select] wraps every leg failure in a LegError so
// callers can attribute errors to a specific leg.
type LegError struct {
	Side Side
	Err  error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("%s leg failed: %v", e.Side, e.Err)
}

func (e *LegError) Unwrap() error {
	return e.Err
}

// IsLegError reports whether err (or any error in its chain) is a [*LegError].
func IsLegError(err error) bool {
	if err == nil {
		return false
	}
	var le *LegError
	return errors.As(err, &le)
}

// SideOf extracts the [Side] from the first [*LegError] in err's chain.
// Returns false if no LegError is found.
func SideOf(err error) (Side, bool) {
	if err == nil {
		return FirstSide, false
	}

	var le *LegError
	if errors.As(err, &le) {
		return le.Side, true
	}
	return FirstSide, false
}

// CauseOf unwraps the first [*LegError] in err's chain and returns its
// underlying cause. If err is not a LegError, it is returned as-is.
// Returns nil if err is nil.
func CauseOf(err error) error {
	if err == nil {
		return nil
	}

	var le *LegError
	if errors.As(err, &le) {
		return le.Err
	}

	return err
}

// AllLegErrors recursively collects every [*LegError] from err's chain,
// including errors wrapped via [errors.Join]. Returns nil if none are found.
func AllLegErrors(err error) []*LegError {
	if err == nil {
		return nil
	}

	var out []*LegError
	collectLegErrors(err, &out)
	return out
}

func collectLegErrors(err error, out *[]*LegError) {
	switch e := err.(type) {
	case *LegError:
		*out = append(*out, e)

	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			collectLegErrors(sub, out)
		}

	case interface{ Unwrap() error }:
		collectLegErrors(e.Unwrap(), out)
	}
}
