package spinwait

import (
	"errors"
)

var (
	// ErrInvalidArgument is wrapped by errors for out of range thresholds
	// and timeouts.
	ErrInvalidArgument = errors.New("spinwait: invalid argument")
	// ErrNilPredicate is returned when no condition is given to wait on.
	ErrNilPredicate = errors.New("spinwait: nil predicate")
)
