package egbase

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityOverflow = errors.New("capacity overflow")
	ErrOutOfRange       = errors.New("index out of range")
	ErrNegativeCount    = errors.New("negative count")
	ErrInvalidStorage   = errors.New("inline storage must be an array of the element type")
)

// precondition panics with err wrapped in context. Bounds and count checks are
// always on; they are programming errors, not conditions to recover from.
func precondition(ok bool, err error, format string, args ...any) {
	if !ok {
		panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
	}
}

func checkIndex(i, n int) {
	precondition(i >= 0 && i < n, ErrOutOfRange, "index %d with length %d", i, n)
}

func checkCount(n int) {
	precondition(n >= 0, ErrNegativeCount, "count %d", n)
}
