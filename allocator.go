package egbase

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"github.com/rawbytedev/egbase/pkg/safemath"
)

const (
	// ExactFit sizes a new buffer to exactly the requested count.
	ExactFit = 1.0
	// Growing over-allocates for amortized appends.
	Growing = 1.5
	// MinHeapAllocCount is the smallest non-exact heap buffer and the
	// granularity grown capacities are rounded to.
	MinHeapAllocCount = 8
)

// MaxCapacity is the largest element count a buffer of T may hold: bounded by
// the address space divided by the element size, and by the 31-bit capacity
// the array tracks.
func MaxCapacity[T any]() int {
	size := reflect.TypeFor[T]().Size()
	if size == 0 {
		return math.MaxInt32
	}
	return int(min(uint64(math.MaxInt)/uint64(size), math.MaxInt32))
}

// GrowCapacity returns the slot count to allocate for count live elements
// under the given growth factor. Exact fit returns count unchanged; anything
// larger scales count and rounds up to MinHeapAllocCount, never exceeding limit.
func GrowCapacity(count int, growth float64, limit int) int {
	if growth <= ExactFit || count >= limit {
		return min(count, limit)
	}
	var s safemath.SafeMath
	grown := uint(float64(count) * growth)
	grown = s.AlignUp(max(grown, uint(count)), MinHeapAllocCount)
	if !s.Ok() || grown > uint(limit) {
		return limit
	}
	return int(grown)
}

// Allocate returns a buffer with room for at least capacity elements of T,
// grown by the given factor. Go zeroes the memory; no element is considered
// live until the caller says so. A zero capacity returns nil.
func Allocate[T any](capacity int, growth float64) ([]T, error) {
	checkCount(capacity)
	limit := MaxCapacity[T]()
	if capacity > limit {
		return nil, fmt.Errorf("%w: %d elements exceeds %d", ErrCapacityOverflow, capacity, limit)
	}
	if capacity == 0 {
		return nil, nil
	}
	return make([]T, GrowCapacity(capacity, growth, limit)), nil
}

// sizeBytes is n*sizeof(T), saturated.
func sizeBytes[T any](n int) uint {
	var zero T
	return safemath.Mul(uint(n), uint(unsafe.Sizeof(zero)))
}
