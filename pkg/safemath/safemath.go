// Package safemath holds overflow-aware size arithmetic shared by the array
// allocator and the string record factory.
//
// A SafeMath value accumulates an ok flag across a chain of operations so a
// caller can compute a whole allocation size and check once at the end. On
// overflow every operation saturates instead of wrapping.
package safemath

import (
	"math"
	"math/bits"
	"unsafe"
)

// Integer is the set of integer types CastTo can narrow into.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// SafeMath tracks whether any operation performed through it overflowed.
// The zero value is ready to use and reports ok.
type SafeMath struct {
	overflow bool
}

// Ok reports whether every operation so far stayed in range.
func (s *SafeMath) Ok() bool { return !s.overflow }

// Add returns x+y, or math.MaxUint with the flag cleared on overflow.
func (s *SafeMath) Add(x, y uint) uint {
	sum, carry := bits.Add(x, y, 0)
	if carry != 0 {
		s.overflow = true
		return math.MaxUint
	}
	return sum
}

// Mul returns x*y, or math.MaxUint with the flag cleared on overflow.
func (s *SafeMath) Mul(x, y uint) uint {
	hi, lo := bits.Mul(x, y)
	if hi != 0 {
		s.overflow = true
		return math.MaxUint
	}
	return lo
}

// AddInt returns a+b clamped to the int range.
func (s *SafeMath) AddInt(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		s.overflow = true
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		s.overflow = true
		return math.MinInt
	}
	return a + b
}

// AlignUp rounds x up to a multiple of alignment, which must be a power of two.
func (s *SafeMath) AlignUp(x, alignment uint) uint {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		panic("safemath: alignment must be a power of two")
	}
	sum := s.Add(x, alignment-1)
	if !s.Ok() {
		return math.MaxUint &^ (alignment - 1)
	}
	return sum &^ (alignment - 1)
}

// CastTo converts v to T, clearing the flag and saturating when v does not fit.
func CastTo[T Integer](s *SafeMath, v uint) T {
	if !FitsIn[T](v) {
		s.overflow = true
		return maxOf[T]()
	}
	return T(v)
}

// FitsIn reports whether v is representable in T.
func FitsIn[T Integer](v uint) bool {
	return uint64(v) <= uint64(maxOf[T]())
}

func maxOf[T Integer]() T {
	var zero T
	width := unsafe.Sizeof(zero) * 8
	if ^zero < zero {
		return T(uint64(1)<<(width-1) - 1)
	}
	return ^zero
}

// Add returns x+y saturated at math.MaxUint.
func Add(x, y uint) uint {
	var s SafeMath
	return s.Add(x, y)
}

// Mul returns x*y saturated at math.MaxUint.
func Mul(x, y uint) uint {
	var s SafeMath
	return s.Mul(x, y)
}

// Align4 rounds x up to a multiple of four.
func Align4(x uint) uint {
	var s SafeMath
	return s.AlignUp(x, 4)
}

// TrimU32 narrows a size to 32 bits, saturating at math.MaxUint32.
func TrimU32(v uint) uint32 {
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// ClampAdd32 returns how much of extra can be added to base before the sum
// leaves the 32-bit range. base must already fit in 32 bits.
func ClampAdd32(base, extra uint) uint {
	if uint64(base) > math.MaxUint32 {
		panic("safemath: base exceeds 32 bits")
	}
	room := uint(math.MaxUint32 - uint64(base))
	if extra > room {
		return room
	}
	return extra
}
