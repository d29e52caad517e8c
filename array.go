// Package egbase provides a growable, relocation-aware sequence container with
// an optional inline storage mode.
//
// An Array either owns its buffer or borrows one supplied by an enclosing
// value (see Inline). Borrowed storage is never released by the array; the
// first growth past it moves every element to an owned heap buffer, and the
// array stays heap-backed from then on.
//
// How elements move between buffers depends on the element type (see
// RelocationOf): plain data is moved by bulk copy, types with lifecycle hooks
// are moved one at a time through MoveTo and Destroy.
//
// Arrays carry no synchronization and must not be copied by value; use Clone,
// Assign, Take or MoveFrom.
package egbase

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/rawbytedev/egbase/internal/debuglog"
)

// noCopy lets go vet's copylocks check flag value copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Array is a dynamic array of T. The zero value is an empty, owning array.
type Array[T any] struct {
	_ noCopy

	data     []T // len(data) is the capacity; data[:size] is live
	size     int
	borrowed bool
	ops      *elemOps[T]
}

// New returns an empty array.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// WithCapacity returns an empty array with room for n elements.
func WithCapacity[T any](n int) (*Array[T], error) {
	a := &Array[T]{}
	if err := a.ReserveBack(n); err != nil {
		return nil, err
	}
	return a, nil
}

// FromSlice returns an array holding copies of src.
func FromSlice[T any](src []T) *Array[T] {
	a := &Array[T]{}
	a.mustRealloc(len(src), ExactFit)
	a.elem().copyInto(a.data, src)
	a.size = len(src)
	return a
}

// Of returns an array holding copies of elems.
func Of[T any](elems ...T) *Array[T] {
	return FromSlice(elems)
}

func (a *Array[T]) elem() *elemOps[T] {
	if a.ops == nil {
		a.ops = opsFor[T]()
	}
	return a.ops
}

// borrow points the array at caller-owned storage. The array must be empty.
func (a *Array[T]) borrow(buf []T) {
	a.data = buf
	a.size = 0
	a.borrowed = true
}

// checkRealloc makes room for delta more elements, moving the live elements
// to a new owned buffer when the current one is too small.
func (a *Array[T]) checkRealloc(delta int, growth float64) error {
	checkCount(delta)
	if len(a.data)-a.size >= delta {
		return nil
	}
	limit := MaxCapacity[T]()
	if delta > limit-a.size {
		debuglog.Debugf("reject growth: len=%d delta=%d limit=%d", a.size, delta, limit)
		return fmt.Errorf("%w: %d + %d elements exceeds %d", ErrCapacityOverflow, a.size, delta, limit)
	}
	buf, err := Allocate[T](a.size+delta, growth)
	if err != nil {
		return err
	}
	if a.borrowed && debuglog.Enabled() {
		debuglog.Debugf("spill inline storage: len=%d inline=%d heap=%d", a.size, len(a.data), len(buf))
	}
	a.elem().relocate(buf, a.data[:a.size])
	a.data = buf
	a.borrowed = false
	return nil
}

func (a *Array[T]) mustRealloc(delta int, growth float64) {
	if err := a.checkRealloc(delta, growth); err != nil {
		panic(err)
	}
}

// pushRaw grows the live range by n and returns the new slots.
func (a *Array[T]) pushRaw(n int) []T {
	a.mustRealloc(n, Growing)
	s := a.data[a.size : a.size+n]
	a.size += n
	return s
}

// stage deep-copies src when it aliases this array's buffer, so that a
// reallocation or clear cannot pull it out from under the caller.
func (a *Array[T]) stage(src []T) ([]T, bool) {
	if !overlaps(a.data, src) {
		return src, false
	}
	tmp := make([]T, len(src))
	a.elem().copyInto(tmp, src)
	return tmp, true
}

func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b))*size && b0 < a0+uintptr(len(a))*size
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int { return a.size }

// Cap returns the number of slots in the current buffer.
func (a *Array[T]) Cap() int { return len(a.data) }

// IsEmpty reports whether the array holds no elements.
func (a *Array[T]) IsEmpty() bool { return a.size == 0 }

// SizeBytes is the byte size of the live elements.
func (a *Array[T]) SizeBytes() int { return int(sizeBytes[T](a.size)) }

// Owned reports whether the array owns its buffer. It is false only while an
// Inline array still uses its embedded storage.
func (a *Array[T]) Owned() bool { return !a.borrowed }

// Data returns the live elements. The slice is invalidated by any operation
// that grows or shrinks the buffer.
func (a *Array[T]) Data() []T { return a.data[:a.size:a.size] }

// All iterates over index/value pairs front to back.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/value pairs back to front.
func (a *Array[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.size - 1; i >= 0; i-- {
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// At returns the element at index i.
func (a *Array[T]) At(i int) T {
	checkIndex(i, a.size)
	return a.data[i]
}

// Ref returns a pointer to the element at index i, valid until the buffer moves.
func (a *Array[T]) Ref(i int) *T {
	checkIndex(i, a.size)
	return &a.data[i]
}

// Set destroys the element at index i and stores v in its place.
func (a *Array[T]) Set(i int, v T) {
	checkIndex(i, a.size)
	a.elem().destroy(&a.data[i])
	a.data[i] = v
}

// Front returns the first element.
func (a *Array[T]) Front() T {
	precondition(a.size > 0, ErrOutOfRange, "front of empty array")
	return a.data[0]
}

// Back returns the last element.
func (a *Array[T]) Back() T {
	precondition(a.size > 0, ErrOutOfRange, "back of empty array")
	return a.data[a.size-1]
}

// FromBack returns the element i positions before the last one.
func (a *Array[T]) FromBack(i int) T {
	checkIndex(i, a.size)
	return a.data[a.size-1-i]
}

// PushBack appends v, taking ownership of it, and returns its slot.
func (a *Array[T]) PushBack(v T) *T {
	slot := &a.pushRaw(1)[0]
	*slot = v
	return slot
}

// PushBackZero appends a zero value and returns its slot.
func (a *Array[T]) PushBackZero() *T {
	return &a.pushRaw(1)[0]
}

// EmplaceBack appends a zero value, lets init construct it in place and
// returns its slot.
func (a *Array[T]) EmplaceBack(init func(*T)) *T {
	slot := &a.pushRaw(1)[0]
	init(slot)
	return slot
}

// PushBackN appends n zero values and returns them.
func (a *Array[T]) PushBackN(n int) []T {
	checkCount(n)
	return a.pushRaw(n)
}

// PushBackFill appends n copies of v and returns them.
func (a *Array[T]) PushBackFill(n int, v T) []T {
	checkCount(n)
	dst := a.pushRaw(n)
	ops := a.elem()
	for i := range dst {
		dst[i] = ops.copyOne(&v)
	}
	return dst
}

// PushBackSlice appends copies of src and returns them. src may alias the
// array's own elements.
func (a *Array[T]) PushBackSlice(src []T) []T {
	src, staged := a.stage(src)
	dst := a.pushRaw(len(src))
	if staged {
		copy(dst, src)
	} else {
		a.elem().copyInto(dst, src)
	}
	return dst
}

// MoveBackN moves the elements of src onto the end of the array and returns
// them. src is left in the moved-from state and must not alias the array.
func (a *Array[T]) MoveBackN(src []T) []T {
	precondition(!overlaps(a.data, src), ErrOutOfRange, "move source aliases the array")
	dst := a.pushRaw(len(src))
	a.elem().relocate(dst, src)
	return dst
}

// PopBack removes the last element.
func (a *Array[T]) PopBack() {
	precondition(a.size > 0, ErrOutOfRange, "pop from empty array")
	a.size--
	a.elem().destroy(&a.data[a.size])
}

// PopBackN removes the last n elements.
func (a *Array[T]) PopBackN(n int) {
	checkCount(n)
	precondition(n <= a.size, ErrOutOfRange, "pop %d from length %d", n, a.size)
	ops := a.elem()
	for i := a.size - 1; i >= a.size-n; i-- {
		ops.destroy(&a.data[i])
	}
	a.size -= n
}

// RemoveShuffle removes the element at index i in constant time by moving
// the last element into its slot. Order is not preserved.
func (a *Array[T]) RemoveShuffle(i int) {
	checkIndex(i, a.size)
	last := a.size - 1
	a.size = last
	ops := a.elem()
	ops.destroy(&a.data[i])
	if i != last {
		ops.relocateOne(&a.data[i], &a.data[last])
	}
}

// Reserve ensures capacity for at least n elements in total.
func (a *Array[T]) Reserve(n int) error {
	checkCount(n)
	if n > a.size {
		return a.checkRealloc(n-a.size, ExactFit)
	}
	return nil
}

// ReserveBack ensures capacity for at least n elements beyond the current length.
func (a *Array[T]) ReserveBack(n int) error {
	checkCount(n)
	if n > 0 {
		return a.checkRealloc(n, ExactFit)
	}
	return nil
}

// ResizeBack grows the array with zero values or shrinks it from the back
// until it holds n elements.
func (a *Array[T]) ResizeBack(n int) error {
	checkCount(n)
	switch {
	case n > a.size:
		if err := a.checkRealloc(n-a.size, Growing); err != nil {
			return err
		}
		a.pushRaw(n - a.size)
	case n < a.size:
		a.PopBackN(a.size - n)
	}
	return nil
}

// Resize is ResizeBack.
func (a *Array[T]) Resize(n int) error { return a.ResizeBack(n) }

// Reset replaces the contents with n zero values, sizing the buffer exactly
// when it has to grow.
func (a *Array[T]) Reset(n int) error {
	checkCount(n)
	a.Clear()
	if err := a.checkRealloc(n, ExactFit); err != nil {
		return err
	}
	a.size = n
	return nil
}

// ResetFrom replaces the contents with copies of src.
func (a *Array[T]) ResetFrom(src []T) error {
	src, staged := a.stage(src)
	a.Clear()
	if err := a.checkRealloc(len(src), ExactFit); err != nil {
		return err
	}
	if staged {
		copy(a.data, src)
	} else {
		a.elem().copyInto(a.data, src)
	}
	a.size = len(src)
	return nil
}

// Clear destroys every element. Capacity is kept.
func (a *Array[T]) Clear() {
	a.elem().destroyAll(a.data[:a.size])
	a.size = 0
}

// ShrinkToFit moves the elements into an exactly sized buffer. Borrowed
// storage is left alone.
func (a *Array[T]) ShrinkToFit() {
	if a.borrowed || a.size == len(a.data) {
		return
	}
	if a.size == 0 {
		a.data = nil
		return
	}
	buf, err := Allocate[T](a.size, ExactFit)
	if err != nil {
		panic(err)
	}
	a.elem().relocate(buf, a.data[:a.size])
	a.data = buf
}

// Clone returns a deep copy in an exactly sized owned buffer.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{}
	c.Assign(a)
	return c
}

// Assign replaces the contents with copies of src's elements.
func (a *Array[T]) Assign(src *Array[T]) {
	if a == src {
		return
	}
	a.Clear()
	a.mustRealloc(src.size, ExactFit)
	a.elem().copyInto(a.data, src.data[:src.size])
	a.size = src.size
}

// MoveFrom replaces the contents with src's elements and leaves src empty.
// An owning src hands over its buffer without touching the elements; a src
// on borrowed storage has its elements relocated one by one, since its
// buffer belongs to someone else.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Clear()
	if !src.borrowed {
		a.data, src.data = src.data, nil
		a.borrowed = false
	} else {
		a.mustRealloc(src.size, ExactFit)
		a.elem().relocate(a.data[:src.size], src.data[:src.size])
	}
	a.size, src.size = src.size, 0
}

// Take moves the contents into a new array and leaves a empty.
func (a *Array[T]) Take() *Array[T] {
	t := &Array[T]{}
	t.MoveFrom(a)
	return t
}

// Swap exchanges contents with other. Two owning arrays swap buffers; otherwise
// the exchange goes through moves.
func (a *Array[T]) Swap(other *Array[T]) {
	if a == other {
		return
	}
	if !a.borrowed && !other.borrowed {
		a.data, other.data = other.data, a.data
		a.size, other.size = other.size, a.size
		return
	}
	tmp := other.Take()
	other.MoveFrom(a)
	a.MoveFrom(tmp)
}

// EqualFunc reports whether both arrays have the same length and eq holds
// for every pair of elements.
func (a *Array[T]) EqualFunc(b *Array[T], eq func(x, y T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if !eq(a.data[i], b.data[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Array[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}
