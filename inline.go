package egbase

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Inline is an Array that starts out on storage embedded in itself. S must be
// an array type [N]T; while the length stays within N no heap allocation is
// made. Growing past N moves the elements to the heap for good.
//
// Inline values must be created with one of the NewInline constructors and
// must not be copied after first use.
type Inline[T any, S any] struct {
	Array[T]
	storage S
}

// inlineLen validates S and returns its element count.
func inlineLen[T any, S any]() int {
	st := reflect.TypeFor[S]()
	et := reflect.TypeFor[T]()
	if st.Kind() != reflect.Array || st.Elem() != et {
		panic(fmt.Errorf("%w: got %v for element %v", ErrInvalidStorage, st, et))
	}
	return st.Len()
}

func (a *Inline[T, S]) init() {
	n := inlineLen[T, S]()
	var buf []T
	if n > 0 {
		buf = unsafe.Slice((*T)(unsafe.Pointer(&a.storage)), n)
	}
	a.Array.borrow(buf)
}

// NewInline returns an empty array backed by its inline storage.
func NewInline[T any, S any]() *Inline[T, S] {
	a := &Inline[T, S]{}
	a.init()
	return a
}

// NewInlineReserved returns an empty array with room for n elements, which
// moves it to the heap right away when n exceeds the inline capacity.
func NewInlineReserved[T any, S any](n int) (*Inline[T, S], error) {
	a := NewInline[T, S]()
	if err := a.ReserveBack(n); err != nil {
		return nil, err
	}
	return a, nil
}

// NewInlineFrom returns an array holding copies of src, allocating only when
// src does not fit inline.
func NewInlineFrom[T any, S any](src []T) *Inline[T, S] {
	a := NewInline[T, S]()
	if err := a.ResetFrom(src); err != nil {
		panic(err)
	}
	return a
}

// NewInlineOf returns an array holding copies of elems.
func NewInlineOf[T any, S any](elems ...T) *Inline[T, S] {
	return NewInlineFrom[T, S](elems)
}

// NewInlineCopy copy-constructs from src, which may be inline or heap backed.
// The result starts on fresh inline storage.
func NewInlineCopy[T any, S any](src *Array[T]) *Inline[T, S] {
	a := NewInline[T, S]()
	a.Assign(src)
	return a
}

// NewInlineMove move-constructs from src. An owning src hands over its heap
// buffer; a src on borrowed storage is relocated element by element.
func NewInlineMove[T any, S any](src *Array[T]) *Inline[T, S] {
	a := NewInline[T, S]()
	a.MoveFrom(src)
	return a
}

// InlineCap returns N, the number of elements the embedded storage holds.
func (a *Inline[T, S]) InlineCap() int {
	return inlineLen[T, S]()
}

// IsInline reports whether the array still uses its embedded storage.
func (a *Inline[T, S]) IsInline() bool {
	return a.borrowed
}

// Base returns the embedded Array, for APIs that take *Array[T].
func (a *Inline[T, S]) Base() *Array[T] {
	return &a.Array
}
