// Package egstring provides String, a byte string whose buffer is shared
// between copies and duplicated only when a shared copy is written.
//
// A String is a single pointer to a reference-counted record. Clone takes a
// new reference, Destroy drops one, and every mutation first makes the
// handle the sole owner of a record large enough for the result. Reference
// counts are atomic, so copies of one String may be cloned and destroyed
// from different goroutines; the bytes themselves are not synchronized.
package egstring

import (
	"bytes"
	"fmt"
	"unsafe"

	"github.com/rawbytedev/egbase"
)

// String is a copy-on-write byte string. The zero value is empty.
//
// Assigning a String value copies the handle without taking a reference;
// use Clone for a second owner and Set to replace one owner's contents.
type String struct {
	r *rec
}

// From returns a String holding a copy of str.
func From(str string) String {
	return String{r: newRec(view(str), len(str))}
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) String {
	return String{r: newRec(b, len(b))}
}

// Sized returns a String of n zero bytes.
func Sized(n int) String {
	return String{r: newRec(nil, n)}
}

// Sprintf returns a String formatted like fmt.Sprintf.
func Sprintf(format string, args ...any) String {
	var s String
	s.Printf(format, args...)
	return s
}

func (s *String) get() *rec {
	if s.r == nil {
		return empty
	}
	return s.r
}

// Clone returns a second owner of the same bytes.
func (s *String) Clone() String {
	r := s.get()
	r.ref()
	return String{r: r}
}

// Destroy drops this handle's reference and leaves it empty.
func (s *String) Destroy() {
	s.get().unref()
	s.r = nil
}

// TriviallyRelocatable marks String as movable by plain copy: it is a single
// pointer and moving it transfers the reference it holds.
func (s *String) TriviallyRelocatable() {}

func (s *String) Len() int { return int(s.get().length) }
func (s *String) IsEmpty() bool { return s.get().length == 0 }

// Unique reports whether this handle is the only owner of a non-empty buffer.
func (s *String) Unique() bool { return s.get().unique() }

// String returns a copy of the bytes as a Go string.
func (s *String) String() string { return string(s.get().bytes()) }

// Bytes returns the bytes without copying. The slice must not be written;
// use Data for a writable view.
func (s *String) Bytes() []byte { return s.get().bytes() }

// CStr returns the bytes followed by their NUL terminator.
func (s *String) CStr() []byte {
	r := s.get()
	return r.data[: r.length+1 : r.length+1]
}

// At returns the byte at index i.
func (s *String) At(i int) byte {
	r := s.get()
	if i < 0 || i >= int(r.length) {
		panic(fmt.Errorf("%w: byte %d of %d", egbase.ErrOutOfRange, i, r.length))
	}
	return r.data[i]
}

// Equal reports whether both strings hold the same bytes.
func (s *String) Equal(o *String) bool {
	a, b := s.get(), o.get()
	return a == b || bytes.Equal(a.bytes(), b.bytes())
}

func (s *String) EqualString(str string) bool { return string(s.get().bytes()) == str }
func (s *String) EqualBytes(b []byte) bool { return bytes.Equal(s.get().bytes(), b) }

func (s *String) HasPrefix(prefix string) bool { return StartsWith(s.Bytes(), prefix) }
func (s *String) HasPrefixByte(c byte) bool { return StartsWithByte(s.Bytes(), c) }
func (s *String) HasSuffix(suffix string) bool { return EndsWith(s.Bytes(), suffix) }
func (s *String) HasSuffixByte(c byte) bool { return EndsWithByte(s.Bytes(), c) }
func (s *String) Contains(sub string) bool { return Contains(s.Bytes(), sub) }
func (s *String) ContainsByte(c byte) bool { return ContainsByte(s.Bytes(), c) }

// Find returns the index of the first occurrence of sub, or -1.
func (s *String) Find(sub string) int { return Find(s.Bytes(), sub) }

// FindLastOf returns the index of the last occurrence of sub, or -1.
func (s *String) FindLastOf(sub string) int { return FindLastOf(s.Bytes(), sub) }

// Data returns a writable view of the bytes, first copying them if the
// buffer is shared.
func (s *String) Data() []byte {
	r := s.get()
	if r.length == 0 {
		return nil
	}
	return s.own(int(r.length), int(r.length)).bytes()
}

// own makes s the sole owner of a record that can hold n bytes, carrying
// over the first keep bytes when it has to reallocate. n must be positive.
func (s *String) own(n, keep int) *rec {
	r := s.get()
	if r.unique() && n <= r.room() {
		return r
	}
	nr := newRec(r.data[:min(keep, n)], n)
	r.unref()
	s.r = nr
	return nr
}

// Reset drops the contents and leaves s empty.
func (s *String) Reset() { s.Destroy() }

// Resize sets the length to n. Bytes past the old length read as zero.
func (s *String) Resize(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: length %d", egbase.ErrNegativeCount, n))
	}
	old := s.Len()
	switch {
	case n == old:
		return
	case n == 0:
		s.Reset()
		return
	}
	r := s.own(n, old)
	if n > old {
		clear(r.data[old:n])
	}
	r.setLength(n)
}

// Set makes s another owner of src's bytes.
func (s *String) Set(src *String) {
	if s == src {
		return
	}
	nr := src.get()
	nr.ref()
	s.get().unref()
	s.r = nr
}

func (s *String) SetString(str string) {
	s.SetBytes(view(str))
}

// SetBytes replaces the contents with a copy of b.
func (s *String) SetBytes(b []byte) {
	if len(b) == 0 {
		s.Reset()
		return
	}
	if aliases(b, s.get().data) {
		b = bytes.Clone(b)
	}
	r := s.own(len(b), 0)
	copy(r.data, b)
	r.setLength(len(b))
}

// Remove deletes up to n bytes starting at off. Offsets past the end do nothing.
func (s *String) Remove(off, n int) {
	l := s.Len()
	if off < 0 || n < 0 {
		panic(fmt.Errorf("%w: remove %d at %d", egbase.ErrOutOfRange, n, off))
	}
	if off >= l || n == 0 {
		return
	}
	n = min(n, l-off)
	if n == l {
		s.Reset()
		return
	}
	r := s.get()
	if !r.unique() {
		nr := newRec(r.data[:off], l-n)
		copy(nr.data[off:], r.data[off+n:l])
		r.unref()
		s.r = nr
		return
	}
	copy(r.data[off:], r.data[off+n:l])
	clear(r.data[l-n : l])
	r.setLength(l - n)
}

// Swap exchanges the contents of s and o.
func (s *String) Swap(o *String) {
	s.r, o.r = o.r, s.r
}

// Printf replaces the contents with formatted text.
func (s *String) Printf(format string, args ...any) {
	var stack [256]byte
	s.SetBytes(fmt.Appendf(stack[:0], format, args...))
}

// Appendf appends formatted text.
func (s *String) Appendf(format string, args ...any) {
	var stack [256]byte
	s.InsertBytes(-1, fmt.Appendf(stack[:0], format, args...))
}

// aliases reports whether a and b share any memory.
func aliases(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	as := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bs := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return as < bs+uintptr(len(b)) && bs < as+uintptr(len(a))
}
