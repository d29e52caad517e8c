package egstring

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/rawbytedev/egbase"
	"github.com/rawbytedev/egbase/pkg/safemath"
)

// ErrRefUnderflow means a record was released more times than it was
// referenced, which is a use-after-free in the caller.
var ErrRefUnderflow = errors.New("egstring: reference count underflow")

// recHeader is the bookkeeping a record accounts for ahead of its bytes:
// the 32-bit length and the 32-bit reference count.
const recHeader = 8

// rec is a shared, reference-counted byte buffer. data always holds a NUL
// after the live bytes; len(data) is the usable allocation.
type rec struct {
	length uint32
	refs   atomic.Int32
	data   []byte
}

// empty is the shared record of every empty String. It is never counted.
var empty = &rec{data: []byte{0}}

// allocSize returns the checked 32-bit length and the byte count a record
// for n bytes occupies past its header: header, bytes and terminator rounded
// up to 4, minus the header.
func allocSize(n uint) (uint32, int, bool) {
	var s safemath.SafeMath
	length := safemath.CastTo[uint32](&s, n)
	total := s.AlignUp(s.Add(n, recHeader+1), 4)
	if !s.Ok() || total-recHeader > math.MaxInt32 {
		return 0, 0, false
	}
	return length, int(total - recHeader), true
}

// newRec makes an unshared record holding n bytes, filled from src when it
// is non-nil. n == 0 yields the empty record.
func newRec(src []byte, n int) *rec {
	if n == 0 {
		return empty
	}
	length, size, ok := allocSize(uint(n))
	if !ok {
		panic(fmt.Errorf("%w: string of %d bytes", egbase.ErrCapacityOverflow, n))
	}
	buf, err := egbase.Allocate[byte](size, egbase.ExactFit)
	if err != nil {
		panic(err)
	}
	r := &rec{length: length, data: buf}
	r.refs.Store(1)
	copy(r.data[:n], src)
	return r
}

func (r *rec) ref() {
	if r == empty {
		return
	}
	r.refs.Add(1)
}

func (r *rec) unref() {
	if r == empty {
		return
	}
	switch n := r.refs.Add(-1); {
	case n == 0:
		r.data = nil
	case n < 0:
		panic(fmt.Errorf("%w: count %d", ErrRefUnderflow, n))
	}
}

func (r *rec) unique() bool {
	return r != empty && r.refs.Load() == 1
}

// room is the largest length the record can hold without reallocating.
func (r *rec) room() int {
	return len(r.data) - 1
}

func (r *rec) bytes() []byte {
	return r.data[:r.length:r.length]
}

// setLength moves the terminator; bytes in between must already be valid.
func (r *rec) setLength(n int) {
	r.length = uint32(n)
	r.data[n] = 0
}
