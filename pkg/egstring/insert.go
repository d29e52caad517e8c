package egstring

import (
	"bytes"
	"unicode/utf8"

	"github.com/rawbytedev/egbase/pkg/safemath"
)

// InsertBytes inserts a copy of b at off. An offset that is negative or past
// the end appends.
func (s *String) InsertBytes(off int, b []byte) {
	if len(b) == 0 {
		return
	}
	r := s.get()
	l := int(r.length)
	if off < 0 || off > l {
		off = l
	}
	b = b[:safemath.ClampAdd32(uint(l), uint(len(b)))]
	if len(b) == 0 {
		return
	}
	n := l + len(b)
	if aliases(b, r.data) {
		b = bytes.Clone(b)
	}
	if r.unique() && n <= r.room() {
		copy(r.data[off+len(b):n], r.data[off:l])
		copy(r.data[off:], b)
		r.setLength(n)
		return
	}
	nr := newRec(r.data[:off], n)
	copy(nr.data[off:], b)
	copy(nr.data[off+len(b):], r.data[off:l])
	r.unref()
	s.r = nr
}

func (s *String) Insert(off int, str string) {
	s.InsertBytes(off, view(str))
}

func (s *String) InsertString(off int, o *String) { s.InsertBytes(off, o.Bytes()) }

// InsertRune inserts the UTF-8 encoding of c.
func (s *String) InsertRune(off int, c rune) {
	var buf [utf8.UTFMax]byte
	s.InsertBytes(off, utf8.AppendRune(buf[:0], c))
}

func (s *String) InsertS32(off int, v int32) {
	var buf [AppendS32MaxSize]byte
	s.InsertBytes(off, AppendS32(buf[:0], v))
}

func (s *String) InsertU32(off int, v uint32) {
	var buf [AppendU32MaxSize]byte
	s.InsertBytes(off, AppendU32(buf[:0], v))
}

// InsertS64 inserts v in decimal, zero padded to at least minDigits digits.
func (s *String) InsertS64(off int, v int64, minDigits int) {
	var buf [AppendS64MaxSize]byte
	s.InsertBytes(off, AppendS64(buf[:0], v, minDigits))
}

// InsertU64 inserts v in decimal, zero padded to at least minDigits digits.
func (s *String) InsertU64(off int, v uint64, minDigits int) {
	var buf [AppendU64MaxSize]byte
	s.InsertBytes(off, AppendU64(buf[:0], v, minDigits))
}

func (s *String) InsertScalar(off int, v float32) {
	var buf [AppendScalarMaxSize]byte
	s.InsertBytes(off, AppendScalar(buf[:0], v))
}

// InsertHex inserts v as upper-case hex, zero padded to at least minDigits.
func (s *String) InsertHex(off int, v uint32, minDigits int) {
	var buf [AppendHexMaxSize]byte
	s.InsertBytes(off, AppendHex(buf[:0], v, minDigits))
}

func (s *String) Append(str string) { s.Insert(-1, str) }
func (s *String) AppendBytes(b []byte) { s.InsertBytes(-1, b) }
func (s *String) AppendString(o *String) { s.InsertString(-1, o) }
func (s *String) AppendRune(c rune) { s.InsertRune(-1, c) }
func (s *String) AppendS32(v int32) { s.InsertS32(-1, v) }
func (s *String) AppendU32(v uint32) { s.InsertU32(-1, v) }
func (s *String) AppendS64(v int64, minDigits int) { s.InsertS64(-1, v, minDigits) }
func (s *String) AppendU64(v uint64, minDigits int) { s.InsertU64(-1, v, minDigits) }
func (s *String) AppendScalar(v float32) { s.InsertScalar(-1, v) }
func (s *String) AppendHex(v uint32, minDigits int) { s.InsertHex(-1, v, minDigits) }
func (s *String) Prepend(str string) { s.Insert(0, str) }
func (s *String) PrependBytes(b []byte) { s.InsertBytes(0, b) }
func (s *String) PrependString(o *String) { s.InsertString(0, o) }
func (s *String) PrependRune(c rune) { s.InsertRune(0, c) }
func (s *String) PrependS32(v int32) { s.InsertS32(0, v) }
func (s *String) PrependU32(v uint32) { s.InsertU32(0, v) }
func (s *String) PrependS64(v int64, minDigits int) { s.InsertS64(0, v, minDigits) }
func (s *String) PrependU64(v uint64, minDigits int) { s.InsertU64(0, v, minDigits) }
func (s *String) PrependScalar(v float32) { s.InsertScalar(0, v) }
func (s *String) PrependHex(v uint32, minDigits int) { s.InsertHex(0, v, minDigits) }
