// Package snapshot writes arrays of plain values and strings to
// self-checking frames and reads them back.
//
// Frame layout, all integers little-endian:
//
//	magic(2) type(1) length(4) flags(1) varint(count) varint(elemSize) payload crc32(4)
//
// length covers the whole frame including the CRC, which is computed over
// everything after the magic. Element bytes are stored in host byte order.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/rawbytedev/egbase/internal/common"
	"github.com/rawbytedev/egbase/pkg/safemath"
)

const (
	Magic0 = 0xE6
	Magic1 = 0xA7

	TypeArray  byte = 0x01
	TypeString byte = 0x02

	// FlagZstd marks a zstd compressed payload.
	FlagZstd byte = 1 << 0

	// MaxDecodedSize bounds the payload a compressed frame may expand to.
	MaxDecodedSize = 1 << 30

	flagsKnown = FlagZstd
	fixedHead  = 2 + 1 + 4 + 1
	crcSize    = 4
)

var (
	ErrBadMagic           = errors.New("snapshot: bad magic")
	ErrWrongType          = errors.New("snapshot: unexpected frame type")
	ErrChecksum           = errors.New("snapshot: crc mismatch")
	ErrLengthMismatch     = errors.New("snapshot: length mismatch")
	ErrElemSize           = errors.New("snapshot: element size mismatch")
	ErrNotPlain           = errors.New("snapshot: element type is not plain data")
	ErrUnknownCompression = errors.New("snapshot: unknown flags")
)

// header is the decoded fixed part of a frame.
type header struct {
	typ      byte
	flags    byte
	count    uint64
	elemSize uint64
}

func writePreamble(buf []byte, t byte) []byte {
	return append(buf, Magic0, Magic1, t)
}

// encodeFrame assembles a frame around an already encoded payload.
func encodeFrame(h header, payload []byte) []byte {
	out := make([]byte, 0, fixedHead+20+len(payload)+crcSize)
	out = writePreamble(out, h.typ)
	out = binary.LittleEndian.AppendUint32(out, 0) // length placeholder
	out = append(out, h.flags)
	out = common.WriteVarUintTo(out, h.count)
	out = common.WriteVarUintTo(out, h.elemSize)
	out = append(out, payload...)

	binary.LittleEndian.PutUint32(out[3:], uint32(len(out)+crcSize))
	crc := crc32.ChecksumIEEE(out[2:])
	return binary.LittleEndian.AppendUint32(out, crc)
}

// decodeFrame validates a frame of the wanted type and returns its header
// and the still encoded payload, which aliases data.
func decodeFrame(data []byte, want byte) (header, []byte, error) {
	var h header
	if len(data) < fixedHead+2+crcSize {
		return h, nil, fmt.Errorf("%w: %d bytes is shorter than any frame", ErrLengthMismatch, len(data))
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return h, nil, ErrBadMagic
	}
	if h.typ = data[2]; h.typ != want {
		return h, nil, fmt.Errorf("%w: got %#x, want %#x", ErrWrongType, h.typ, want)
	}
	if length := binary.LittleEndian.Uint32(data[3:]); int(length) != len(data) {
		return h, nil, fmt.Errorf("%w: header says %d, got %d", ErrLengthMismatch, length, len(data))
	}
	end := len(data) - crcSize
	if crc32.ChecksumIEEE(data[2:end]) != binary.LittleEndian.Uint32(data[end:]) {
		return h, nil, ErrChecksum
	}
	if h.flags = data[7]; h.flags&^flagsKnown != 0 {
		return h, nil, fmt.Errorf("%w: %#x", ErrUnknownCompression, h.flags)
	}

	off := fixedHead
	var n int
	if h.count, n = common.ReadVarUint(data[off:end]); n == 0 {
		return h, nil, fmt.Errorf("%w: truncated count", ErrLengthMismatch)
	}
	off += n
	if h.elemSize, n = common.ReadVarUint(data[off:end]); n == 0 {
		return h, nil, fmt.Errorf("%w: truncated element size", ErrLengthMismatch)
	}
	off += n
	return h, data[off:end], nil
}

// rawSize is the decoded payload size the header promises. An uncompressed
// payload must already have that size.
func (h header) rawSize(payload []byte) (int, error) {
	var s safemath.SafeMath
	n := s.Mul(uint(h.count), uint(h.elemSize))
	if !s.Ok() || h.count > uint64(^uint(0)>>1) || n > uint(^uint(0)>>1) {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrLengthMismatch, h.count, h.elemSize)
	}
	if h.flags&FlagZstd != 0 && n > MaxDecodedSize {
		return 0, fmt.Errorf("%w: %d decoded bytes exceeds %d", ErrLengthMismatch, n, MaxDecodedSize)
	}
	if h.flags&FlagZstd == 0 && uint(len(payload)) != n {
		return 0, fmt.Errorf("%w: payload %d bytes, want %d", ErrLengthMismatch, len(payload), n)
	}
	return int(n), nil
}
