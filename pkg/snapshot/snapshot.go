package snapshot

import (
	"fmt"
	"math"
	"reflect"

	"github.com/rawbytedev/egbase"
	"github.com/rawbytedev/egbase/internal/common"
	"github.com/rawbytedev/egbase/internal/debuglog"
	"github.com/rawbytedev/egbase/pkg/egstring"
)

func checkPlain[T any]() (int, error) {
	t := reflect.TypeFor[T]()
	if !common.IsPlain(t) {
		return 0, fmt.Errorf("%w: %v", ErrNotPlain, t)
	}
	return int(t.Size()), nil
}

// EncodeArray writes the elements of a into a frame. T must be plain data.
func EncodeArray[T any](a *egbase.Array[T], flags byte) ([]byte, error) {
	size, err := checkPlain[T]()
	if err != nil {
		return nil, err
	}
	payload, err := compressPayload(flags, common.Bytes(a.Data()))
	if err != nil {
		return nil, err
	}
	debuglog.Debugf("snapshot: array of %d x %d bytes, payload %d", a.Len(), size, len(payload))
	return encodeFrame(header{
		typ:      TypeArray,
		flags:    flags,
		count:    uint64(a.Len()),
		elemSize: uint64(size),
	}, payload), nil
}

// DecodeArray replaces the contents of dst with the elements stored in data.
// dst is left untouched when the frame is rejected.
func DecodeArray[T any](data []byte, dst *egbase.Array[T]) error {
	size, err := checkPlain[T]()
	if err != nil {
		return err
	}
	h, payload, err := decodeFrame(data, TypeArray)
	if err != nil {
		return err
	}
	if h.elemSize != uint64(size) {
		return fmt.Errorf("%w: frame has %d bytes, %v has %d", ErrElemSize, h.elemSize, reflect.TypeFor[T](), size)
	}
	n, err := h.rawSize(payload)
	if err != nil {
		return err
	}
	raw, err := decompressPayload(h.flags, payload, n)
	if err != nil {
		return err
	}
	if err := dst.Reset(int(h.count)); err != nil {
		return err
	}
	copy(common.Bytes(dst.Data()), raw)
	return nil
}

// EncodeString writes the bytes of s into a frame.
func EncodeString(s *egstring.String, flags byte) ([]byte, error) {
	payload, err := compressPayload(flags, s.Bytes())
	if err != nil {
		return nil, err
	}
	return encodeFrame(header{
		typ:      TypeString,
		flags:    flags,
		count:    uint64(s.Len()),
		elemSize: 1,
	}, payload), nil
}

// DecodeString replaces the contents of dst with the string stored in data.
func DecodeString(data []byte, dst *egstring.String) error {
	h, payload, err := decodeFrame(data, TypeString)
	if err != nil {
		return err
	}
	if h.elemSize != 1 {
		return fmt.Errorf("%w: string frame has %d byte elements", ErrElemSize, h.elemSize)
	}
	n, err := h.rawSize(payload)
	if err != nil {
		return err
	}
	if n > math.MaxInt32-16 {
		return fmt.Errorf("%w: %d bytes", egbase.ErrCapacityOverflow, n)
	}
	raw, err := decompressPayload(h.flags, payload, n)
	if err != nil {
		return err
	}
	dst.Destroy()
	*dst = egstring.FromBytes(raw)
	return nil
}
