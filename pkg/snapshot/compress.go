package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	})
)

// compressPayload encodes raw according to flags.
func compressPayload(flags byte, raw []byte) ([]byte, error) {
	switch flags {
	case 0:
		return raw, nil
	case FlagZstd:
		enc, err := zstdEncoder()
		if err != nil {
			return nil, err
		}
		return enc.EncodeAll(raw, nil), nil
	default:
		return nil, fmt.Errorf("%w: %#x", ErrUnknownCompression, flags)
	}
}

// decompressPayload returns the raw payload bytes, which must come to
// exactly n. Uncompressed payloads are returned as is.
func decompressPayload(flags byte, payload []byte, n int) ([]byte, error) {
	switch flags {
	case 0:
		if len(payload) != n {
			return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrLengthMismatch, len(payload), n)
		}
		return payload, nil
	case FlagZstd:
		dec, err := zstdDecoder()
		if err != nil {
			return nil, err
		}
		// The output grows with what the stream really holds, not with what
		// the header claims.
		out, err := dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd: %w", err)
		}
		if len(out) != n {
			return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrLengthMismatch, len(out), n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %#x", ErrUnknownCompression, flags)
	}
}
