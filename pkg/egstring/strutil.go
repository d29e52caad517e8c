package egstring

import (
	"bytes"
	"strconv"
	"strings"
	"unsafe"
)

// Largest output of each Append helper, including a sign.
const (
	AppendU32MaxSize    = 10
	AppendS32MaxSize    = AppendU32MaxSize + 1
	AppendU64MaxSize    = 20
	AppendS64MaxSize    = AppendU64MaxSize + 1
	AppendScalarMaxSize = 15
	AppendHexMaxSize    = 8
)

const hexDigits = "0123456789ABCDEF"

func view(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func StartsWith(b []byte, prefix string) bool { return bytes.HasPrefix(b, view(prefix)) }
func EndsWith(b []byte, suffix string) bool { return bytes.HasSuffix(b, view(suffix)) }

func StartsWithByte(b []byte, c byte) bool { return len(b) > 0 && b[0] == c }
func EndsWithByte(b []byte, c byte) bool { return len(b) > 0 && b[len(b)-1] == c }

// StartsWithOneOf checks b against a NUL separated list of prefixes and
// returns the index of the first that matches, or -1. A trailing NUL ends
// the list.
func StartsWithOneOf(b []byte, prefixes string) int {
	prefixes = strings.TrimSuffix(prefixes, "\x00")
	for i, p := range strings.Split(prefixes, "\x00") {
		if StartsWith(b, p) {
			return i
		}
	}
	return -1
}

func Find(b []byte, sub string) int { return bytes.Index(b, view(sub)) }
func FindLastOf(b []byte, sub string) int { return bytes.LastIndex(b, view(sub)) }
func Contains(b []byte, sub string) bool { return Find(b, sub) >= 0 }
func ContainsByte(b []byte, c byte) bool { return bytes.IndexByte(b, c) >= 0 }

// AppendU32 appends v in decimal.
func AppendU32(dst []byte, v uint32) []byte {
	return strconv.AppendUint(dst, uint64(v), 10)
}

// AppendS32 appends v in decimal with a leading '-' when negative.
func AppendS32(dst []byte, v int32) []byte {
	return strconv.AppendInt(dst, int64(v), 10)
}

// AppendU64 appends v in decimal, left padded with zeros to minDigits.
// Padding stops at AppendU64MaxSize digits.
func AppendU64(dst []byte, v uint64, minDigits int) []byte {
	var tmp [AppendU64MaxSize]byte
	digits := strconv.AppendUint(tmp[:0], v, 10)
	for i := len(digits); i < min(minDigits, AppendU64MaxSize); i++ {
		dst = append(dst, '0')
	}
	return append(dst, digits...)
}

// AppendS64 is AppendU64 for signed values; the sign does not count as a digit.
func AppendS64(dst []byte, v int64, minDigits int) []byte {
	u := uint64(v)
	if v < 0 {
		dst = append(dst, '-')
		u = -u
	}
	return AppendU64(dst, u, minDigits)
}

// AppendScalar appends the shortest decimal form that reads back as v.
func AppendScalar(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
}

// AppendHex appends v in upper-case hex, left padded with zeros to minDigits.
func AppendHex(dst []byte, v uint32, minDigits int) []byte {
	var tmp [AppendHexMaxSize]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = hexDigits[v&0xF]
		v >>= 4
		if v == 0 {
			break
		}
	}
	for n := len(tmp) - i; n < min(minDigits, AppendHexMaxSize); n++ {
		dst = append(dst, '0')
	}
	return append(dst, tmp[i:]...)
}
