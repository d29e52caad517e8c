package egstring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartsWithOneOf(t *testing.T) {
	prefixes := "#version\x00#define\x00#include\x00"
	assert.Equal(t, 0, StartsWithOneOf([]byte("#version 450"), prefixes))
	assert.Equal(t, 2, StartsWithOneOf([]byte("#include <x>"), prefixes))
	assert.Equal(t, -1, StartsWithOneOf([]byte("void main()"), prefixes))
	assert.Equal(t, -1, StartsWithOneOf(nil, prefixes))
}

func TestPrefixSuffix(t *testing.T) {
	b := []byte("main.frag")
	assert.True(t, StartsWith(b, "main"))
	assert.True(t, StartsWith(b, ""))
	assert.False(t, StartsWith(b, "main.frag.x"))
	assert.True(t, EndsWith(b, ".frag"))
	assert.False(t, EndsWithByte(nil, 'g'))
	assert.True(t, StartsWithByte(b, 'm'))
	assert.Equal(t, 4, Find(b, "."))
	assert.Equal(t, -1, FindLastOf(b, "z"))
}

func TestAppendNumbers(t *testing.T) {
	cases := []struct {
		name string
		got  []byte
		want string
	}{
		{"u32 zero", AppendU32(nil, 0), "0"},
		{"u32 max", AppendU32(nil, math.MaxUint32), "4294967295"},
		{"s32 min", AppendS32(nil, math.MinInt32), "-2147483648"},
		{"u64 max", AppendU64(nil, math.MaxUint64, 0), "18446744073709551615"},
		{"u64 padded", AppendU64(nil, 42, 5), "00042"},
		{"u64 pad capped", AppendU64(nil, 1, 99), "00000000000000000001"},
		{"s64 padded", AppendS64(nil, -42, 4), "-0042"},
		{"s64 min", AppendS64(nil, math.MinInt64, 0), "-9223372036854775808"},
		{"hex", AppendHex(nil, 0xDEADBEEF, 0), "DEADBEEF"},
		{"hex zero", AppendHex(nil, 0, 0), "0"},
		{"hex padded", AppendHex(nil, 0x1F, 4), "001F"},
		{"scalar", AppendScalar(nil, -0.5), "-0.5"},
		{"scalar small", AppendScalar(nil, 1e-7), "1e-07"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(tc.got))
		})
	}
}

func TestAppendMaxSizes(t *testing.T) {
	assert.Len(t, AppendS32(nil, math.MinInt32), AppendS32MaxSize)
	assert.Len(t, AppendS64(nil, math.MinInt64, AppendU64MaxSize), AppendS64MaxSize)
	assert.LessOrEqual(t, len(AppendScalar(nil, -math.SmallestNonzeroFloat32)), AppendScalarMaxSize)
	assert.LessOrEqual(t, len(AppendScalar(nil, -math.MaxFloat32)), AppendScalarMaxSize)
}
