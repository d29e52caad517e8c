package common

import (
	"math"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vertex struct {
	Pos   [3]float32
	Color uint32
}

func TestIsPlain(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"int32", reflect.TypeFor[int32](), true},
		{"float64", reflect.TypeFor[float64](), true},
		{"struct", reflect.TypeFor[vertex](), true},
		{"array of struct", reflect.TypeFor[[4]vertex](), true},
		{"int", reflect.TypeFor[int](), false},
		{"string", reflect.TypeFor[string](), false},
		{"pointer", reflect.TypeFor[*int32](), false},
		{"slice field", reflect.TypeFor[struct{ B []byte }](), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsPlain(tc.typ))
		})
	}
}

func TestVarUintRoundTrip(t *testing.T) {
	condition := func(x uint64) bool {
		buf := WriteVarUintTo(nil, x)
		got, n := ReadVarUint(buf)
		return got == x && n == len(buf)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))

	buf := WriteVarUintTo([]byte{0xAA}, math.MaxUint64)
	assert.Len(t, buf, 11)
	got, n := ReadVarUint(buf[1:])
	assert.Equal(t, uint64(math.MaxUint64), got)
	assert.Equal(t, 10, n)
}

func TestReadVarUintTruncated(t *testing.T) {
	_, n := ReadVarUint([]byte{0x80, 0x80})
	assert.Zero(t, n)
	_, n = ReadVarUint(nil)
	assert.Zero(t, n)
}

func TestBytesAliases(t *testing.T) {
	s := []uint16{0x0102, 0x0304}
	b := Bytes(s)
	require.Len(t, b, 4)
	b[0] = 0xFF
	assert.NotEqual(t, uint16(0x0102), s[0])
	assert.Nil(t, Bytes[uint16](nil))
}
