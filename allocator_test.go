package egbase

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type huge [1 << 40]byte

func TestMaxCapacity(t *testing.T) {
	assert.Equal(t, math.MaxInt32, MaxCapacity[int]())
	assert.Equal(t, math.MaxInt32, MaxCapacity[struct{}]())
	assert.Equal(t, math.MaxInt/(1<<40), MaxCapacity[huge]())
}

func TestAllocate(t *testing.T) {
	buf, err := Allocate[int](0, Growing)
	require.NoError(t, err)
	require.Nil(t, buf)

	buf, err = Allocate[int](10, ExactFit)
	require.NoError(t, err)
	require.Len(t, buf, 10)

	buf, err = Allocate[int](10, Growing)
	require.NoError(t, err)
	require.Len(t, buf, 16)

	_, err = Allocate[huge](MaxCapacity[huge]()+1, ExactFit)
	require.ErrorIs(t, err, ErrCapacityOverflow)

	requirePanicIs(t, ErrNegativeCount, func() { _, _ = Allocate[int](-1, ExactFit) })
}

func TestGrowCapacity(t *testing.T) {
	assert.Equal(t, 5, GrowCapacity(5, ExactFit, 100))
	assert.Equal(t, 8, GrowCapacity(1, Growing, 100))
	assert.Equal(t, 16, GrowCapacity(9, Growing, 100))
	assert.Equal(t, 100, GrowCapacity(90, Growing, 100))
	assert.Equal(t, 50, GrowCapacity(60, ExactFit, 50))
}

func TestGrowCapacityBounds(t *testing.T) {
	condition := func(count uint16, limitExtra uint16) bool {
		c := int(count)
		limit := c + int(limitExtra)
		got := GrowCapacity(c, Growing, limit)
		return got >= c && got <= limit && (got == limit || got%MinHeapAllocCount == 0)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}
