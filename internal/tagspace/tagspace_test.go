package tagspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorFreezeAssignsBitsByAscendingID(t *testing.T) {
	c := NewCollector()
	c.Observe(30, "Action")
	c.Observe(10, "Comedy")
	c.Observe(10, "Comedy")
	c.Observe(20, "")

	space, err := c.Freeze()
	require.NoError(t, err)

	tags := space.Tags()
	require.Len(t, tags, 3)
	assert.Equal(t, Tag{ID: 10, Name: "Comedy", Count: 2, Bit: 0}, tags[0])
	assert.Equal(t, Tag{ID: 20, Name: "20", Count: 1, Bit: 1}, tags[1])
	assert.Equal(t, Tag{ID: 30, Name: "Action", Count: 1, Bit: 2}, tags[2])
}

func TestFreezeRejectsTooManyTags(t *testing.T) {
	c := NewCollector()
	for i := 0; i < MaxTags+1; i++ {
		c.Observe(i, "x")
	}
	_, err := c.Freeze()
	assert.Error(t, err)
}

func TestMaskSpansLoHiEx(t *testing.T) {
	c := NewCollector()
	for i := 0; i < 50; i++ {
		c.Observe(i, "t")
	}
	space, err := c.Freeze()
	require.NoError(t, err)

	lo, hi, ex := space.Mask([]int{0, 31, 32, 47, 48, 49})
	assert.Equal(t, uint32(1)|uint32(1)<<31, lo)
	assert.Equal(t, uint16(1)|uint16(1)<<15, hi)
	assert.Equal(t, uint8(0b11), ex)
}

func TestSortedByPopularity(t *testing.T) {
	tags := []Tag{
		{ID: 1, Name: "B", Count: 1},
		{ID: 2, Name: "A", Count: 5},
		{ID: 3, Name: "A", Count: 5},
	}
	sorted := SortedByPopularity(tags)
	assert.Equal(t, []int{2, 3, 1}, []int{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}
