package postings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSequentialAndParallelAgree(t *testing.T) {
	b := NewBuilder()
	b.Add(100, 5)
	b.Add(100, 1)
	b.Add(200, 1)
	b.Add(300, 2)
	b.Add(300, 3)

	seqEntries, seqShards, err := Build(context.Background(), b, 4, false)
	require.NoError(t, err)

	b2 := NewBuilder()
	b2.Add(100, 5)
	b2.Add(100, 1)
	b2.Add(200, 1)
	b2.Add(300, 2)
	b2.Add(300, 3)
	parEntries, parShards, err := Build(context.Background(), b2, 4, true)
	require.NoError(t, err)

	assert.Equal(t, seqEntries, parEntries)
	assert.Equal(t, seqShards, parShards)
}

func TestEntriesSortedByKeyWithDocFreq(t *testing.T) {
	b := NewBuilder()
	b.Add(50, 3)
	b.Add(10, 1)
	b.Add(10, 2)

	entries, _, err := Build(context.Background(), b, 1, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(10), entries[0].Key)
	assert.Equal(t, uint32(50), entries[1].Key)
	assert.Equal(t, uint16(2), entries[0].DocFreq)
}

func TestBuildRejectsDocFrequencyOverflow(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 0x10000; i++ {
		b.Add(7, int64(i))
	}

	_, _, err := Build(context.Background(), b, 1, false)
	require.Error(t, err)
}

func TestShardIDStableAndBounded(t *testing.T) {
	assert.Equal(t, uint8(0), ShardID(12345, 1))
	for _, key := range []uint32{0, 1, 42, 1 << 31, 0xFFFFFFFF} {
		sid := ShardID(key, 8)
		assert.Less(t, sid, uint8(8))
		assert.Equal(t, sid, ShardID(key, 8), "routing must be deterministic")
	}
}
