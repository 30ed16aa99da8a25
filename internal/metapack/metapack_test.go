package metapack

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackHeader(t *testing.T) {
	docs := []Doc{
		{ID: 1, Title: "Alpha", Cover: "cdn.example.com/a.jpg", AuthorIDs: []int{1}, TagMaskLo: 0b101},
		{ID: 5, Title: "Beta", Cover: "//cdn.example.com/b.jpg", AuthorIDs: []int{1, 2}, Aliases: []string{"B", "Bee"}},
	}

	data, err := Pack(docs)
	require.NoError(t, err)
	require.True(t, len(data) >= 16)

	assert.Equal(t, Magic, string(data[0:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[4:6]))
	docCount := binary.LittleEndian.Uint32(data[8:12])
	assert.Equal(t, uint32(2), docCount)
	assert.Equal(t, uint32(0)%4, uint32(len(data))%4)
}

func TestPackRejectsOversizedAuthorID(t *testing.T) {
	_, err := Pack([]Doc{{ID: 1, AuthorIDs: []int{70000}}})
	assert.Error(t, err)
}

func TestShardSplitsByFixedCount(t *testing.T) {
	docs := make([]Doc, 10)
	shards := Shard(docs, 4)
	require.Len(t, shards, 3)
	assert.Len(t, shards[0], 4)
	assert.Len(t, shards[1], 4)
	assert.Len(t, shards[2], 2)
}

func TestShardZeroMeansSingleShard(t *testing.T) {
	docs := make([]Doc, 7)
	shards := Shard(docs, 0)
	require.Len(t, shards, 1)
	assert.Len(t, shards[0], 7)
}
