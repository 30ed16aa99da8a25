package dictpack

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/zmhindex/internal/postings"
)

func TestPackHeaderAndOrdering(t *testing.T) {
	entries := []postings.Entry{
		{Key: 10, ShardID: 0, Offset: 0, Length: 2, DocFreq: 1},
		{Key: 20, ShardID: 1, Offset: 0, Length: 3, DocFreq: 2},
	}
	data, err := Pack(entries)
	require.NoError(t, err)

	assert.Equal(t, Magic, string(data[0:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[4:6]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[8:12]))
}

func TestPackRejectsUnsortedOrDuplicateKeys(t *testing.T) {
	_, err := Pack([]postings.Entry{{Key: 20}, {Key: 10}})
	assert.Error(t, err)

	_, err = Pack([]postings.Entry{{Key: 10}, {Key: 10}})
	assert.Error(t, err)
}
