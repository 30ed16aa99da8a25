package authorsdict

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackSortsByAscendingID(t *testing.T) {
	data, err := Pack(map[int]string{30: "Charlie", 10: "Alice", 20: "Bob"})
	require.NoError(t, err)

	assert.Equal(t, Magic, string(data[0:4]))
	assert.Equal(t, uint16(Version), binary.LittleEndian.Uint16(data[4:6]))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(data[8:12]))
	assert.Equal(t, uint16(10), binary.LittleEndian.Uint16(data[16:18]))
	assert.Equal(t, uint16(20), binary.LittleEndian.Uint16(data[18:20]))
	assert.Equal(t, uint16(30), binary.LittleEndian.Uint16(data[20:22]))
}

func TestPackEmpty(t *testing.T) {
	data, err := Pack(map[int]string{})
	require.NoError(t, err)
	assert.Equal(t, Magic, string(data[0:4]))
}

func TestPackRejectsOutOfRangeID(t *testing.T) {
	_, err := Pack(map[int]string{70000: "x"})
	assert.Error(t, err)
}
