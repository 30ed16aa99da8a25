package binpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDeltaVarints(t *testing.T) {
	out, err := EncodeDeltaVarints([]int64{1, 3, 4, 300}, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = EncodeDeltaVarints([]int64{5, 5}, 0)
	assert.Error(t, err, "non-increasing sequence must be rejected")

	_, err = EncodeDeltaVarints([]int64{3, 2}, 0)
	assert.Error(t, err)
}

func TestPutUvarintRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 16384, 1 << 40} {
		buf := PutUvarint(nil, v)
		got, n := decodeUvarint(buf)
		require.Equal(t, len(buf), n)
		assert.Equal(t, v, got)
	}
}

func decodeUvarint(buf []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, b := range buf {
		v |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return v, i + 1
		}
		shift += 7
	}
	return v, len(buf)
}

func TestPad4(t *testing.T) {
	assert.Len(t, Pad4([]byte{1, 2, 3}), 4)
	assert.Len(t, Pad4([]byte{1, 2, 3, 4}), 4)
	assert.Len(t, Pad4(nil), 0)
}

func TestBuildStringPool(t *testing.T) {
	pool := BuildStringPool([]string{"ab", "", "cde"})
	assert.Equal(t, "abcde", string(pool.Payload))
	assert.Len(t, pool.Offsets, 4*4)
}

func TestBuildU16ListPool(t *testing.T) {
	pool, err := BuildU16ListPool([][]int{{1, 2}, {}, {65535}})
	require.NoError(t, err)
	assert.Len(t, pool.Payload, 3*2)

	_, err = BuildU16ListPool([][]int{{70000}})
	assert.Error(t, err)
}
