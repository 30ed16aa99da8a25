package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{nil, 0, false},
		{true, 1, true},
		{false, 0, true},
		{float64(3), 3, true},
		{float64(3.9), 3, true},
		{"42", 42, true},
		{"abc", 0, false},
		{[]int{1}, 0, false},
	}
	for _, c := range cases {
		got, ok := CoerceInt(c.in)
		assert.Equal(t, c.ok, ok, "in=%v", c.in)
		if ok {
			assert.Equal(t, c.want, got, "in=%v", c.in)
		}
	}
}

func TestCoerceIntStrict(t *testing.T) {
	_, ok := CoerceIntStrict("1")
	assert.False(t, ok)
	_, ok = CoerceIntStrict(float64(1.5))
	assert.False(t, ok)
	v, ok := CoerceIntStrict(float64(7))
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestCoerceTriState(t *testing.T) {
	v, ok := CoerceTriState(true)
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = CoerceTriState(" YES ")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = CoerceTriState("no")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = CoerceTriState("maybe")
	assert.False(t, ok)

	v, ok = CoerceTriState(float64(1))
	assert.True(t, ok)
	assert.True(t, v)
}
