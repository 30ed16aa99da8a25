package coverurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		raw, base, path string
	}{
		{"", "", ""},
		{"   ", "", ""},
		{"//cdn.example.com/x.jpg", "https://cdn.example.com", "/x.jpg"},
		{"http://cdn.example.com/x.jpg", "http://cdn.example.com", "/x.jpg"},
		{"https://cdn.example.com/x.jpg?v=2", "https://cdn.example.com", "/x.jpg?v=2"},
		{"/static/x.jpg", "", "/static/x.jpg"},
		{"s3://bucket/x.jpg", "", "s3://bucket/x.jpg"},
		{"cdn.example.com/x.jpg", "https://cdn.example.com", "/x.jpg"},
		{"cdn.example.com", "https://cdn.example.com", ""},
	}
	for _, c := range cases {
		base, path := Split(c.raw)
		assert.Equal(t, c.base, base, "raw=%q", c.raw)
		assert.Equal(t, c.path, path, "raw=%q", c.raw)
	}
}

func TestNormalizeStoredThenSplitReexpandsToHTTPS(t *testing.T) {
	// The quirk: a cover originally "https://cdn.example.com/x.jpg" is
	// pre-shortened to "cdn.example.com/x.jpg" before Split ever sees it,
	// and Split re-derives the same "https://" base via the bare
	// host/path branch rather than the scheme-prefixed branch.
	stored := NormalizeStored("https://cdn.example.com/x.jpg")
	assert.Equal(t, "cdn.example.com/x.jpg", stored)

	base, path := Split(stored)
	assert.Equal(t, "https://cdn.example.com", base)
	assert.Equal(t, "/x.jpg", path)
}

func TestInternerAssignsStableIndices(t *testing.T) {
	in := NewInterner()
	assert.Equal(t, 0, in.Intern(""))
	assert.Equal(t, 1, in.Intern("https://a.example"))
	assert.Equal(t, 2, in.Intern("https://b.example"))
	assert.Equal(t, 1, in.Intern("https://a.example"))
	assert.Equal(t, []string{"", "https://a.example", "https://b.example"}, in.Bases())
}
