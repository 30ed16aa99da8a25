package ngram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "attackontitan", Normalize("Attack-on Titan!"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   !!!   "))
	// NFKC folds fullwidth forms to their ASCII equivalents before case-folding.
	assert.Equal(t, "abc123", Normalize("ＡＢＣ１２３"))
}

func TestBigrams(t *testing.T) {
	assert.Equal(t, []string{"ti", "it", "ta", "an"}, Bigrams("titan"))
	assert.Nil(t, Bigrams("t"))
	assert.Nil(t, Bigrams(""))
}

func TestTokenKey(t *testing.T) {
	key, ok := TokenKey("ti")
	require.True(t, ok)
	assert.Equal(t, uint32('t')<<16|uint32('i'), key)

	// A bigram that includes a non-BMP rune (surrogate pair) cannot be
	// packed into a single uint16 unit and must be rejected.
	_, ok = TokenKey("t\U0001F600")
	assert.False(t, ok)

	// Anything that isn't exactly two runes is also rejected.
	_, ok = TokenKey("t")
	assert.False(t, ok)
}
