package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	key := DeriveKey("hunter2", "/dist")

	token, err := Sign(key, "deadbeef", "2026-08-01T00:00:00Z", "018f9a1e-0000-7000-8000-000000000000")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Verify(key, token)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", claims.SHA256)
	assert.Equal(t, "2026-08-01T00:00:00Z", claims.GeneratedAt)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	key := DeriveKey("hunter2", "/dist")
	token, err := Sign(key, "deadbeef", "2026-08-01T00:00:00Z", "build-1")
	require.NoError(t, err)

	wrongKey := DeriveKey("hunter3", "/dist")
	_, err = Verify(wrongKey, token)
	require.Error(t, err)
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	a := DeriveKey("hunter2", "/dist")
	b := DeriveKey("hunter2", "/dist")
	assert.Equal(t, a, b)

	c := DeriveKey("hunter2", "/other-dist")
	assert.NotEqual(t, a, c)
}
