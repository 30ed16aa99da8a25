package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowBasic(t *testing.T) {
	raw := []byte(`{
		"id": 42,
		"title": "Attack on Titan",
		"cover": "cdn.example.com/a.jpg",
		"aliases": ["AoT", "Shingeki"],
		"authors": [{"tag_id": 1, "tag_name": "Hajime Isayama"}],
		"types": [{"tag_id": 7, "tag_name": "Action"}],
		"hidden": 0,
		"isHideChapter": 0,
		"canRead": true,
		"is_lock": 0
	}`)

	row, ok, err := ParseRow(raw)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int64(42), row.ID)
	assert.Equal(t, "Attack on Titan", row.Title)
	assert.Equal(t, []string{"AoT", "Shingeki"}, row.Aliases)
	assert.Equal(t, []TagRef{{TagID: 1, Name: "Hajime Isayama"}}, row.Authors)
	assert.Equal(t, []TagRef{{TagID: 7, Name: "Action"}}, row.Tags)
	assert.False(t, row.Hidden)
	assert.False(t, row.HideChapter)
	assert.False(t, row.NeedLogin, "canRead=true means login not required")
	assert.False(t, row.IsLock)
}

func TestParseRowRejectsNonIntegerID(t *testing.T) {
	_, ok, err := ParseRow([]byte(`{"id": "not-a-number"}`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNeedLoginPrecedence(t *testing.T) {
	// canRead=false takes precedence over is_need_login.
	row, ok, err := ParseRow([]byte(`{"id": 1, "canRead": false, "is_need_login": 0}`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, row.NeedLogin)

	// No usable canRead: falls back to is_need_login.
	row, ok, err = ParseRow([]byte(`{"id": 1, "canRead": "unknown", "is_need_login": 1}`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, row.NeedLogin)

	// Neither field present: defaults to not requiring login.
	row, ok, err = ParseRow([]byte(`{"id": 1}`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, row.NeedLogin)
}

func TestHideChapterRequiresExactIntegerOne(t *testing.T) {
	row, _, err := ParseRow([]byte(`{"id": 1, "isHideChapter": 1}`))
	require.NoError(t, err)
	assert.True(t, row.HideChapter)

	row, _, err = ParseRow([]byte(`{"id": 1, "isHideChapter": "1"}`))
	require.NoError(t, err)
	assert.False(t, row.HideChapter, "a string \"1\" must not satisfy the strict == 1 check")
}

func TestAuthorsSkipNonIntegerOrEmptyNameEntries(t *testing.T) {
	raw := []byte(`{"id": 1, "authors": [
		{"tag_id": "x", "tag_name": "Bad ID"},
		{"tag_id": 5, "tag_name": ""},
		{"tag_id": 9, "tag_name": "Good"}
	]}`)
	row, ok, err := ParseRow(raw)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []TagRef{{TagID: 9, Name: "Good"}}, row.Authors)
}
