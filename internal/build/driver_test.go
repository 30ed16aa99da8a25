package build

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rows [][]byte
}

func (f *fakeSource) EachRow(ctx context.Context, fn func([]byte) error) error {
	for _, r := range f.rows {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeSource) Close() error { return nil }

func rowJSON(t *testing.T, id int, title string, tagID int, tagName string) []byte {
	t.Helper()
	row := map[string]any{
		"id":      id,
		"title":   title,
		"cover":   "cdn.example.com/covers/" + title + ".jpg",
		"aliases": []string{title + " Alias"},
		"authors": []map[string]any{{"tag_id": 1, "tag_name": "Author One"}},
		"types":   []map[string]any{{"tag_id": tagID, "tag_name": tagName}},
		"hidden":  0,
	}
	data, err := json.Marshal(row)
	require.NoError(t, err)
	return data
}

func TestRunProducesManifestAndArtifacts(t *testing.T) {
	source := &fakeSource{rows: [][]byte{
		rowJSON(t, 1, "Attack on Titan", 10, "Action"),
		rowJSON(t, 2, "Death Note", 11, "Thriller"),
	}}

	outDir := t.TempDir()
	result, err := Run(context.Background(), source, Options{
		OutDir:          outDir,
		MetaShardDocs:   4096,
		IndexShardCount: 4,
	}, testLogger())
	require.NoError(t, err)
	require.True(t, result.WroteArtifacts)
	require.Equal(t, 2, result.Stats.Count)
	require.Equal(t, 1, result.Stats.AuthorDictCount)

	manifestBytes, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, json.Unmarshal(manifestBytes, &manifest))
	require.Equal(t, 3, manifest.Version)
	require.NotEmpty(t, manifest.Assets.MetaShards)
	require.NotEmpty(t, manifest.Assets.IndexShards)

	for _, a := range manifest.Assets.MetaShards {
		_, err := os.Stat(filepath.Join(outDir, a.Path))
		require.NoError(t, err)
	}

	tagsBytes, err := os.ReadFile(filepath.Join(outDir, manifest.Assets.Tags.Path))
	require.NoError(t, err)

	var tagsDoc struct {
		Version int `json:"version"`
		Tags    []struct {
			TagID int    `json:"tagId"`
			Name  string `json:"name"`
			Count int    `json:"count"`
			Bit   int    `json:"bit"`
		} `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(tagsBytes, &tagsDoc))
	require.Equal(t, 1, tagsDoc.Version)
	require.Len(t, tagsDoc.Tags, 2)
	for _, tag := range tagsDoc.Tags {
		require.NotZero(t, tag.TagID)
		require.NotEmpty(t, tag.Name)
	}
}

func TestRunSkipsRowsWithoutIntegerID(t *testing.T) {
	row := map[string]any{"id": "not-an-int", "title": "Bad Row"}
	data, err := json.Marshal(row)
	require.NoError(t, err)

	source := &fakeSource{rows: [][]byte{data, rowJSON(t, 1, "Good Row", 1, "Tag")}}
	outDir := t.TempDir()

	result, err := Run(context.Background(), source, Options{OutDir: outDir, IndexShardCount: 2}, testLogger())
	require.NoError(t, err)
	require.Equal(t, 1, result.Skipped)
	require.Equal(t, 1, result.Stats.Count)
}

func TestRunRejectsTooManyTags(t *testing.T) {
	var rows [][]byte
	for i := 0; i < 60; i++ {
		rows = append(rows, rowJSON(t, i+1, "Title", i, "Tag"))
	}
	source := &fakeSource{rows: rows}
	outDir := t.TempDir()

	_, err := Run(context.Background(), source, Options{OutDir: outDir}, testLogger())
	require.Error(t, err)
}
