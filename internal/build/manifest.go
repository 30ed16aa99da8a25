// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Manifest assembly: content-addressed filenames, the v3 manifest.json
schema, and the stats v5 block. This file owns no encoding logic of its
own — it only hashes, names, and records the artifact bytes driver.go
already produced.
*/
package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Asset describes one emitted artifact as it appears in the manifest.
type Asset struct {
	Bytes  int64  `json:"bytes"`
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// Assets groups every artifact family the manifest tracks.
type Assets struct {
	Authors     Asset   `json:"authors"`
	Dict        Asset   `json:"dict"`
	IndexShards []Asset `json:"indexShards"`
	MetaShards  []Asset `json:"metaShards"`
	Tags        Asset   `json:"tags"`
}

// Stats is the v5 statistics block embedded in the manifest.
type Stats struct {
	AuthorDictCount int    `json:"authorDictCount"`
	Count           int    `json:"count"`
	IndexBytes      int64  `json:"indexBytes"`
	IndexShardCount int    `json:"indexShardCount"`
	IndexShardMode  string `json:"indexShardMode"`
	MetaShardCount  int    `json:"metaShardCount"`
	MetaShardDocs   int    `json:"metaShardDocs"`
	UniqueTokens    int    `json:"uniqueTokens"`
	Version         int    `json:"version"`
}

// Manifest is the v3 top-level document written as manifest.json.
type Manifest struct {
	Assets      Assets `json:"assets"`
	GeneratedAt string `json:"generatedAt"`
	Stats       Stats  `json:"stats"`
	Version     int    `json:"version"`
}

const manifestVersion = 3
const statsVersion = 5

// stagedFile is one artifact waiting to be named, hashed, and written.
type stagedFile struct {
	stem string
	ext  string
	data []byte
}

// addressed is a stagedFile after content-addressing.
type addressed struct {
	name   string
	sha256 string
	bytes  int64
	data   []byte
}

// address computes the content-addressed filename for f: the stem, the
// first 12 hex characters of the SHA-256 of its bytes, then the
// extension.
func address(f stagedFile) addressed {
	sum := sha256.Sum256(f.data)
	full := hex.EncodeToString(sum[:])
	return addressed{
		name:   fmt.Sprintf("%s.%s%s", f.stem, full[:12], f.ext),
		sha256: full,
		bytes:  int64(len(f.data)),
		data:   f.data,
	}
}

func (a addressed) asset() Asset {
	return Asset{
		Path:   filepath.Join("assets", a.name),
		SHA256: a.sha256,
		Bytes:  a.bytes,
	}
}

// managedPrefixes lists the filename prefixes --clean is allowed to
// remove from a prior build. manifest.json and .gitkeep are never
// touched regardless of this list.
var managedPrefixes = []string{"meta-lite.", "ngram.dict.", "ngram.index.", "authors.dict.", "tags."}

// writeArtifacts stages every addressed file under outDir/assets via a
// temporary sibling directory, then renames each into place only after
// every write has succeeded — a failure partway through never leaves a
// half-written file under outDir itself.
func writeArtifacts(outDir string, files []addressed, manifest Manifest, generatedAt time.Time) error {
	assetsDir := filepath.Join(outDir, "assets")
	stagingDir := assetsDir + ".staging"

	if err := os.RemoveAll(stagingDir); err != nil {
		return fmt.Errorf("build: clear staging dir: %w", err)
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return fmt.Errorf("build: create staging dir: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	for _, f := range files {
		path := filepath.Join(stagingDir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return fmt.Errorf("build: stage %s: %w", f.name, err)
		}
	}

	manifestBytes, err := marshalCompact(manifest)
	if err != nil {
		return fmt.Errorf("build: marshal manifest: %w", err)
	}

	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return fmt.Errorf("build: create assets dir: %w", err)
	}
	for _, f := range files {
		src := filepath.Join(stagingDir, f.name)
		dst := filepath.Join(assetsDir, f.name)
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("build: publish %s: %w", f.name, err)
		}
	}

	if err := os.WriteFile(filepath.Join(outDir, "manifest.json"), manifestBytes, 0o644); err != nil {
		return fmt.Errorf("build: write manifest.json: %w", err)
	}

	return nil
}

// marshalCompact serializes v with no extraneous whitespace and, for map
// values, lexicographically sorted keys — [json.Marshal] already does
// both for Go maps; struct fields are declared in alphabetical key order
// throughout this package so the same property holds for them too.
func marshalCompact(v any) ([]byte, error) {
	return json.Marshal(v)
}

// cleanStale removes files in assetsDir whose name starts with a managed
// prefix but is not in keep. It is only invoked after a fully successful
// publish, never on failure.
func cleanStale(assetsDir string, keep map[string]bool) error {
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("build: read assets dir for cleanup: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if keep[name] {
			continue
		}
		for _, prefix := range managedPrefixes {
			if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
				if err := os.Remove(filepath.Join(assetsDir, name)); err != nil {
					return fmt.Errorf("build: remove stale asset %s: %w", name, err)
				}
				break
			}
		}
	}
	return nil
}
