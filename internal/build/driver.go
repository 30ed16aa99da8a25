// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package build wires the encoding engine (ngram, tagspace, coverurl,
metapack, postings, dictpack, authorsdict) to a [catalog.Source] in a
single streaming pass, then hashes, names, and writes the resulting
artifacts plus a manifest. Everything in this file is the C11 "build
driver": it owns no wire-format knowledge of its own, only the
orchestration of the packages that do.
*/
package build

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/zmhindex/internal/authorsdict"
	"github.com/taibuivan/zmhindex/internal/catalog"
	"github.com/taibuivan/zmhindex/internal/coverurl"
	"github.com/taibuivan/zmhindex/internal/dictpack"
	"github.com/taibuivan/zmhindex/internal/metapack"
	"github.com/taibuivan/zmhindex/internal/ngram"
	"github.com/taibuivan/zmhindex/internal/postings"
	"github.com/taibuivan/zmhindex/internal/tagspace"
)

// Options configures one build invocation. It mirrors the distilled
// spec's CLI flags plus --parallel and the optional C14 Redis client.
type Options struct {
	OutDir          string
	GeneratedAt     time.Time
	Clean           bool
	MetaShardDocs   int
	IndexShardCount int
	Parallel        bool

	// RedisClient enables the advisory lock and digest memoization (C14)
	// when non-nil.
	RedisClient *goredis.Client
}

// Result summarizes a completed build for logging and for the
// orchestration server's /status endpoint.
type Result struct {
	Stats          Stats
	ManifestSHA256 string
	Skipped        int
	SkippedTokens  int
	WroteArtifacts bool
}

// docBuild accumulates one document's fields across the streaming scan,
// before tag bits are known (tag bit assignment needs every row to have
// been observed first).
type docBuild struct {
	id          int64
	title       string
	cover       string
	authorIDs   []int
	aliases     []string
	tagIDs      []int
	hidden      bool
	hideChapter bool
	needLogin   bool
	isLock      bool
}

// Run performs one full build: it streams every row of source exactly
// once, then encodes and writes every artifact.
func Run(ctx context.Context, source catalog.Source, opts Options, logger *slog.Logger) (*Result, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	lock := NewLock(opts.RedisClient, opts.OutDir)
	acquired, err := lock.Acquire(ctx, logger)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("build: another build is already running against %s", opts.OutDir)
	}
	defer lock.Release(ctx, logger)

	tagCollector := tagspace.NewCollector()
	postingBuilder := postings.NewBuilder()
	authorNames := make(map[int]string)
	var docs []docBuild
	skippedRows := 0
	skippedGrams := make(map[string]struct{})

	addText := func(docKeys map[uint32]struct{}, text string) {
		for key := range collectBigramKeys(text, skippedGrams) {
			docKeys[key] = struct{}{}
		}
	}

	err = source.EachRow(ctx, func(raw []byte) error {
		row, ok, parseErr := catalog.ParseRow(raw)
		if parseErr != nil {
			return fmt.Errorf("build: parse row: %w", parseErr)
		}
		if !ok {
			skippedRows++
			return nil
		}

		docID := int64(len(docs))
		doc := docBuild{
			id:          row.ID,
			title:       row.Title,
			cover:       coverurl.NormalizeStored(row.Cover),
			aliases:     row.Aliases,
			hidden:      row.Hidden,
			hideChapter: row.HideChapter,
			needLogin:   row.NeedLogin,
			isLock:      row.IsLock,
		}

		for _, t := range row.Tags {
			tagCollector.Observe(t.TagID, t.Name)
			doc.tagIDs = append(doc.tagIDs, t.TagID)
		}

		for _, a := range row.Authors {
			if a.TagID < 0 || a.TagID > 0xFFFF {
				return fmt.Errorf("build: author id %d for comic %d exceeds uint16 range", a.TagID, row.ID)
			}
			doc.authorIDs = append(doc.authorIDs, a.TagID)
			if _, seen := authorNames[a.TagID]; !seen && a.Name != "" {
				authorNames[a.TagID] = a.Name
			}
		}

		docs = append(docs, doc)

		docKeys := make(map[uint32]struct{})
		addText(docKeys, doc.title)
		for _, alias := range doc.aliases {
			addText(docKeys, alias)
		}
		for _, a := range row.Authors {
			addText(docKeys, a.Name)
		}
		for key := range docKeys {
			postingBuilder.Add(key, docID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	tagSpace, err := tagCollector.Freeze()
	if err != nil {
		return nil, err
	}

	skippedTokens := len(skippedGrams)

	metaDocs := make([]metapack.Doc, len(docs))
	for i, d := range docs {
		lo, hi, ex := tagSpace.Mask(d.tagIDs)
		metaDocs[i] = metapack.Doc{
			ID:        d.id,
			Title:     d.title,
			Cover:     d.cover,
			AuthorIDs: d.authorIDs,
			Aliases:   d.aliases,
			TagMaskLo: lo,
			TagMaskHi: hi,
			Flags:     packFlags(d.hidden, d.hideChapter, d.needLogin, d.isLock, ex),
		}
	}

	metaShardDocs := opts.MetaShardDocs
	metaShards := metapack.Shard(metaDocs, metaShardDocs)
	metaShardFiles := make([]stagedFile, len(metaShards))
	for i, shardDocs := range metaShards {
		data, err := metapack.Pack(shardDocs)
		if err != nil {
			return nil, fmt.Errorf("build: pack meta shard %d: %w", i, err)
		}
		metaShardFiles[i] = stagedFile{stem: fmt.Sprintf("meta-lite.s%03d", i), ext: ".bin", data: data}
	}

	entries, indexShards, err := postings.Build(ctx, postingBuilder, opts.IndexShardCount, opts.Parallel)
	if err != nil {
		return nil, err
	}
	indexShardFiles := make([]stagedFile, len(indexShards))
	for i, shardData := range indexShards {
		indexShardFiles[i] = stagedFile{stem: fmt.Sprintf("ngram.index.h%03d", i), ext: ".bin", data: shardData}
	}

	dictData, err := dictpack.Pack(entries)
	if err != nil {
		return nil, err
	}
	dictFile := stagedFile{stem: "ngram.dict", ext: ".bin", data: dictData}

	authorsData, err := authorsdict.Pack(authorNames)
	if err != nil {
		return nil, err
	}
	authorsFile := stagedFile{stem: "authors.dict", ext: ".bin", data: authorsData}

	tagsData, err := marshalTags(tagSpace.Tags())
	if err != nil {
		return nil, err
	}
	tagsFile := stagedFile{stem: "tags", ext: ".json", data: tagsData}

	addressedDict := address(dictFile)
	addressedAuthors := address(authorsFile)
	addressedTags := address(tagsFile)
	addressedMeta := make([]addressed, len(metaShardFiles))
	for i, f := range metaShardFiles {
		addressedMeta[i] = address(f)
	}
	addressedIndex := make([]addressed, len(indexShardFiles))
	for i, f := range indexShardFiles {
		addressedIndex[i] = address(f)
	}

	assets := Assets{
		Authors: addressedAuthors.asset(),
		Dict:    addressedDict.asset(),
		Tags:    addressedTags.asset(),
	}
	for _, a := range addressedMeta {
		assets.MetaShards = append(assets.MetaShards, a.asset())
	}
	for _, a := range addressedIndex {
		assets.IndexShards = append(assets.IndexShards, a.asset())
	}

	effectiveMetaShardDocs := metaShardDocs
	if effectiveMetaShardDocs <= 0 {
		effectiveMetaShardDocs = len(docs)
		if effectiveMetaShardDocs == 0 {
			effectiveMetaShardDocs = 1
		}
	}

	stats := Stats{
		Version:         statsVersion,
		Count:           len(docs),
		AuthorDictCount: len(authorNames),
		UniqueTokens:    len(entries),
		IndexBytes:      totalBytes(indexShards),
		IndexShardCount: len(indexShards),
		IndexShardMode:  "tokenKeyHash",
		MetaShardDocs:   effectiveMetaShardDocs,
		MetaShardCount:  len(metaShards),
	}

	digest := stableDigest(assets)
	if unchangedSince(ctx, opts.RedisClient, opts.OutDir, digest) {
		logger.Info("build_skipped_unchanged",
			slog.String("out_dir", opts.OutDir),
			slog.Int("skipped_rows", skippedRows),
			slog.Int("skipped_tokens", skippedTokens),
		)
		return &Result{Stats: stats, ManifestSHA256: digest, Skipped: skippedRows, SkippedTokens: skippedTokens}, nil
	}

	manifest := Manifest{
		Version:     manifestVersion,
		GeneratedAt: opts.GeneratedAt.Format(time.RFC3339),
		Stats:       stats,
		Assets:      assets,
	}

	var allFiles []addressed
	allFiles = append(allFiles, addressedMeta...)
	allFiles = append(allFiles, addressedIndex...)
	allFiles = append(allFiles, addressedDict, addressedAuthors, addressedTags)

	if err := writeArtifacts(opts.OutDir, allFiles, manifest, opts.GeneratedAt); err != nil {
		return nil, err
	}

	if opts.Clean {
		keep := make(map[string]bool, len(allFiles)+2)
		keep["manifest.json"] = true
		keep[".gitkeep"] = true
		for _, f := range allFiles {
			keep[f.name] = true
		}
		if err := cleanStale(filepath.Join(opts.OutDir, "assets"), keep); err != nil {
			return nil, err
		}
	}

	rememberDigest(ctx, opts.RedisClient, logger, opts.OutDir, digest)

	logger.Info("build_completed",
		slog.Int("docs", len(docs)),
		slog.Int("unique_tokens", len(entries)),
		slog.Int("skipped_rows", skippedRows),
		slog.Int("skipped_tokens", skippedTokens),
	)

	return &Result{
		Stats:          stats,
		ManifestSHA256: digest,
		Skipped:        skippedRows,
		SkippedTokens:  skippedTokens,
		WroteArtifacts: true,
	}, nil
}

// packFlags assembles the per-document flags byte: bit0 hidden, bit1
// hideChapter, bit2 needLogin, bit3 isLock, bits4-5 tagMaskEx, bits6-7
// reserved (always 0).
func packFlags(hidden, hideChapter, needLogin, isLock bool, tagMaskEx uint8) uint8 {
	var f uint8
	if hidden {
		f |= 1 << 0
	}
	if hideChapter {
		f |= 1 << 1
	}
	if needLogin {
		f |= 1 << 2
	}
	if isLock {
		f |= 1 << 3
	}
	f |= (tagMaskEx & 0x3) << 4
	return f
}

// collectBigramKeys normalizes and tokenizes text, returning the set of
// distinct token keys it yields. Bigrams that can't be encoded (outside
// the BMP) are recorded in skippedGrams and silently dropped, matching
// the non-fatal token-rejection rule. skippedGrams accumulates distinct
// rejected bigrams across the whole build so the final skipped-token
// count reflects distinct tokens, not one increment per occurrence.
func collectBigramKeys(text string, skippedGrams map[string]struct{}) map[uint32]struct{} {
	normalized := ngram.Normalize(text)
	grams := ngram.Bigrams(normalized)
	if len(grams) == 0 {
		return nil
	}
	keys := make(map[uint32]struct{}, len(grams))
	for _, g := range grams {
		key, ok := ngram.TokenKey(g)
		if !ok {
			skippedGrams[g] = struct{}{}
			continue
		}
		keys[key] = struct{}{}
	}
	return keys
}

// tagJSON is the on-disk shape of one tags.json entry.
type tagJSON struct {
	Bit   int    `json:"bit"`
	Count int    `json:"count"`
	Name  string `json:"name"`
	TagID int    `json:"tagId"`
}

// tagsDocument is the tags.json envelope: a version marker plus the
// entry list, matching the original build_index.py output.
type tagsDocument struct {
	Tags    []tagJSON `json:"tags"`
	Version int       `json:"version"`
}

func marshalTags(tags []tagspace.Tag) ([]byte, error) {
	sorted := tagspace.SortedByPopularity(tags)
	out := make([]tagJSON, len(sorted))
	for i, t := range sorted {
		out[i] = tagJSON{TagID: t.ID, Name: t.Name, Count: t.Count, Bit: t.Bit}
	}
	return json.Marshal(tagsDocument{Version: 1, Tags: out})
}

func totalBytes(shards [][]byte) int64 {
	var total int64
	for _, s := range shards {
		total += int64(len(s))
	}
	return total
}
