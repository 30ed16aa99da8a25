// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postings accumulates the token -> doc-ID posting lists discovered
during the corpus scan, then encodes them into fixed shards keyed by a
hash of the token, independent of the meta-lite document sharding.
*/
package postings

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/zmhindex/internal/binpack"
)

// Builder collects doc IDs per token key across a single streaming pass.
// It is not safe for concurrent use; the scan that feeds it is
// single-threaded by design (see Non-goals).
type Builder struct {
	docIDsByKey map[uint32][]int64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{docIDsByKey: make(map[uint32][]int64)}
}

// Add records that docID contains tokenKey. Each (tokenKey, docID) pair
// is expected to be added at most once per document (the caller
// dedupes bigrams per document before calling Add); Add itself does not
// deduplicate.
func (b *Builder) Add(tokenKey uint32, docID int64) {
	b.docIDsByKey[tokenKey] = append(b.docIDsByKey[tokenKey], docID)
}

// Entry is one finalized dictionary row: a token key, the shard it was
// routed to, its byte offset and length within that shard's encoded
// postings, and its document frequency.
type Entry struct {
	Key      uint32
	ShardID  uint8
	Offset   uint32
	Length   uint16
	DocFreq  uint16
	postings []int64
}

// ShardID routes tokenKey to one of shardCount shards using a Knuth
// multiplicative hash. This keeps the routing stable across rebuilds
// (no dependence on insertion order) while spreading tokens roughly
// evenly across shards.
func ShardID(tokenKey uint32, shardCount int) uint8 {
	if shardCount <= 1 {
		return 0
	}
	h := uint32(uint64(tokenKey) * 2654435761 % (1 << 32))
	return uint8(uint64(h) % uint64(shardCount))
}

// Build finalizes the collected postings into sorted dictionary entries
// and per-shard encoded payloads. shardCount<=0 is treated as 1 (a
// single shard holding every token's postings).
//
// When parallel is true, per-shard varint encoding runs concurrently via
// an errgroup — safe because each token's posting list is independent
// and entries are assigned to shards deterministically before encoding
// starts, so the output is bit-identical to the sequential path.
func Build(ctx context.Context, b *Builder, shardCount int, parallel bool) (entries []Entry, shards [][]byte, err error) {
	if shardCount <= 0 {
		shardCount = 1
	}

	keys := make([]uint32, 0, len(b.docIDsByKey))
	for k := range b.docIDsByKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	entries = make([]Entry, len(keys))
	byShard := make([][]int, shardCount) // indices into entries, grouped by shard

	for i, key := range keys {
		docIDs := b.docIDsByKey[key]
		sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

		if len(docIDs) > 0xFFFF {
			return nil, nil, fmt.Errorf("postings: token %d document frequency %d exceeds uint16 range", key, len(docIDs))
		}

		sid := ShardID(key, shardCount)
		entries[i] = Entry{
			Key:      key,
			ShardID:  sid,
			DocFreq:  uint16(len(docIDs)),
			postings: docIDs,
		}
		byShard[sid] = append(byShard[sid], i)
	}

	shards = make([][]byte, shardCount)
	encodeShard := func(sid int) error {
		buf := make([]byte, 0, len(byShard[sid])*8)
		for _, idx := range byShard[sid] {
			e := &entries[idx]
			data, encErr := binpack.EncodeDeltaVarints(e.postings, -1)
			if encErr != nil {
				return fmt.Errorf("postings: shard %d token %d: %w", sid, e.Key, encErr)
			}
			if len(data) > 0xFFFF {
				return fmt.Errorf("postings: shard %d token %d: encoded length %d exceeds uint16 range", sid, e.Key, len(data))
			}
			e.Offset = uint32(len(buf))
			e.Length = uint16(len(data))
			buf = append(buf, data...)
		}
		shards[sid] = buf
		return nil
	}

	if parallel && shardCount > 1 {
		g, _ := errgroup.WithContext(ctx)
		for sid := range byShard {
			sid := sid
			g.Go(func() error { return encodeShard(sid) })
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for sid := range byShard {
			if err := encodeShard(sid); err != nil {
				return nil, nil, err
			}
		}
	}

	return entries, shards, nil
}
