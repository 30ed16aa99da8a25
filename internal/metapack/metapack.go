// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metapack packs one meta-lite shard: the per-document columns
(comic ID, title, cover, authors, aliases, tag mask, flags) that the
client loads to render search results, laid out as fixed-width parallel
arrays plus string/list pools for random access over mmap.

# Binary layout (v4, magic "ZMHm")

	header     4s (magic) H (version=4) H (listSep rune) I (docCount) I (coverBaseCount)
	ids        varint-delta, predecessor 0, padded to 4 bytes
	tagMaskLo  docCount * uint32
	tagMaskHi  docCount * uint16
	flags      docCount * uint8, padded to 4 bytes
	titles     string pool (offsets, payload), padded to 4 bytes
	coverBases string pool (offsets, payload), padded to 4 bytes
	coverIdx   docCount * (uint8 if coverBaseCount<=255 else uint16), padded to 4 bytes
	coverPaths string pool (offsets, payload), padded to 4 bytes
	authors    uint16-list pool (offsets, payload), padded to 4 bytes
	aliases    string pool (offsets, payload), padded to 4 bytes
*/
package metapack

import (
	"encoding/binary"
	"fmt"

	"github.com/taibuivan/zmhindex/internal/binpack"
	"github.com/taibuivan/zmhindex/internal/coverurl"
)

// Magic identifies a meta-lite shard file.
const Magic = "ZMHm"

// Version is the current meta-lite binary layout version.
const Version = 4

// ListSep joins multi-value alias text within one document (Unit
// Separator, U+001F), matching the client's splitter.
const ListSep = '\u001f'

// Doc is the per-document input to Pack. Fields mirror the catalog row
// after normalization; AuthorIDs must already fit uint16.
type Doc struct {
	ID        int64
	Title     string
	Cover     string // pre-normalized per coverurl.NormalizeStored
	AuthorIDs []int
	Aliases   []string
	TagMaskLo uint32
	TagMaskHi uint16
	Flags     uint8
}

// Pack encodes one meta-lite shard from docs, which must already be
// sorted by strictly increasing ID (the shard boundary is the caller's
// concern; Pack just encodes whatever slice it is given).
func Pack(docs []Doc) ([]byte, error) {
	ids := make([]int64, len(docs))
	titles := make([]string, len(docs))
	authorLists := make([][]int, len(docs))
	aliasTexts := make([]string, len(docs))
	tagLo := make([]uint32, len(docs))
	tagHi := make([]uint16, len(docs))
	flags := make([]uint8, len(docs))

	interner := coverurl.NewInterner()
	coverBaseIDs := make([]int, len(docs))
	coverPaths := make([]string, len(docs))

	for i, d := range docs {
		ids[i] = d.ID
		titles[i] = d.Title
		authorLists[i] = d.AuthorIDs
		aliasTexts[i] = joinAliases(d.Aliases)
		tagLo[i] = d.TagMaskLo
		tagHi[i] = d.TagMaskHi
		flags[i] = d.Flags

		base, path := coverurl.Split(d.Cover)
		coverBaseIDs[i] = interner.Intern(base)
		coverPaths[i] = path
	}

	bases := interner.Bases()
	idxBytes := 1
	if len(bases) > 0xFF {
		idxBytes = 2
	}

	out := make([]byte, 0, 4096)

	// header
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = binary.LittleEndian.AppendUint16(out, ListSep)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(docs)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bases)))

	idBytes, err := binpack.EncodeDeltaVarints(ids, 0)
	if err != nil {
		return nil, fmt.Errorf("metapack: ids: %w", err)
	}
	out = append(out, idBytes...)
	out = binpack.Pad4(out)

	for _, v := range tagLo {
		out = binary.LittleEndian.AppendUint32(out, v)
	}
	for _, v := range tagHi {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	out = append(out, flags...)
	out = binpack.Pad4(out)

	titlePool := binpack.BuildStringPool(titles)
	out = append(out, titlePool.Offsets...)
	out = append(out, titlePool.Payload...)
	out = binpack.Pad4(out)

	basePool := binpack.BuildStringPool(bases)
	out = append(out, basePool.Offsets...)
	out = append(out, basePool.Payload...)
	out = binpack.Pad4(out)

	if idxBytes == 1 {
		for _, idx := range coverBaseIDs {
			if idx > 0xFF {
				return nil, fmt.Errorf("metapack: cover base index %d exceeds uint8 range", idx)
			}
			out = append(out, byte(idx))
		}
	} else {
		for _, idx := range coverBaseIDs {
			out = binary.LittleEndian.AppendUint16(out, uint16(idx))
		}
	}
	out = binpack.Pad4(out)

	pathPool := binpack.BuildStringPool(coverPaths)
	out = append(out, pathPool.Offsets...)
	out = append(out, pathPool.Payload...)
	out = binpack.Pad4(out)

	authorPool, err := binpack.BuildU16ListPool(authorLists)
	if err != nil {
		return nil, fmt.Errorf("metapack: authors: %w", err)
	}
	out = append(out, authorPool.Offsets...)
	out = append(out, authorPool.Payload...)
	out = binpack.Pad4(out)

	aliasPool := binpack.BuildStringPool(aliasTexts)
	out = append(out, aliasPool.Offsets...)
	out = append(out, aliasPool.Payload...)
	out = binpack.Pad4(out)

	return out, nil
}

func joinAliases(aliases []string) string {
	if len(aliases) == 0 {
		return ""
	}
	out := aliases[0]
	for _, a := range aliases[1:] {
		out += string(ListSep) + a
	}
	return out
}

// Shard splits docs into fixed-size shards of at most shardDocs entries
// each. shardDocs<=0 means "do not shard" (a single shard holding every
// document, or none at all for an empty corpus).
func Shard(docs []Doc, shardDocs int) [][]Doc {
	if shardDocs <= 0 {
		shardDocs = len(docs)
		if shardDocs == 0 {
			shardDocs = 1
		}
	}

	var shards [][]Doc
	for start := 0; start < len(docs); start += shardDocs {
		end := min(start+shardDocs, len(docs))
		shards = append(shards, docs[start:end])
	}
	return shards
}
