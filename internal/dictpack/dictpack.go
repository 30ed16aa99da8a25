// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dictpack packs the n-gram dictionary: one row per distinct
token key, giving the client enough to locate that token's postings
within the right shard file without reading any other shard.

# Binary layout (v3, magic "ZMHd")

	header  4s (magic) H (version=3) H (n=2) I (entryCount) I (reserved=0)
	keys       entryCount * uint32, ascending, unique
	shardIds   entryCount * uint8, padded to 4 bytes
	offsets    entryCount * uint32
	lengths    entryCount * uint16
	docFreqs   entryCount * uint16
*/
package dictpack

import (
	"encoding/binary"
	"fmt"

	"github.com/taibuivan/zmhindex/internal/binpack"
	"github.com/taibuivan/zmhindex/internal/ngram"
	"github.com/taibuivan/zmhindex/internal/postings"
)

// Magic identifies a dictionary file.
const Magic = "ZMHd"

// Version is the current dictionary binary layout version.
const Version = 3

// Pack encodes entries, which must already be sorted by ascending Key
// with no duplicates (postings.Build guarantees both).
func Pack(entries []postings.Entry) ([]byte, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].Key <= entries[i-1].Key {
			return nil, fmt.Errorf("dictpack: entries must be sorted by strictly ascending key, got %d after %d", entries[i].Key, entries[i-1].Key)
		}
	}

	out := make([]byte, 0, 4+2+2+4+4+len(entries)*13)
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = binary.LittleEndian.AppendUint16(out, uint16(ngram.Size))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(entries)))
	out = binary.LittleEndian.AppendUint32(out, 0)

	for _, e := range entries {
		out = binary.LittleEndian.AppendUint32(out, e.Key)
	}

	for _, e := range entries {
		if e.ShardID > 0xFF {
			return nil, fmt.Errorf("dictpack: shard id %d exceeds uint8 range", e.ShardID)
		}
		out = append(out, e.ShardID)
	}
	out = binpack.Pad4(out)

	for _, e := range entries {
		out = binary.LittleEndian.AppendUint32(out, e.Offset)
	}
	for _, e := range entries {
		out = binary.LittleEndian.AppendUint16(out, e.Length)
	}
	for _, e := range entries {
		out = binary.LittleEndian.AppendUint16(out, e.DocFreq)
	}

	return out, nil
}
