// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authorsdict packs the corpus-wide author ID -> name dictionary,
letting the client resolve the per-document author-ID lists in a meta
shard to display names without carrying the full name text in every
shard.

# Binary layout (v1, magic "ZMHa")

	header  4s (magic) H (version=1) H (reserved=0) I (authorCount) I (reserved=0)
	ids     authorCount * uint16, ascending, padded to 4 bytes
	names   string pool (offsets, payload)
*/
package authorsdict

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/taibuivan/zmhindex/internal/binpack"
)

// Magic identifies an authors dictionary file.
const Magic = "ZMHa"

// Version is the current authors dictionary binary layout version.
const Version = 1

// Pack encodes the corpus-wide authorID -> name map, sorted by
// ascending author ID. It returns an error if any ID does not fit a
// uint16.
func Pack(nameByID map[int]string) ([]byte, error) {
	ids := make([]int, 0, len(nameByID))
	for id := range nameByID {
		if id < 0 || id > 0xFFFF {
			return nil, fmt.Errorf("authorsdict: author id %d out of uint16 range", id)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = nameByID[id]
	}

	out := make([]byte, 0, 16+len(ids)*2)
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint16(out, Version)
	out = binary.LittleEndian.AppendUint16(out, 0)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(ids)))
	out = binary.LittleEndian.AppendUint32(out, 0)

	for _, id := range ids {
		out = binary.LittleEndian.AppendUint16(out, uint16(id))
	}
	out = binpack.Pad4(out)

	pool := binpack.BuildStringPool(names)
	out = append(out, pool.Offsets...)
	out = append(out, pool.Payload...)

	return out, nil
}
