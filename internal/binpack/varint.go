// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package binpack holds the low-level binary primitives shared by every
packed artifact: LEB128-style varints, delta-coded integer runs, and the
offset+payload pool layout used for string and list columns.

Nothing in this package knows about comics, tags, or postings — it is
pure byte-plumbing, reused identically by metapack, postings, dictpack
and authorsdict.
*/
package binpack

import "fmt"

// PutUvarint appends value to dst as an unsigned LEB128 varint (7 data
// bits per byte, continuation bit set on every byte but the last) and
// returns the extended slice.
func PutUvarint(dst []byte, value uint64) []byte {
	for value >= 0x80 {
		dst = append(dst, byte(value)|0x80)
		value >>= 7
	}
	return append(dst, byte(value))
}

// EncodeDeltaVarints encodes a strictly increasing sequence of values as
// consecutive varint-coded deltas, each taken against predecessor. The
// caller supplies predecessor as the implicit value before the first
// element (-1 for postings doc IDs, 0 for meta comic IDs per the v4/v3
// layouts). It returns an error if the sequence is not strictly
// increasing, since a non-positive delta cannot be represented.
func EncodeDeltaVarints(values []int64, predecessor int64) ([]byte, error) {
	out := make([]byte, 0, len(values)*2)
	prev := predecessor
	for _, v := range values {
		delta := v - prev
		if delta <= 0 {
			return nil, fmt.Errorf("binpack: sequence must be strictly increasing, got %d after %d", v, prev)
		}
		out = PutUvarint(out, uint64(delta))
		prev = v
	}
	return out, nil
}

// Pad4 returns data padded with trailing zero bytes so its length is a
// multiple of 4, matching every section boundary in the packed binary
// formats (the client mmaps these files and expects 4-byte alignment for
// the uint32/uint16 columns that follow).
func Pad4(data []byte) []byte {
	for len(data)%4 != 0 {
		data = append(data, 0)
	}
	return data
}
