// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package binpack

import (
	"encoding/binary"
	"fmt"
)

// StringPool builds an offset table (count+1 uint32 entries, little
// endian) and a concatenated UTF-8 payload for a column of strings. Entry
// i's bytes span payload[Offsets[i]:Offsets[i+1]].
type StringPool struct {
	Offsets []byte // (len(strings)+1) * 4 bytes
	Payload []byte
}

// BuildStringPool lays out strings as an offset table plus a contiguous
// UTF-8 payload, the layout used for title/cover-base/cover-path/alias
// columns in the meta pack.
func BuildStringPool(strings []string) StringPool {
	offsets := make([]byte, 0, (len(strings)+1)*4)
	offsets = binary.LittleEndian.AppendUint32(offsets, 0)

	payload := make([]byte, 0, len(strings)*16)
	for _, s := range strings {
		payload = append(payload, s...)
		offsets = binary.LittleEndian.AppendUint32(offsets, uint32(len(payload)))
	}

	return StringPool{Offsets: offsets, Payload: payload}
}

// U16ListPool builds an offset table (count+1 uint32 entries) and a
// concatenated uint16LE payload for a column of integer lists (the
// per-document author-ID lists in the meta pack).
type U16ListPool struct {
	Offsets []byte
	Payload []byte
}

// BuildU16ListPool lays out rows of uint16-range integers the same way
// BuildStringPool lays out strings, one list per row. It returns an error
// if any value does not fit in a uint16.
func BuildU16ListPool(rows [][]int) (U16ListPool, error) {
	offsets := make([]byte, 0, (len(rows)+1)*4)
	offsets = binary.LittleEndian.AppendUint32(offsets, 0)

	payload := make([]byte, 0, len(rows)*4)
	for _, row := range rows {
		for _, v := range row {
			if v < 0 || v > 0xFFFF {
				return U16ListPool{}, fmt.Errorf("binpack: value %d out of uint16 range", v)
			}
			payload = binary.LittleEndian.AppendUint16(payload, uint16(v))
		}
		offsets = binary.LittleEndian.AppendUint32(offsets, uint32(len(payload)))
	}

	return U16ListPool{Offsets: offsets, Payload: payload}, nil
}
