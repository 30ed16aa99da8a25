// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tagspace computes the corpus-wide tag bitmask assignment.

Unlike a conventional tag service backed by a table, there is no
standing tag registry here: the set of tags, their names, and their bit
positions are all derived from a single streaming pass over the catalog
at build time, then frozen for the lifetime of one index generation.
*/
package tagspace

import (
	"fmt"
	"sort"
)

// MaxTags is the largest number of distinct tags a single build can
// encode. The per-document mask is 50 bits wide (32 in tagMaskLo, 16 in
// tagMaskHi, 2 in the flags byte's tagMaskEx field), so a corpus with
// more distinct tags than this cannot be represented.
const MaxTags = 50

// Tag describes one distinct tag discovered while scanning the catalog.
type Tag struct {
	ID    int
	Name  string
	Count int
	Bit   int
}

// Collector accumulates tag occurrences across a single streaming pass
// over the catalog. It is not safe for concurrent use.
type Collector struct {
	names  map[int]string
	counts map[int]int
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		names:  make(map[int]string),
		counts: make(map[int]int),
	}
}

// Observe records one occurrence of tagID on a document. The first
// non-empty name seen for a given tagID wins; later occurrences only
// bump the count.
func (c *Collector) Observe(tagID int, name string) {
	if _, seen := c.names[tagID]; !seen && name != "" {
		c.names[tagID] = name
	}
	c.counts[tagID]++
}

// Space is the frozen result of a Collector pass: every distinct tag
// with its assigned bit position, ready for per-document mask lookups.
type Space struct {
	tags    []Tag
	bitByID map[int]int
}

// Freeze finalizes the collected tags into a Space, assigning bit
// positions by ascending tagID. It returns an error if more than
// MaxTags distinct tags were observed.
func (c *Collector) Freeze() (*Space, error) {
	ids := make([]int, 0, len(c.counts))
	for id := range c.counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	if len(ids) > MaxTags {
		return nil, fmt.Errorf("tagspace: %d distinct tags exceeds the %d-tag bitmask limit", len(ids), MaxTags)
	}

	tags := make([]Tag, len(ids))
	bitByID := make(map[int]int, len(ids))
	for bit, id := range ids {
		name := c.names[id]
		if name == "" {
			name = fmt.Sprintf("%d", id)
		}
		tags[bit] = Tag{ID: id, Name: name, Count: c.counts[id], Bit: bit}
		bitByID[id] = bit
	}

	return &Space{tags: tags, bitByID: bitByID}, nil
}

// Tags returns every tag in bit order (ascending tagID).
func (s *Space) Tags() []Tag { return s.tags }

// Mask packs a document's tag IDs into the three-field bitmask layout:
// bits 0-31 in lo, bits 32-47 in hi, bits 48-49 in ex. Tag IDs with no
// assigned bit (unexpected at build time, since the space was collected
// from the same corpus) are silently skipped.
func (s *Space) Mask(tagIDs []int) (lo uint32, hi uint16, ex uint8) {
	for _, id := range tagIDs {
		bit, ok := s.bitByID[id]
		if !ok {
			continue
		}
		switch {
		case bit < 32:
			lo |= 1 << uint(bit)
		case bit < 48:
			hi |= 1 << uint(bit-32)
		default:
			ex |= 1 << uint(bit-48)
		}
	}
	return lo, hi, ex
}

// SortedByPopularity returns tags ordered the way tags.json serializes
// them: most frequent first, ties broken by name then tagID.
func SortedByPopularity(tags []Tag) []Tag {
	out := make([]Tag, len(tags))
	copy(out, tags)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
