// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog reads the source-of-truth comic rows a build scans. Each
row is stored as one JSON document per comic; this file turns that raw,
loosely-typed JSON into the typed [Row] the rest of the builder works
with, tolerating the same shape variance the original exporter produces
(IDs and tag IDs that might not be integers, boolean-ish flag columns
that might arrive as 0/1, "true"/"false", or an actual bool).
*/
package catalog

import (
	"encoding/json"

	"github.com/taibuivan/zmhindex/pkg/convert"
)

// TagRef is a (tagId, tagName) pair as it appears in both the "authors"
// and "types" arrays of a catalog row.
type TagRef struct {
	TagID int
	Name  string
}

// Row is one parsed comic document from the catalog.
type Row struct {
	ID          int64
	Title       string
	Cover       string
	Aliases     []string
	Authors     []TagRef
	Tags        []TagRef
	Hidden      bool
	HideChapter bool
	NeedLogin   bool
	IsLock      bool
}

type rawRow struct {
	ID            any        `json:"id"`
	Title         any        `json:"title"`
	Cover         any        `json:"cover"`
	Aliases       []any      `json:"aliases"`
	Authors       []rawRef   `json:"authors"`
	Types         []rawRef   `json:"types"`
	Hidden        any        `json:"hidden"`
	IsHideChapter any        `json:"isHideChapter"`
	CanRead       any        `json:"canRead"`
	IsNeedLogin   any        `json:"is_need_login"`
	IsLock        any        `json:"is_lock"`
}

type rawRef struct {
	TagID any `json:"tag_id"`
	Name  any `json:"tag_name"`
}

// ParseRow decodes one raw JSON document into a Row. It returns
// ok=false (with no error) when the document has no usable integer
// "id" — the original data source occasionally carries malformed rows
// that the build silently skips rather than aborting the whole run for.
func ParseRow(raw []byte) (Row, bool, error) {
	var r rawRow
	if err := json.Unmarshal(raw, &r); err != nil {
		return Row{}, false, err
	}

	id, ok := convert.CoerceIntStrict(r.ID)
	if !ok {
		return Row{}, false, nil
	}

	row := Row{
		ID:      int64(id),
		Title:   stringOrEmpty(r.Title),
		Cover:   stringOrEmpty(r.Cover),
		Aliases: stringsOf(r.Aliases),
	}

	for _, a := range r.Authors {
		tagID, ok := convert.CoerceIntStrict(a.TagID)
		name := stringOrEmpty(a.Name)
		if !ok || name == "" {
			continue
		}
		row.Authors = append(row.Authors, TagRef{TagID: tagID, Name: name})
	}

	for _, t := range r.Types {
		tagID, ok := convert.CoerceIntStrict(t.TagID)
		if !ok {
			continue
		}
		row.Tags = append(row.Tags, TagRef{TagID: tagID, Name: stringOrEmpty(t.Name)})
	}

	hiddenValue, _ := convert.CoerceInt(r.Hidden)
	row.Hidden = hiddenValue != 0

	if f, ok := r.IsHideChapter.(float64); ok && f == 1 {
		row.HideChapter = true
	}

	row.NeedLogin = resolveNeedLogin(r.CanRead, r.IsNeedLogin)

	isLockValue, _ := convert.CoerceInt(r.IsLock)
	row.IsLock = isLockValue != 0

	return row, true, nil
}

// resolveNeedLogin mirrors the original precedence: an explicit,
// interpretable "canRead" wins and is simply inverted; only when
// canRead is absent or uninterpretable does is_need_login get consulted.
func resolveNeedLogin(canRead, isNeedLogin any) bool {
	if canReadValue, ok := convert.CoerceTriState(canRead); ok {
		return !canReadValue
	}
	needLoginValue, _ := convert.CoerceInt(isNeedLogin)
	return needLoginValue != 0
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

func stringsOf(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
