// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert

import (
	"strconv"
	"strings"
)

// CoerceInt tolerantly converts a JSON-decoded value (as produced by
// decoding into interface{}: float64, string, bool, nil, or anything
// else) into an int, mirroring the forgiving semantics of a dynamically
// typed catalog where a boolean-ish column might arrive as 1, "1",
// true, or 1.0 depending on which exporter produced the row.
//
// It returns ok=false (never panicking) when v is nil, an unparsable
// string, or any other type int() has no sane reading of.
func CoerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CoerceIntStrict returns the int value of v only when v is a JSON
// number with no fractional part, matching a Python isinstance(x, int)
// check applied to a value freshly decoded from JSON. Strings, bools,
// and fractional floats are all rejected.
func CoerceIntStrict(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}

// CoerceTriState interprets v as a three-way boolean the way a loosely
// typed "canRead"-style column would: an explicit bool passes through,
// a recognized truthy/falsy string resolves to true/false, a number or
// other integer string resolves to n != 0, and anything else (including
// non-numeric strings) reports unknown via ok=false so the caller can
// fall back to another field.
func CoerceTriState(v any) (value bool, ok bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "y":
			return true, true
		case "0", "false", "no", "n":
			return false, true
		default:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n != 0, true
			}
			return false, false
		}
	default:
		if n, ok := CoerceInt(v); ok {
			return n != 0, true
		}
		return false, false
	}
}
