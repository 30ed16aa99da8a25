// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ngram implements the text-normalization and bigram-tokenization
pipeline that every searchable field (title, alias, author name) is fed
through before it is recorded in the posting lists.

Architecture:

  - Normalize: NFKC-folds and lowercases text, then strips everything that
    is not a letter or digit, exactly matching the client's decode-time
    normalization so a browser-side query and a build-time posting agree
    on what a "token" is.
  - Bigrams: slides a fixed window of size 2 over the normalized text.
  - TokenKey: packs a bigram's two UTF-16 code units into a single uint32
    so the dictionary can use fixed-width integer keys instead of strings.

This package never touches storage or encoding concerns; it is a pure text
transform shared by the posting builder and by anything that needs to
reproduce the tokenizer (the build driver and tests).
*/
package ngram

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Size is the fixed n-gram window used across the index (bigrams).
const Size = 2

// Normalize NFKC-folds text, lowercases it, and drops every rune that is
// not a letter or digit. The result is the canonical form indexed and
// queried against — it intentionally discards punctuation and whitespace
// so "Attack on Titan" and "ATTACK-ON-TITAN!" tokenize identically.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := strings.ToLower(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Bigrams returns every overlapping window of Size runes in normalized
// text, e.g. "titan" -> ["ti", "it", "ta", "an"]. Text shorter than Size
// yields no grams.
func Bigrams(normalized string) []string {
	runes := []rune(normalized)
	if len(runes) < Size {
		return nil
	}

	grams := make([]string, 0, len(runes)-Size+1)
	for i := 0; i <= len(runes)-Size; i++ {
		grams = append(grams, string(runes[i:i+Size]))
	}
	return grams
}

// TokenKey encodes a bigram into a uint32 dictionary key by packing the
// UTF-16LE code units of its two runes into the high and low halves. Only
// bigrams made of two Basic Multilingual Plane code points (each exactly
// one UTF-16 unit) can be encoded this way; anything involving a
// surrogate pair (e.g. most emoji) reports ok=false and is dropped from
// the index rather than mis-encoded.
func TokenKey(bigram string) (key uint32, ok bool) {
	units := utf16.Encode([]rune(bigram))
	if len(units) != Size {
		return 0, false
	}
	return uint32(units[0])<<16 | uint32(units[1]), true
}
