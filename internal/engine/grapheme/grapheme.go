// Package grapheme provides grapheme cluster helpers for Unicode-aware
// cursor arithmetic.
//
// Three units of text measurement are used across the engine:
//
//  1. Bytes: the storage unit of Go strings.
//  2. Graphemes: user-perceived characters. Every Position.Col in the engine
//     is a grapheme index.
//  3. Display columns: terminal cells occupied by a grapheme. ASCII is one
//     cell, CJK and most emoji are two, a tab expands to the next tab stop.
//
// Use the conversion functions here whenever one unit must become another.
package grapheme

import (
	"iter"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class is the word-motion class of a grapheme cluster.
type Class uint8

const (
	// Whitespace is space, tab, or a line break.
	Whitespace Class = iota
	// Word is a letter, digit, or underscore.
	Word
	// Punct is everything else, including emoji.
	Punct
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Word:
		return "word"
	case Punct:
		return "punct"
	default:
		return "unknown"
	}
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// At returns the cluster at grapheme index i, or "" when out of range.
func At(s string, i int) string {
	if i < 0 {
		return ""
	}
	idx := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if idx == i {
			return cluster
		}
		idx++
		s = rest
		state = newState
	}
	return ""
}

// ByteOffset converts a grapheme index to a byte offset.
// Indexes at or past the end map to len(s); negative indexes map to 0.
func ByteOffset(s string, i int) int {
	if i <= 0 {
		return 0
	}
	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == i {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// Index converts a byte offset to the grapheme index containing it.
func Index(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return Count(s)
	}
	idx := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := pos + len(cluster)
		if byteOffset < next {
			return idx
		}
		idx++
		pos = next
		s = rest
		state = newState
	}
	return idx
}

// Slice returns the graphemes of s in [start, end).
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	from := ByteOffset(s, start)
	to := ByteOffset(s, end)
	if from >= len(s) {
		return ""
	}
	return s[from:to]
}

// Split returns the clusters of s in order.
func Split(s string) []string {
	out := make([]string, 0, len(s))
	for _, c := range All(s) {
		out = append(out, c)
	}
	return out
}

// All iterates over (index, cluster) pairs of s.
func All(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		idx := 0
		state := -1
		for len(s) > 0 {
			cluster, rest, _, newState := uniseg.StepString(s, state)
			if !yield(idx, cluster) {
				return
			}
			idx++
			s = rest
			state = newState
		}
	}
}

// Width returns the display width of a single cluster that starts at display
// column col. Tabs expand to the next multiple of tabStop.
func Width(cluster string, col, tabStop int) int {
	if cluster == "" {
		return 0
	}
	if cluster == "\t" {
		if tabStop <= 0 {
			tabStop = 8
		}
		return tabStop - col%tabStop
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		// Control characters still occupy a cell once rendered.
		return 1
	}
	return w
}

// Column returns the display column at which grapheme i of s starts.
func Column(s string, i, tabStop int) int {
	col := 0
	for idx, c := range All(s) {
		if idx >= i {
			break
		}
		col += Width(c, col, tabStop)
	}
	return col
}

// AtColumn returns the index of the grapheme covering display column col.
// Columns past the end of s map to Count(s).
func AtColumn(s string, col, tabStop int) int {
	cur := 0
	n := 0
	for idx, c := range All(s) {
		w := Width(c, cur, tabStop)
		if col < cur+w {
			return idx
		}
		cur += w
		n = idx + 1
	}
	return n
}

// ClassOf classifies a cluster by its base rune.
func ClassOf(cluster string) Class {
	for _, r := range cluster {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			return Whitespace
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			return Word
		case unicode.IsSpace(r):
			return Whitespace
		default:
			return Punct
		}
	}
	return Whitespace
}

// BigClassOf classifies for WORD motions: any non-blank cluster is Word.
func BigClassOf(cluster string) Class {
	if ClassOf(cluster) == Whitespace {
		return Whitespace
	}
	return Word
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FirstNonBlank returns the index of the first non-whitespace cluster of s,
// or 0 when the line is blank.
func FirstNonBlank(s string) int {
	for idx, c := range All(s) {
		if ClassOf(c) != Whitespace {
			return idx
		}
	}
	return 0
}

// LastNonBlank returns the index of the last non-whitespace cluster of s,
// or 0 when the line is blank.
func LastNonBlank(s string) int {
	last := 0
	for idx, c := range All(s) {
		if ClassOf(c) != Whitespace {
			last = idx
		}
	}
	return last
}

// Leading returns the leading whitespace of s.
func Leading(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
