// Package alphamap implements the bijection between external character
// codes (AlphaChar, arbitrary signed 32-bit integers) and the compact
// internal trie-char range used to index double-array transitions.
package alphamap

import (
	"errors"
	"sort"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("alphamap")
}

// AlphaChar is an external character code.
type AlphaChar = int32

// TrieChar is the compact internal character code: 0 is the terminator,
// 255 is reserved as an unused sentinel, so the usable alphabet is ≤ 254
// distinct non-terminator codes.
type TrieChar = byte

const (
	// TrieCharTerm is the internal string terminator.
	TrieCharTerm TrieChar = 0
	// TrieCharMax is the largest internal code that callers ever see
	// returned from CharToTrie; code 255 itself is never assigned.
	TrieCharMax TrieChar = 254
)

// ErrRangeInverted is returned by AddRange when start > end.
var ErrRangeInverted = errors.New("alphamap: range start > end")

// ErrAlphabetFull is returned when the alphabet would need more than
// TrieCharMax distinct non-terminator codes.
var ErrAlphabetFull = errors.New("alphamap: alphabet exceeds 254 usable codes")

// AlphaRange is an inclusive, closed range of external character codes.
type AlphaRange struct {
	Start AlphaChar
	End   AlphaChar
}

// AlphaMap maps AlphaChar values to/from compact TrieChar codes.
//
// Ranges are kept sorted and disjoint; CharToTrie/TrieToChar are backed by
// flat lookup tables recomputed whenever the range set changes, giving
// O(1) conversion once the tables are built. Each AddRange rescans the
// range list and rebuilds both tables.
type AlphaMap struct {
	ranges []AlphaRange

	alphaBegin AlphaChar
	alphaEnd   AlphaChar

	alphaToTrie []int32 // index by (c - alphaBegin); -1 = unmapped
	trieToAlpha []int32 // index by trie char; -1 = unmapped (ALPHA_CHAR_ERROR)
}

// New returns an empty alphabet map.
func New() *AlphaMap {
	return &AlphaMap{}
}

// Clone returns a deep copy of m.
func (m *AlphaMap) Clone() *AlphaMap {
	c := &AlphaMap{
		ranges:      append([]AlphaRange(nil), m.ranges...),
		alphaBegin:  m.alphaBegin,
		alphaEnd:    m.alphaEnd,
		alphaToTrie: append([]int32(nil), m.alphaToTrie...),
		trieToAlpha: append([]int32(nil), m.trieToAlpha...),
	}
	return c
}

// Ranges returns the current, sorted, disjoint range set.
func (m *AlphaMap) Ranges() []AlphaRange {
	return append([]AlphaRange(nil), m.ranges...)
}

// AddRange inserts [start, end] into the alphabet, merging with any
// overlapping or adjacent existing ranges, then rebuilds the lookup
// tables. It fails only if the resulting alphabet would need more than
// TrieCharMax non-terminator codes.
func (m *AlphaMap) AddRange(start, end AlphaChar) error {
	if start > end {
		return ErrRangeInverted
	}

	merged := make([]AlphaRange, 0, len(m.ranges)+1)
	inserted := AlphaRange{Start: start, End: end}
	i := 0
	for i < len(m.ranges) && m.ranges[i].End+1 < inserted.Start {
		merged = append(merged, m.ranges[i])
		i++
	}
	for i < len(m.ranges) && m.ranges[i].Start-1 <= inserted.End {
		if m.ranges[i].Start < inserted.Start {
			inserted.Start = m.ranges[i].Start
		}
		if m.ranges[i].End > inserted.End {
			inserted.End = m.ranges[i].End
		}
		i++
	}
	merged = append(merged, inserted)
	for i < len(m.ranges) {
		merged = append(merged, m.ranges[i])
		i++
	}
	sort.Slice(merged, func(a, b int) bool { return merged[a].Start < merged[b].Start })

	if err := checkCapacity(merged); err != nil {
		return err
	}

	m.ranges = merged
	m.recalcWorkArea()
	tracer().Debugf("alphamap: added range [%d,%d], now %d ranges", start, end, len(m.ranges))
	return nil
}

func checkCapacity(ranges []AlphaRange) error {
	var total int64
	for _, r := range ranges {
		total += int64(r.End) - int64(r.Start) + 1
	}
	if total > int64(TrieCharMax) {
		return ErrAlphabetFull
	}
	return nil
}

// recalcWorkArea rebuilds the alpha<->trie lookup tables from m.ranges.
// Trie char 0 is always reserved for the terminator; assignment proceeds
// 1, 2, 3, ... in ascending range order, skipping 0.
func (m *AlphaMap) recalcWorkArea() {
	m.alphaToTrie = nil
	m.trieToAlpha = nil
	if len(m.ranges) == 0 {
		return
	}

	m.alphaBegin = m.ranges[0].Start
	m.alphaEnd = m.ranges[len(m.ranges)-1].End

	nAlpha := int(m.alphaEnd-m.alphaBegin) + 1
	m.alphaToTrie = make([]int32, nAlpha)
	for i := range m.alphaToTrie {
		m.alphaToTrie[i] = -1
	}

	nTrie := 1 // terminator
	for _, r := range m.ranges {
		nTrie += int(r.End-r.Start) + 1
	}
	m.trieToAlpha = make([]int32, nTrie)
	for i := range m.trieToAlpha {
		m.trieToAlpha[i] = -1
	}
	m.trieToAlpha[TrieCharTerm] = 0

	trieChar := int32(1)
	for _, r := range m.ranges {
		for a := r.Start; a <= r.End; a++ {
			m.alphaToTrie[a-m.alphaBegin] = trieChar
			m.trieToAlpha[trieChar] = a
			trieChar++
		}
	}
}

// CharToTrie maps an external character to its internal trie code. ok is
// false if c is outside the configured alphabet.
func (m *AlphaMap) CharToTrie(c AlphaChar) (TrieChar, bool) {
	if c == 0 {
		return TrieCharTerm, true
	}
	if c < m.alphaBegin || c > m.alphaEnd {
		return 0, false
	}
	tc := m.alphaToTrie[c-m.alphaBegin]
	if tc < 0 {
		return 0, false
	}
	return TrieChar(tc), true
}

// TrieToChar is the inverse of CharToTrie. tc == 0 always maps to 0.
func (m *AlphaMap) TrieToChar(tc TrieChar) (AlphaChar, bool) {
	if int(tc) >= len(m.trieToAlpha) {
		return 0, false
	}
	a := m.trieToAlpha[tc]
	if a < 0 {
		return 0, false
	}
	return a, true
}

// CharToTrieStr converts an AlphaChar string into trie chars that always
// end with the terminator: conversion stops at the first 0 in s, and a
// terminator is appended when s has none. ok is false if any character
// before that point falls outside the alphabet.
func (m *AlphaMap) CharToTrieStr(s []AlphaChar) ([]TrieChar, bool) {
	out := make([]TrieChar, 0, len(s)+1)
	for _, c := range s {
		tc, ok := m.CharToTrie(c)
		if !ok {
			return nil, false
		}
		out = append(out, tc)
		if c == 0 {
			return out, true
		}
	}
	out = append(out, TrieCharTerm)
	return out, true
}

// TrieToCharStr is the inverse of CharToTrieStr.
func (m *AlphaMap) TrieToCharStr(s []TrieChar) ([]AlphaChar, bool) {
	out := make([]AlphaChar, 0, len(s)+1)
	for _, tc := range s {
		c, ok := m.TrieToChar(tc)
		if !ok {
			return nil, false
		}
		out = append(out, c)
		if tc == TrieCharTerm {
			return out, true
		}
	}
	out = append(out, 0)
	return out, true
}
