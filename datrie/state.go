package datrie

import (
	"github.com/whs/libdatrie-go/alphamap"
	"github.com/whs/libdatrie-go/darray"
	"github.com/whs/libdatrie-go/tail"
)

// TrieState is a cursor over a Trie, used to walk it one internal char
// at a time without re-decoding a key from the root each time. Once a
// cursor crosses into a tail-linked state it stays there for the rest
// of the walk: a suffix pool block never branches back into the double
// array.
type TrieState struct {
	trie      *Trie
	index     darray.TrieIndex // DA state id, or tail block id once isSuffix
	suffixPos int
	isSuffix  bool
}

// Clone returns an independent copy of s.
func (s *TrieState) Clone() *TrieState {
	c := *s
	return &c
}

// Rewind resets s back to the trie's root.
func (s *TrieState) Rewind() {
	s.index = darray.Root
	s.suffixPos = 0
	s.isSuffix = false
}

// Walk advances s by one internal char, reporting whether a transition
// on c existed.
func (s *TrieState) Walk(c alphamap.TrieChar) bool {
	if s.isSuffix {
		return s.trie.tails.WalkChar(s.index, &s.suffixPos, c)
	}
	next, ok := s.trie.da.Walk(s.index, c)
	if !ok {
		return false
	}
	s.index = next
	if s.trie.da.IsSeparate(s.index) {
		s.index = s.trie.da.GetTailIndex(s.index)
		s.suffixPos = 0
		s.isSuffix = true
	}
	return true
}

// WalkStr advances s through as much of str as matches, returning how
// many chars were consumed; a return less than len(str) means the walk
// stopped at the first unmatched char.
func (s *TrieState) WalkStr(str []alphamap.TrieChar) int {
	n := 0
	for n < len(str) {
		if !s.Walk(str[n]) {
			break
		}
		n++
	}
	return n
}

// IsWalkable reports whether c has a transition from s, without
// advancing s.
func (s *TrieState) IsWalkable(c alphamap.TrieChar) bool {
	if s.isSuffix {
		pos := s.suffixPos
		return s.trie.tails.WalkChar(s.index, &pos, c)
	}
	return s.trie.da.IsWalkable(s.index, c)
}

// WalkableChars returns the internal chars walkable from s. Inside a
// tail suffix there is always exactly one: either the next literal
// suffix byte, or the terminator once the suffix is exhausted.
func (s *TrieState) WalkableChars() []byte {
	if s.isSuffix {
		suffix, _ := s.trie.tails.GetSuffix(s.index)
		if s.suffixPos < len(suffix) {
			return []byte{suffix[s.suffixPos]}
		}
		return []byte{alphamap.TrieCharTerm}
	}
	return s.trie.da.OutputSymbols(s.index)
}

// IsSingle reports whether s sits inside a tail suffix, where the rest
// of the path to the end of the key is necessarily unbranched.
func (s *TrieState) IsSingle() bool {
	return s.isSuffix
}

// IsTerminal reports whether s is exactly the end of some stored key.
func (s *TrieState) IsTerminal() bool {
	return s.IsWalkable(alphamap.TrieCharTerm)
}

// IsLeaf reports whether s is both inside a tail suffix and sitting
// exactly at the end of a stored key: the rest of the path is
// unbranched (IsSingle) and there is nothing left to walk but the
// terminator (IsTerminal).
func (s *TrieState) IsLeaf() bool {
	return s.IsSingle() && s.IsTerminal()
}

// GetData returns the payload for the key ending exactly at s, if s is
// in fact such a position. Outside a tail suffix this still succeeds
// when s is itself a stored key that happens to be the prefix of
// others: s has real DA children, but walking the terminator from it
// lands on a separate (tail-linked) state holding s's own payload.
func (s *TrieState) GetData() (int32, bool) {
	if !s.isSuffix {
		next, ok := s.trie.da.Walk(s.index, alphamap.TrieCharTerm)
		if !ok || !s.trie.da.IsSeparate(next) {
			return DataError, false
		}
		tIdx := s.trie.da.GetTailIndex(next)
		data, ok := s.trie.tails.GetData(tIdx)
		if !ok || data == tail.DataError {
			return DataError, false
		}
		return data, true
	}
	suffix, _ := s.trie.tails.GetSuffix(s.index)
	if s.suffixPos != len(suffix) {
		return DataError, false
	}
	data, _ := s.trie.tails.GetData(s.index)
	if data == tail.DataError {
		return DataError, false
	}
	return data, true
}
