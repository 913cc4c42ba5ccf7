package datrie

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/whs/libdatrie-go/alphamap"
)

// tc maps an external char to tr's internal trie char, the unit that
// TrieState walks in.
func tc(tr *Trie, c alphamap.AlphaChar) alphamap.TrieChar {
	code, _ := tr.alpha.CharToTrie(c)
	return code
}

// tcs maps an external string to tr's internal trie chars, without the
// trailing terminator.
func tcs(tr *Trie, s string) []alphamap.TrieChar {
	codes, _ := tr.alpha.CharToTrieStr(ac(s))
	return codes[:len(codes)-1]
}

func TestTrieStateWalkAndWalkStr(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.Walk(tc(tr, 'a')))
	require.True(t, s.Walk(tc(tr, 't')))
	require.True(t, s.Walk(0), "terminator should match at end of key")

	s2 := tr.Root()
	n := s2.WalkStr(tcs(tr, "cat"))
	require.Equal(t, 3, n)
}

func TestTrieStateWalkStrStopsOnMismatch(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	n := s.WalkStr(tcs(tr, "cog"))
	require.Equal(t, 1, n, "only the shared 'c' should match")
}

func TestTrieStateIsWalkableDoesNotAdvance(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.IsWalkable(tc(tr, 'c')))
	require.True(t, s.IsWalkable(tc(tr, 'c')), "IsWalkable must not consume input")
	require.False(t, s.IsWalkable(tc(tr, 'z')))
	require.True(t, s.Walk(tc(tr, 'c')), "state must still be at root after IsWalkable probes")
}

func TestTrieStateIsWalkableInsideSuffix(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.IsSingle(), "single remaining child should already be in the tail")
	require.True(t, s.IsWalkable(tc(tr, 'a')))
	require.False(t, s.IsWalkable(tc(tr, 'x')))
	require.True(t, s.Walk(tc(tr, 'a')), "probing with IsWalkable must not have advanced the cursor")
}

func TestTrieStateWalkableChars(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))
	require.NoError(t, tr.Store(ac("car"), 2))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.Walk(tc(tr, 'a')))
	require.ElementsMatch(t, []byte{tc(tr, 't'), tc(tr, 'r')}, s.WalkableChars())

	require.True(t, s.Walk(tc(tr, 't')))
	require.True(t, s.IsSingle())
	require.Equal(t, []byte{alphamap.TrieCharTerm}, s.WalkableChars(), "exhausted suffix should only offer the terminator")
}

func TestTrieStateIsSingle(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))
	require.NoError(t, tr.Store(ac("car"), 2))

	s := tr.Root()
	require.False(t, s.IsSingle())
	require.True(t, s.Walk(tc(tr, 'c')))
	require.False(t, s.IsSingle(), "'c' still branches into 'a'")
	require.True(t, s.Walk(tc(tr, 'a')))
	require.False(t, s.IsSingle(), "'ca' still branches into 't' and 'r'")
	require.True(t, s.Walk(tc(tr, 't')))
	require.True(t, s.IsSingle(), "'cat' has no siblings left, so it lives in the tail")
}

func TestTrieStateIsTerminal(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.False(t, s.IsTerminal(), "'c' is not itself a stored key")
	require.True(t, s.Walk(tc(tr, 'a')))
	require.True(t, s.Walk(tc(tr, 't')))
	require.True(t, s.IsTerminal(), "'cat' is exactly a stored key")
}

func TestTrieStateIsTerminalOnKeyThatIsAlsoAPrefix(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("car"), 1))
	require.NoError(t, tr.Store(ac("cart"), 2))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.Walk(tc(tr, 'a')))
	require.True(t, s.Walk(tc(tr, 'r')))
	require.False(t, s.IsSingle(), "'car' still branches into 't' in the double array")
	require.True(t, s.IsTerminal(), "'car' is itself a stored key, even though it still branches")
}

func TestTrieStateIsLeaf(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))
	require.NoError(t, tr.Store(ac("car"), 2))

	root := tr.Root()
	require.False(t, root.IsLeaf(), "a fresh root is not single, so it cannot be a leaf")

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.Walk(tc(tr, 'a')))
	require.False(t, s.IsLeaf(), "'ca' still branches and is not terminal")

	s2 := tr.Root()
	require.True(t, s2.Walk(tc(tr, 'c')))
	require.True(t, s2.Walk(tc(tr, 'a')))
	require.True(t, s2.Walk(tc(tr, 't')))
	require.True(t, s2.IsLeaf(), "'cat' is single and terminal")
}

func TestTrieStateGetDataInsideSuffix(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 42))

	s := tr.Root()
	require.True(t, s.WalkStr(tcs(tr, "cat")) == 3)
	data, ok := s.GetData()
	require.True(t, ok)
	require.Equal(t, int32(42), data)
}

func TestTrieStateGetDataOnKeyThatIsAlsoAPrefix(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("car"), 7))
	require.NoError(t, tr.Store(ac("cart"), 8))

	s := tr.Root()
	require.True(t, s.WalkStr(tcs(tr, "car")) == 3)
	require.False(t, s.IsSingle(), "'car' must still be a real branching DA state")
	data, ok := s.GetData()
	require.True(t, ok, "a key that is also a prefix of a longer key must still report its own data")
	require.Equal(t, int32(7), data)
}

func TestTrieStateGetDataMissesOnNonKeyState(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	_, ok := s.GetData()
	require.False(t, ok, "'c' is not itself a stored key")
}

func TestTrieStateRewind(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))

	s := tr.Root()
	require.True(t, s.WalkStr(tcs(tr, "cat")) == 3)
	s.Rewind()
	require.False(t, s.IsSingle())
	require.True(t, s.WalkStr(tcs(tr, "car")) == 2, "after rewinding, a different path should match from the root again")
}

func TestTrieStateClone(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))
	require.NoError(t, tr.Store(ac("car"), 2))

	s := tr.Root()
	require.True(t, s.Walk(tc(tr, 'c')))
	require.True(t, s.Walk(tc(tr, 'a')))

	clone := s.Clone()
	require.True(t, clone.Walk(tc(tr, 't')))
	require.True(t, s.Walk(tc(tr, 'r')), "mutating the clone must not have advanced the original cursor")
}
