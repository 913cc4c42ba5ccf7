package datrie

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorVisitsAllKeysInAscendingOrder(t *testing.T) {
	tr := New(asciiAlphabet(t))
	words := []string{"dog", "cat", "car", "cart", "ant"}
	for i, w := range words {
		require.NoError(t, tr.Store(ac(w), int32(i)))
	}

	it := tr.Iterator()
	var seen []string
	data := map[string]int32{}
	for it.Next() {
		key, ok := it.Key()
		require.True(t, ok)
		word := charsToString(key)
		seen = append(seen, word)
		data[word] = it.Data()
	}

	want := []string{"ant", "car", "cart", "cat", "dog"}
	require.Equal(t, want, seen)
	for i, w := range words {
		require.Equal(t, int32(i), data[w])
	}
}

func TestIteratorOnEmptyTrieYieldsNothing(t *testing.T) {
	tr := New(asciiAlphabet(t))
	it := tr.Iterator()
	require.False(t, it.Next())
}

func TestIteratorAfterDeleteSkipsRemovedKey(t *testing.T) {
	tr := New(asciiAlphabet(t))
	require.NoError(t, tr.Store(ac("cat"), 1))
	require.NoError(t, tr.Store(ac("car"), 2))
	require.True(t, tr.Delete(ac("cat")))

	it := tr.Iterator()
	var seen []string
	for it.Next() {
		key, _ := it.Key()
		seen = append(seen, charsToString(key))
	}
	require.Equal(t, []string{"car"}, seen)
}

func charsToString(key []int32) string {
	b := make([]byte, len(key))
	for i, c := range key {
		b[i] = byte(c)
	}
	return string(b)
}
