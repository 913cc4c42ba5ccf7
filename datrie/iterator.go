package datrie

import (
	"github.com/whs/libdatrie-go/alphamap"
	"github.com/whs/libdatrie-go/darray"
)

// Iterator lazily walks every key stored in a Trie in ascending internal
// alphabet order, one separate (tail-linked) state at a time via the
// double array's FirstSeparate/NextSeparate primitives. It is invalidated
// by any mutation of the underlying Trie made during iteration.
type Iterator struct {
	trie    *Trie
	sep     darray.TrieIndex
	keybuf  []byte
	started bool
}

// Iterator returns a fresh iterator positioned before the first key.
func (tr *Trie) Iterator() *Iterator {
	return &Iterator{trie: tr}
}

// Next advances the iterator to the next key, returning false once
// exhausted.
func (it *Iterator) Next() bool {
	if !it.started {
		it.started = true
		it.sep = it.trie.da.FirstSeparate(darray.Root, &it.keybuf)
	} else {
		it.sep = it.trie.da.NextSeparate(darray.Root, it.sep, &it.keybuf)
	}
	return it.sep != darray.IndexError
}

// Key decodes the current key back into external AlphaChar codes, not
// including a trailing terminator.
func (it *Iterator) Key() ([]alphamap.AlphaChar, bool) {
	trieKey := it.fullTrieKey()
	decoded, ok := it.trie.alpha.TrieToCharStr(trieKey)
	if !ok {
		return nil, false
	}
	if n := len(decoded); n > 0 && decoded[n-1] == 0 {
		decoded = decoded[:n-1]
	}
	return decoded, true
}

// Data returns the payload attached to the current key.
func (it *Iterator) Data() int32 {
	tIdx := it.trie.da.GetTailIndex(it.sep)
	data, ok := it.trie.tails.GetData(tIdx)
	if !ok {
		return DataError
	}
	return data
}

func (it *Iterator) fullTrieKey() []byte {
	tIdx := it.trie.da.GetTailIndex(it.sep)
	suffix, _ := it.trie.tails.GetSuffix(tIdx)
	out := make([]byte, 0, len(it.keybuf)+len(suffix)+1)
	out = append(out, it.keybuf...)
	out = append(out, suffix...)
	out = append(out, alphamap.TrieCharTerm)
	return out
}
