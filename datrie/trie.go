package datrie

import (
	"errors"
	"fmt"

	"github.com/whs/libdatrie-go/alphamap"
	"github.com/whs/libdatrie-go/darray"
	"github.com/whs/libdatrie-go/tail"
)

// wrapOverflow folds a darray allocation failure into ErrOverflow at the
// façade boundary, while keeping darray.ErrOverflow reachable via
// errors.Is for callers that care about the underlying layer.
func wrapOverflow(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, darray.ErrOverflow) {
		return fmt.Errorf("%w: %w", ErrOverflow, err)
	}
	return err
}

// Trie is a mutable double-array trie mapping AlphaChar strings to
// signed 32-bit payloads.
//
// A Trie is not safe for concurrent mutation; callers that need to read
// from multiple goroutines must serialize writers against readers
// themselves.
type Trie struct {
	alpha *alphamap.AlphaMap
	da    *darray.DoubleArray
	tails *tail.Tail
	dirty bool
}

// New returns an empty trie over the given alphabet. alpha is not copied;
// callers that want an independent alphabet should pass alpha.Clone().
func New(alpha *alphamap.AlphaMap) *Trie {
	return &Trie{
		alpha: alpha,
		da:    darray.New(),
		tails: tail.New(),
	}
}

// Dirty reports whether the trie has been mutated since it was loaded or
// last had ClearDirty called.
func (tr *Trie) Dirty() bool { return tr.dirty }

// ClearDirty resets the dirty flag, typically right after a successful
// Save.
func (tr *Trie) ClearDirty() { tr.dirty = false }

// Root returns a cursor positioned at the trie's root.
func (tr *Trie) Root() *TrieState {
	return &TrieState{trie: tr, index: darray.Root}
}

// Store inserts or overwrites the value for key.
func (tr *Trie) Store(key []alphamap.AlphaChar, data int32) error {
	trieKey, ok := tr.alpha.CharToTrieStr(key)
	if !ok {
		return ErrCharOutOfAlphabet
	}
	_, err := tr.storeConditionally(trieKey, data, true)
	return err
}

// StoreIfAbsent inserts data for key only if key is not already present.
// stored is false, with a nil error, if key already maps to something.
func (tr *Trie) StoreIfAbsent(key []alphamap.AlphaChar, data int32) (stored bool, err error) {
	trieKey, ok := tr.alpha.CharToTrieStr(key)
	if !ok {
		return false, ErrCharOutOfAlphabet
	}
	return tr.storeConditionally(trieKey, data, false)
}

// Retrieve looks up key, returning its payload and true if found.
func (tr *Trie) Retrieve(key []alphamap.AlphaChar) (int32, bool) {
	trieKey, ok := tr.alpha.CharToTrieStr(key)
	if !ok {
		return DataError, false
	}
	s := darray.Root
	i := 0
	for {
		if tr.da.IsSeparate(s) {
			return tr.matchTail(s, trieKey[i:])
		}
		if i == len(trieKey) {
			return DataError, false
		}
		next, ok := tr.da.Walk(s, trieKey[i])
		if !ok {
			return DataError, false
		}
		s = next
		i++
	}
}

// Delete removes key from the trie, pruning any branch states left with
// no other children. It reports whether key was present.
func (tr *Trie) Delete(key []alphamap.AlphaChar) bool {
	trieKey, ok := tr.alpha.CharToTrieStr(key)
	if !ok {
		return false
	}
	s := darray.Root
	i := 0
	for {
		if tr.da.IsSeparate(s) {
			tIdx := tr.da.GetTailIndex(s)
			suffix, _ := tr.tails.GetSuffix(tIdx)
			pos := 0
			consumed := tr.tails.WalkStr(tIdx, &pos, trieKey[i:])
			if consumed != len(trieKey)-i || pos != len(suffix) {
				return false
			}
			tr.tails.Delete(tIdx)
			tr.da.SetBase(s, darray.IndexError)
			tr.da.Prune(s)
			tr.dirty = true
			return true
		}
		if i == len(trieKey) {
			return false
		}
		next, ok := tr.da.Walk(s, trieKey[i])
		if !ok {
			return false
		}
		s = next
		i++
	}
}

func (tr *Trie) matchTail(s darray.TrieIndex, remaining []byte) (int32, bool) {
	tIdx := tr.da.GetTailIndex(s)
	suffix, ok := tr.tails.GetSuffix(tIdx)
	assert(ok, "matchTail: separate state links to a nonexistent tail block")
	pos := 0
	consumed := tr.tails.WalkStr(tIdx, &pos, remaining)
	if consumed != len(remaining) || pos != len(suffix) {
		return DataError, false
	}
	data, _ := tr.tails.GetData(tIdx)
	if data == tail.DataError {
		return DataError, false
	}
	return data, true
}

// storeConditionally walks trieKey (which always ends with the
// terminator) down the double array until it either runs out of real
// transitions (branchInBranch), reaches a tail-linked state that must be
// split or overwritten (branchInTail), or exhausts trieKey on a state
// that has never separated (a brand-new zero-length-suffix key).
func (tr *Trie) storeConditionally(trieKey []byte, data int32, overwrite bool) (bool, error) {
	s := darray.Root
	i := 0
	for {
		if tr.da.IsSeparate(s) {
			return tr.branchInTail(s, trieKey[i:], data, overwrite)
		}
		if i == len(trieKey) {
			tIdx := tr.tails.AddSuffix(nil)
			tr.da.SetTailIndex(s, tIdx)
			tr.tails.SetData(tIdx, data)
			tr.dirty = true
			return true, nil
		}
		next, ok := tr.da.Walk(s, trieKey[i])
		if !ok {
			return tr.branchInBranch(s, trieKey[i:], data)
		}
		s = next
		i++
	}
}

func (tr *Trie) overwriteTail(s darray.TrieIndex, data int32, overwrite bool) (bool, error) {
	tIdx := tr.da.GetTailIndex(s)
	if !overwrite {
		if d, ok := tr.tails.GetData(tIdx); ok && d != tail.DataError {
			return false, nil
		}
	}
	tr.tails.SetData(tIdx, data)
	tr.dirty = true
	return true, nil
}

// branchInBranch handles the common case: s has real DA children but
// none on remaining[0]. A single new branch is opened for that char, and
// whatever is left of remaining becomes a fresh tail suffix.
func (tr *Trie) branchInBranch(s darray.TrieIndex, remaining []byte, data int32) (bool, error) {
	next, err := tr.da.InsertBranch(s, remaining[0])
	if err != nil {
		return false, wrapOverflow(err)
	}
	suffix := trimTerm(remaining[1:])
	tIdx := tr.tails.AddSuffix(suffix)
	tr.da.SetTailIndex(next, tIdx)
	tr.tails.SetData(tIdx, data)
	tr.dirty = true
	return true, nil
}

// branchInTail handles storing a key that shares a prefix with an
// existing tail suffix. It walks remaining against the existing suffix
// to find the point of divergence, then promotes the shared prefix into
// real DA branches and re-attaches both the old and new suffixes below
// the split. If the new key turns out to be a perfect prefix match of an
// already-stored one, it falls through to a plain overwrite instead.
func (tr *Trie) branchInTail(s darray.TrieIndex, remaining []byte, data int32, overwrite bool) (bool, error) {
	tIdx := tr.da.GetTailIndex(s)
	oldSuffix, ok := tr.tails.GetSuffix(tIdx)
	assert(ok, "branchInTail: separate state links to a nonexistent tail block")

	pos := 0
	consumed := tr.tails.WalkStr(tIdx, &pos, remaining)
	if consumed == len(remaining) && pos == len(oldSuffix) {
		return tr.overwriteTail(s, data, overwrite)
	}

	prefix := oldSuffix[:pos]
	oldRest := oldSuffix[pos:]
	oldData, _ := tr.tails.GetData(tIdx)

	cur := s
	tr.da.SetBase(cur, darray.IndexError)
	for _, c := range prefix {
		next, err := tr.da.InsertBranch(cur, c)
		if err != nil {
			tr.restoreTailLink(s, cur, tIdx, oldSuffix, oldData)
			return false, wrapOverflow(err)
		}
		cur = next
	}

	oldNextChar, hasOldNextChar := firstByteOrTerm(oldRest)
	oldNext, err := tr.da.InsertBranch(cur, oldNextChar)
	if err != nil {
		tr.restoreTailLink(s, cur, tIdx, oldSuffix, oldData)
		return false, wrapOverflow(err)
	}
	var oldTailSuffix []byte
	if hasOldNextChar {
		oldTailSuffix = oldRest[1:]
	}
	tr.tails.SetSuffix(tIdx, oldTailSuffix)
	tr.tails.SetData(tIdx, oldData)
	tr.da.SetTailIndex(oldNext, tIdx)

	newRemaining := remaining[consumed:]
	newChar, hasNewChar := firstByteOrTerm(newRemaining)
	newNext, err := tr.da.InsertBranch(cur, newChar)
	if err != nil {
		tr.restoreTailLink(s, oldNext, tIdx, oldSuffix, oldData)
		return false, wrapOverflow(err)
	}
	var newSuffix []byte
	if hasNewChar {
		newSuffix = trimTerm(newRemaining[1:])
	}
	newTail := tr.tails.AddSuffix(newSuffix)
	tr.tails.SetData(newTail, data)
	tr.da.SetTailIndex(newNext, newTail)

	tr.dirty = true
	return true, nil
}

// restoreTailLink rolls a failed branchInTail back to its pre-split
// state: everything built under s since the split began is pruned away
// (cascading from deepest, the most recently created descendant, back
// up to but not including s, since each has exactly one child until the
// point of failure), tIdx's suffix/data are restored verbatim, and s
// goes back to being a plain tail link.
func (tr *Trie) restoreTailLink(s, deepest, tIdx darray.TrieIndex, suffix []byte, data int32) {
	if deepest != s {
		tr.da.PruneUpto(s, deepest)
	}
	tr.tails.SetSuffix(tIdx, suffix)
	tr.tails.SetData(tIdx, data)
	tr.da.SetTailIndex(s, tIdx)
}

func firstByteOrTerm(s []byte) (byte, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

func trimTerm(s []byte) []byte {
	if len(s) > 0 && s[len(s)-1] == 0 {
		return s[:len(s)-1]
	}
	return s
}
