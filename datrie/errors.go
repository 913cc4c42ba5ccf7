package datrie

import "errors"

// DataError is the sentinel payload value meaning "no data attached",
// returned alongside ok=false from Retrieve and TrieState.GetData.
const DataError int32 = -1

// ErrCharOutOfAlphabet is returned when a key contains an AlphaChar the
// trie's alphabet map has no range for.
var ErrCharOutOfAlphabet = errors.New("datrie: character outside configured alphabet")

// ErrOverflow is returned when growing the double array would exceed the
// representable index range.
var ErrOverflow = errors.New("datrie: index space exhausted")
