// Package tail implements the suffix pool that stores the unshared
// remainder of a key past the point where the double array stops
// branching, along with the payload attached to that key.
package tail

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("tail")
}

// TrieIndex is a tail block index. 0 is never a real block; it doubles
// as both IndexError and the free-list terminator.
type TrieIndex = int32

const (
	// FirstBlock is the first index a real suffix can occupy.
	FirstBlock TrieIndex = 1

	// IndexError signals a missing or invalid block.
	IndexError TrieIndex = 0
	// DataError is the sentinel payload value meaning "no data attached".
	DataError int32 = -1
)

type block struct {
	// next chains free blocks together (0 terminates the chain); its
	// value is stale and unused while the block is occupied.
	next TrieIndex
	// data holds the payload attached to the key ending at this block.
	// DataError means no payload (an intermediate or deleted block).
	data int32
	// suffix is the remaining internal-char suffix, without a trailing
	// terminator; reaching the end of it is itself the implicit
	// terminator (TrieChar 0 is never stored here).
	suffix []byte
}

// Tail is the suffix pool. blocks[0] is a reserved placeholder: real
// blocks start at FirstBlock.
type Tail struct {
	firstFree TrieIndex
	blocks    []block
}

// New returns an empty tail pool.
func New() *Tail {
	return &Tail{blocks: []block{{}}}
}

// NumBlocks returns the number of real blocks (excluding the reserved
// index 0 placeholder).
func (t *Tail) NumBlocks() int32 { return int32(len(t.blocks) - 1) }

func (t *Tail) inRange(idx TrieIndex) bool {
	return idx >= FirstBlock && int(idx) < len(t.blocks)
}

// GetSuffix returns the suffix stored at idx.
func (t *Tail) GetSuffix(idx TrieIndex) ([]byte, bool) {
	if !t.inRange(idx) {
		return nil, false
	}
	return t.blocks[idx].suffix, true
}

// SetSuffix replaces the suffix stored at idx.
func (t *Tail) SetSuffix(idx TrieIndex, suffix []byte) bool {
	if !t.inRange(idx) {
		return false
	}
	t.blocks[idx].suffix = append([]byte(nil), suffix...)
	return true
}

// GetData returns the payload at idx, or (DataError, false) if idx is out
// of range.
func (t *Tail) GetData(idx TrieIndex) (int32, bool) {
	if !t.inRange(idx) {
		return DataError, false
	}
	return t.blocks[idx].data, true
}

// SetData replaces the payload at idx.
func (t *Tail) SetData(idx TrieIndex, data int32) bool {
	if !t.inRange(idx) {
		return false
	}
	t.blocks[idx].data = data
	return true
}

// AddSuffix allocates a new block holding suffix with no payload yet,
// returning its index.
func (t *Tail) AddSuffix(suffix []byte) TrieIndex {
	idx := t.allocBlock()
	t.blocks[idx].suffix = append([]byte(nil), suffix...)
	t.blocks[idx].data = DataError
	return idx
}

// Delete frees the block at idx, discarding its suffix and payload.
func (t *Tail) Delete(idx TrieIndex) bool {
	if !t.inRange(idx) {
		return false
	}
	t.blocks[idx].suffix = nil
	t.blocks[idx].data = DataError
	t.freeBlock(idx)
	return true
}

func (t *Tail) allocBlock() TrieIndex {
	if t.firstFree == IndexError {
		t.blocks = append(t.blocks, block{data: DataError})
		idx := TrieIndex(len(t.blocks) - 1)
		tracer().Debugf("tail: pool extended to %d blocks", len(t.blocks)-1)
		return idx
	}
	idx := t.firstFree
	t.firstFree = t.blocks[idx].next
	t.blocks[idx].next = IndexError
	return idx
}

func (t *Tail) freeBlock(idx TrieIndex) {
	t.blocks[idx].next = t.firstFree
	t.firstFree = idx
}

// WalkChar advances a suffix-matching cursor by one internal char,
// reporting whether c matched the suffix byte (or implicit terminator)
// at the current position.
func (t *Tail) WalkChar(idx TrieIndex, pos *int, c byte) bool {
	suffix, ok := t.GetSuffix(idx)
	if !ok {
		return false
	}
	if *pos == len(suffix) {
		// Implicit terminator: the suffix is exhausted.
		return c == 0
	}
	if suffix[*pos] != c {
		return false
	}
	*pos++
	return true
}

// WalkStr advances the cursor through as much of str as matches the
// suffix at idx, returning the number of internal chars consumed. The
// caller can tell a full match from a partial one by comparing the
// return value against len(str).
func (t *Tail) WalkStr(idx TrieIndex, pos *int, str []byte) int {
	suffix, ok := t.GetSuffix(idx)
	if !ok {
		return 0
	}
	n := 0
	for n < len(str) {
		if *pos == len(suffix) {
			if str[n] != 0 {
				break
			}
			n++
			break
		}
		if suffix[*pos] != str[n] {
			break
		}
		*pos++
		n++
	}
	return n
}
