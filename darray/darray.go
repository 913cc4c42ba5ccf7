// Package darray implements the double-array trie state-transition table:
// a pair of parallel base/check arrays with O(1) per-character lookup,
// dynamic relocation on collision, and free-cell reuse via a doubly
// linked free list.
package darray

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("darray")
}

// assert panics on a broken internal invariant, such as a free-list
// pointer that no longer refers to a valid cell. It is never used for
// conditions a caller can trigger by passing ordinary bad input.
func assert(cond bool, msg string) {
	if !cond {
		panic("darray: " + msg)
	}
}

// TrieIndex is a state id / cell index in the double array.
type TrieIndex = int32

const (
	// HeaderCell stores a fixed sentinel in base and mirrors the current
	// cell count in check, purely for the on-disk header (see io.go);
	// no algorithm ever dereferences it as a real state.
	HeaderCell TrieIndex = 0
	// FreeListHead roots the doubly linked free-cell list. When the list
	// is empty it points to itself: base == check == -FreeListHead.
	FreeListHead TrieIndex = 1
	// Root is the trie's root state. It is never freed.
	Root TrieIndex = 2
	// PoolBegin is the first index available for allocation.
	PoolBegin TrieIndex = 3

	// IndexError is returned in place of a TrieIndex to signal failure;
	// it can never be a valid allocated state id.
	IndexError TrieIndex = 0
	// IndexMax bounds the largest state id a double array may grow to.
	IndexMax TrieIndex = 0x7fffffff - 1

	maxChar = 255
)

// daSignatureBits is the on-disk magic for the double-array section,
// mirrored into HeaderCell's base slot for the lifetime of the struct.
var daSignatureBits uint32 = 0xdafcdafc

// ErrOverflow is returned when a state id would exceed IndexMax or an
// index is otherwise out of the representable range.
var ErrOverflow = errors.New("darray: state id overflow")

type cell struct {
	base  TrieIndex
	check TrieIndex
}

// DoubleArray is the mutable base/check transition table.
type DoubleArray struct {
	cells []cell
}

// New returns a double array containing only the root state.
func New() *DoubleArray {
	d := &DoubleArray{cells: make([]cell, PoolBegin)}
	d.cells[HeaderCell] = cell{base: int32(daSignatureBits), check: PoolBegin}
	d.cells[FreeListHead] = cell{base: -FreeListHead, check: -FreeListHead}
	d.cells[Root] = cell{base: 0, check: 0}
	return d
}

// NumCells returns the total number of cells, free or in use, including
// the reserved header, free-list head and root.
func (d *DoubleArray) NumCells() int32 { return int32(len(d.cells)) }

// Base returns the base value of state s, or IndexError if s is out of
// range.
func (d *DoubleArray) Base(s TrieIndex) TrieIndex {
	if s < 0 || int(s) >= len(d.cells) {
		return IndexError
	}
	return d.cells[s].base
}

// Check returns the check value of state s, or IndexError if s is out of
// range.
func (d *DoubleArray) Check(s TrieIndex) TrieIndex {
	if s < 0 || int(s) >= len(d.cells) {
		return IndexError
	}
	return d.cells[s].check
}

// SetBase sets the base value of state s. s must be within range.
func (d *DoubleArray) SetBase(s TrieIndex, v TrieIndex) {
	d.cells[s].base = v
}

// SetCheck sets the check value of state s. s must be within range.
func (d *DoubleArray) SetCheck(s TrieIndex, v TrieIndex) {
	d.cells[s].check = v
}

// Walk returns the state reached from s via internal char c, if any.
func (d *DoubleArray) Walk(s TrieIndex, c byte) (TrieIndex, bool) {
	base := d.Base(s)
	if base <= 0 {
		return IndexError, false
	}
	next := base + TrieIndex(c)
	if next < 0 || int(next) >= len(d.cells) {
		return IndexError, false
	}
	if d.cells[next].check == s {
		return next, true
	}
	return IndexError, false
}

// IsWalkable reports whether s has a transition on c.
func (d *DoubleArray) IsWalkable(s TrieIndex, c byte) bool {
	_, ok := d.Walk(s, c)
	return ok
}

// IsSeparate reports whether s is a tail link: its suffix continues in
// the Tail rather than in further double-array transitions.
func (d *DoubleArray) IsSeparate(s TrieIndex) bool {
	return d.Base(s) < 0
}

// GetTailIndex returns the tail block index a separate state links to,
// or 0 if s is not separate.
func (d *DoubleArray) GetTailIndex(s TrieIndex) TrieIndex {
	b := d.Base(s)
	if b >= 0 {
		return 0
	}
	return -b
}

// SetTailIndex marks s as a tail link pointing at tailIdx.
func (d *DoubleArray) SetTailIndex(s TrieIndex, tailIdx TrieIndex) {
	d.SetBase(s, -tailIdx)
}

func (d *DoubleArray) checkAt(i TrieIndex) TrieIndex {
	if i < 0 || int(i) >= len(d.cells) {
		return IndexError
	}
	return d.cells[i].check
}

func (d *DoubleArray) isFreeCell(s TrieIndex) bool {
	return s >= PoolBegin && int(s) < len(d.cells) && d.cells[s].check <= 0
}

// checkFreeCell reports whether cell s is free, growing the pool first
// if s falls beyond the current length.
func (d *DoubleArray) checkFreeCell(s TrieIndex) bool {
	if err := d.extend(s); err != nil {
		return false
	}
	return d.isFreeCell(s)
}

func maxOffset(base TrieIndex, numCells int) TrieIndex {
	maxC := TrieIndex(maxChar)
	if room := TrieIndex(numCells) - base; room < maxC {
		maxC = room
	}
	return maxC
}

// OutputSymbols returns, in ascending order, the internal chars for which
// s currently has a transition.
func (d *DoubleArray) OutputSymbols(s TrieIndex) []byte {
	base := d.Base(s)
	if base <= 0 {
		return nil
	}
	maxC := maxOffset(base, len(d.cells))
	var out []byte
	for c := TrieIndex(0); c <= maxC; c++ {
		if d.checkAt(base+c) == s {
			out = append(out, byte(c))
		}
	}
	return out
}

// HasChildren reports whether s has at least one outgoing transition.
func (d *DoubleArray) HasChildren(s TrieIndex) bool {
	base := d.Base(s)
	if base <= 0 {
		return false
	}
	maxC := maxOffset(base, len(d.cells))
	for c := TrieIndex(0); c <= maxC; c++ {
		if d.checkAt(base+c) == s {
			return true
		}
	}
	return false
}

// allocCell unlinks cell from the free list, readying it for use as an
// allocated state with no children yet (base 0). The caller must then
// set its check field.
func (d *DoubleArray) allocCell(cellIdx TrieIndex) {
	prev := -d.cells[cellIdx].base
	next := -d.cells[cellIdx].check
	assert(prev >= 0 && int(prev) < len(d.cells), "allocCell: corrupt free list, prev pointer out of range")
	assert(next >= 0 && int(next) < len(d.cells), "allocCell: corrupt free list, next pointer out of range")
	d.cells[prev].check = -next
	d.cells[next].base = -prev
	d.cells[cellIdx].base = 0
}

// freeCell re-inserts cellIdx into the free list, keeping it in
// ascending order so that findFreeBase's forward scan terminates.
func (d *DoubleArray) freeCell(cellIdx TrieIndex) {
	assert(cellIdx >= PoolBegin, "freeCell: refusing to free a reserved cell")
	i := -d.cells[FreeListHead].check
	for i != FreeListHead && i < cellIdx {
		i = -d.cells[i].check
	}
	prev := -d.cells[i].base
	d.cells[cellIdx].check = -i
	d.cells[cellIdx].base = -prev
	d.cells[prev].check = -cellIdx
	d.cells[i].base = -cellIdx
}

// Prune frees s and its ancestors up to (but not including) the root,
// as long as each no longer has any children of its own.
func (d *DoubleArray) Prune(s TrieIndex) {
	d.PruneUpto(Root, s)
}

// PruneUpto frees s and its ancestors up to (but not including) p.
func (d *DoubleArray) PruneUpto(p, s TrieIndex) {
	for p != s && !d.HasChildren(s) {
		parent := d.Check(s)
		d.freeCell(s)
		s = parent
	}
}

// extend grows the pool so that toIndex is a valid cell index, linking
// the newly created cells into the tail of the free list.
func (d *DoubleArray) extend(toIndex TrieIndex) error {
	if toIndex <= 0 || toIndex >= IndexMax {
		return ErrOverflow
	}
	if int(toIndex) < len(d.cells) {
		return nil
	}

	newBegin := TrieIndex(len(d.cells))
	grown := make([]cell, toIndex+1)
	copy(grown, d.cells)
	d.cells = grown

	for i := newBegin; i < toIndex; i++ {
		d.cells[i].check = -(i + 1)
		d.cells[i+1].base = -i
	}
	freeTail := -d.cells[FreeListHead].base
	d.cells[freeTail].check = -newBegin
	d.cells[newBegin].base = -freeTail
	d.cells[toIndex].check = -FreeListHead
	d.cells[FreeListHead].base = -toIndex
	d.cells[HeaderCell].check = TrieIndex(len(d.cells))

	tracer().Debugf("darray: pool extended to %d cells", len(d.cells))
	return nil
}
