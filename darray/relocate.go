package darray

// InsertBranch returns the state reached from s via c, allocating a new
// transition if none exists yet. If s's current base cannot accommodate
// c without colliding with an unrelated state, s's whole set of children
// is relocated to a new base first.
func (d *DoubleArray) InsertBranch(s TrieIndex, c byte) (TrieIndex, error) {
	base := d.Base(s)

	if base > 0 {
		next := base + TrieIndex(c)
		if d.checkAt(next) == s {
			return next, nil
		}
		if base > IndexMax-TrieIndex(c) || !d.checkFreeCell(next) {
			symbols := insertSorted(d.OutputSymbols(s), c)
			newBase, err := d.findFreeBase(symbols)
			if err != nil {
				return IndexError, err
			}
			d.relocateBase(s, newBase)
			next = newBase + TrieIndex(c)
		}
		d.allocCell(next)
		d.cells[next].check = s
		return next, nil
	}

	newBase, err := d.findFreeBase([]byte{c})
	if err != nil {
		return IndexError, err
	}
	d.SetBase(s, newBase)
	next := newBase + TrieIndex(c)
	d.allocCell(next)
	d.cells[next].check = s
	return next, nil
}

func insertSorted(symbols []byte, c byte) []byte {
	for _, s := range symbols {
		if s == c {
			return symbols
		}
	}
	out := make([]byte, 0, len(symbols)+1)
	inserted := false
	for _, s := range symbols {
		if !inserted && c < s {
			out = append(out, c)
			inserted = true
		}
		out = append(out, s)
	}
	if !inserted {
		out = append(out, c)
	}
	return out
}

// findFreeBase locates a base offset such that base+sym is free for every
// sym in symbols (symbols must be sorted ascending), growing the pool if
// necessary. It mirrors the free-list forward scan used throughout: start
// searching from the first free cell at or beyond where the smallest
// symbol would land, then verify every symbol fits before accepting.
func (d *DoubleArray) findFreeBase(symbols []byte) (TrieIndex, error) {
	first := TrieIndex(symbols[0])

	s := -d.cells[FreeListHead].check
	for s != FreeListHead && s < first+PoolBegin {
		s = -d.cells[s].check
	}
	if s == FreeListHead {
		s = first + PoolBegin
		for {
			if err := d.extend(s); err != nil {
				return IndexError, err
			}
			if d.isFreeCell(s) {
				break
			}
			s++
		}
	}

	for !d.fitSymbols(s-first, symbols) {
		if -d.cells[s].check == FreeListHead {
			if err := d.extend(TrieIndex(len(d.cells))); err != nil {
				return IndexError, err
			}
		}
		s = -d.cells[s].check
	}
	return s - first, nil
}

func (d *DoubleArray) fitSymbols(base TrieIndex, symbols []byte) bool {
	for _, sym := range symbols {
		c := TrieIndex(sym)
		if base > IndexMax-c {
			return false
		}
		if !d.checkFreeCell(base + c) {
			return false
		}
	}
	return true
}

// relocateBase moves all of s's children from s's current base to
// newBase, fixing up grandchildren's check pointers along the way, then
// updates s's own base.
func (d *DoubleArray) relocateBase(s, newBase TrieIndex) {
	oldBase := d.Base(s)
	symbols := d.OutputSymbols(s)
	tracer().Debugf("darray: relocating state %d from base %d to %d (%d children)", s, oldBase, newBase, len(symbols))

	for _, sym := range symbols {
		c := TrieIndex(sym)
		oldNext := oldBase + c
		newNext := newBase + c
		oldNextBase := d.Base(oldNext)

		d.allocCell(newNext)
		d.cells[newNext].check = s
		d.cells[newNext].base = oldNextBase

		if oldNextBase > 0 {
			maxC := maxOffset(oldNextBase, len(d.cells))
			for cc := TrieIndex(0); cc <= maxC; cc++ {
				if d.checkAt(oldNextBase+cc) == oldNext {
					d.cells[oldNextBase+cc].check = newNext
				}
			}
		}
		d.freeCell(oldNext)
	}
	d.SetBase(s, newBase)
}
