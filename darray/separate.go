package darray

// FirstSeparate walks from root down its lexicographically smallest
// branch until it reaches a separate (tail-linked) state, appending the
// internal chars it descends through to keybuf. It returns IndexError if
// root has no reachable separate descendant, which only happens on an
// otherwise-empty double array.
func (d *DoubleArray) FirstSeparate(root TrieIndex, keybuf *[]byte) TrieIndex {
	s := root
	for {
		base := d.Base(s)
		if base < 0 {
			return s
		}
		if base == 0 {
			return IndexError
		}
		maxC := maxOffset(base, len(d.cells))
		found := false
		for c := TrieIndex(0); c <= maxC; c++ {
			if d.checkAt(base+c) == s {
				*keybuf = append(*keybuf, byte(c))
				s = base + c
				found = true
				break
			}
		}
		if !found {
			return IndexError
		}
	}
}

// NextSeparate finds the separate state lexicographically following sep
// among root's descendants, backtracking up the key buffer as needed. It
// returns IndexError once sep was the last one.
func (d *DoubleArray) NextSeparate(root, sep TrieIndex, keybuf *[]byte) TrieIndex {
	for sep != root {
		parent := d.Check(sep)
		base := d.Base(parent)
		c := sep - base

		if len(*keybuf) > 0 {
			*keybuf = (*keybuf)[:len(*keybuf)-1]
		}

		maxC := maxOffset(base, len(d.cells))
		for c++; c <= maxC; c++ {
			if d.checkAt(base+c) == parent {
				*keybuf = append(*keybuf, byte(c))
				return d.FirstSeparate(base+c, keybuf)
			}
		}
		sep = parent
	}
	return IndexError
}
