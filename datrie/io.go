package datrie

import (
	"io"

	"github.com/whs/libdatrie-go/alphamap"
	"github.com/whs/libdatrie-go/darray"
	"github.com/whs/libdatrie-go/tail"
)

// WriteTo serializes the trie as three self-delimited sections, in
// order: the AlphaMap, the DoubleArray, then the Tail pool. Each section
// opens with its own magic number, which ReadFrom checks before parsing
// that section.
func (tr *Trie) WriteTo(w io.Writer) (int64, error) {
	var total int64
	n, err := tr.alpha.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = tr.da.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	n, err = tr.tails.WriteTo(w)
	total += n
	if err != nil {
		return total, err
	}
	return total, nil
}

// ReadFrom reconstructs a Trie previously written by WriteTo.
func ReadFrom(r io.Reader) (*Trie, error) {
	alpha, err := alphamap.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	da, err := darray.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	tails, err := tail.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	return &Trie{alpha: alpha, da: da, tails: tails}, nil
}
