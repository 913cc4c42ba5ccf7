package darray

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Signature is the big-endian magic that opens a DoubleArray section of
// the on-disk trie format.
var Signature = daSignatureBits

// WriteTo serializes d as: magic, num_cells, then (num_cells-1) (base,
// check) pairs covering cells[1:]. Cell 0 carries no independent data —
// its base is always the fixed signature sentinel and its check always
// mirrors num_cells — so it is reconstructed on read rather than stored.
func (d *DoubleArray) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.BigEndian, Signature); err != nil {
		return n, err
	}
	n += 4
	numCells := int32(len(d.cells))
	if err := binary.Write(w, binary.BigEndian, numCells); err != nil {
		return n, err
	}
	n += 4
	for i := 1; i < len(d.cells); i++ {
		if err := binary.Write(w, binary.BigEndian, d.cells[i].base); err != nil {
			return n, err
		}
		n += 4
		if err := binary.Write(w, binary.BigEndian, d.cells[i].check); err != nil {
			return n, err
		}
		n += 4
	}
	return n, nil
}

// SerializedSize returns the number of bytes WriteTo would write.
func (d *DoubleArray) SerializedSize() int {
	return 8 + 8*(len(d.cells)-1)
}

// ReadFrom reconstructs a DoubleArray previously written by WriteTo.
func ReadFrom(r io.Reader) (*DoubleArray, error) {
	var sig uint32
	if err := binary.Read(r, binary.BigEndian, &sig); err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, fmt.Errorf("darray: bad signature %#x", sig)
	}

	var numCells int32
	if err := binary.Read(r, binary.BigEndian, &numCells); err != nil {
		return nil, err
	}
	if numCells < PoolBegin {
		return nil, fmt.Errorf("darray: num_cells %d smaller than minimum %d", numCells, PoolBegin)
	}

	cells := make([]cell, numCells)
	cells[HeaderCell] = cell{base: int32(daSignatureBits), check: numCells}
	for i := int32(1); i < numCells; i++ {
		if err := binary.Read(r, binary.BigEndian, &cells[i].base); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &cells[i].check); err != nil {
			return nil, err
		}
	}
	return &DoubleArray{cells: cells}, nil
}
