package alphamap

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Signature is the big-endian magic that opens an AlphaMap section of the
// on-disk trie format.
const Signature uint32 = 0xD9FCD9FC

// WriteTo serializes m in the on-disk AlphaMap format: magic, range count,
// then (start, end) pairs, all big-endian i32.
func (m *AlphaMap) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.BigEndian, Signature); err != nil {
		return n, err
	}
	n += 4
	if err := binary.Write(w, binary.BigEndian, int32(len(m.ranges))); err != nil {
		return n, err
	}
	n += 4
	for _, r := range m.ranges {
		if err := binary.Write(w, binary.BigEndian, int32(r.Start)); err != nil {
			return n, err
		}
		n += 4
		if err := binary.Write(w, binary.BigEndian, int32(r.End)); err != nil {
			return n, err
		}
		n += 4
	}
	return n, nil
}

// SerializedSize returns the number of bytes WriteTo would write.
func (m *AlphaMap) SerializedSize() int {
	return 4 + 4 + 8*len(m.ranges)
}

// ReadFrom reconstructs an AlphaMap previously written by WriteTo. On
// error, including a bad magic, no partial state is kept in m.
func ReadFrom(r io.Reader) (*AlphaMap, error) {
	var sig uint32
	if err := binary.Read(r, binary.BigEndian, &sig); err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, fmt.Errorf("alphamap: bad signature %#x", sig)
	}

	var total int32
	if err := binary.Read(r, binary.BigEndian, &total); err != nil {
		return nil, err
	}
	if total < 0 {
		return nil, fmt.Errorf("alphamap: negative range count %d", total)
	}

	m := New()
	for i := int32(0); i < total; i++ {
		var start, end int32
		if err := binary.Read(r, binary.BigEndian, &start); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &end); err != nil {
			return nil, err
		}
		if err := addRangeOnly(m, start, end); err != nil {
			return nil, err
		}
	}
	m.recalcWorkArea()
	return m, nil
}

// addRangeOnly mirrors the original format's range loading: ranges are
// already disjoint and ascending on disk, so they are appended verbatim
// without going through AddRange's merge pass (which is still safe to
// apply, but unnecessary work for trusted, well-formed input).
func addRangeOnly(m *AlphaMap, start, end int32) error {
	if start > end {
		return ErrRangeInverted
	}
	m.ranges = append(m.ranges, AlphaRange{Start: start, End: end})
	return checkCapacity(m.ranges)
}
