package tail

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Signature is the big-endian magic that opens a Tail section of the
// on-disk trie format.
const Signature uint32 = 0xdffcdffc

// WriteTo serializes t as: magic, first_free, num_blocks, then
// num_blocks records of (next_free, data, suffix_len as i16, suffix
// bytes), covering the real blocks in index order.
func (t *Tail) WriteTo(w io.Writer) (int64, error) {
	var n int64
	if err := binary.Write(w, binary.BigEndian, Signature); err != nil {
		return n, err
	}
	n += 4
	if err := binary.Write(w, binary.BigEndian, t.firstFree); err != nil {
		return n, err
	}
	n += 4
	numBlocks := int32(len(t.blocks) - 1)
	if err := binary.Write(w, binary.BigEndian, numBlocks); err != nil {
		return n, err
	}
	n += 4

	for i := 1; i < len(t.blocks); i++ {
		b := &t.blocks[i]
		if err := binary.Write(w, binary.BigEndian, b.next); err != nil {
			return n, err
		}
		n += 4
		if err := binary.Write(w, binary.BigEndian, b.data); err != nil {
			return n, err
		}
		n += 4
		if err := binary.Write(w, binary.BigEndian, int16(len(b.suffix))); err != nil {
			return n, err
		}
		n += 2
		if len(b.suffix) > 0 {
			if _, err := w.Write(b.suffix); err != nil {
				return n, err
			}
			n += int64(len(b.suffix))
		}
	}
	return n, nil
}

// ReadFrom reconstructs a Tail pool previously written by WriteTo.
func ReadFrom(r io.Reader) (*Tail, error) {
	var sig uint32
	if err := binary.Read(r, binary.BigEndian, &sig); err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, fmt.Errorf("tail: bad signature %#x", sig)
	}

	var firstFree, numBlocks int32
	if err := binary.Read(r, binary.BigEndian, &firstFree); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &numBlocks); err != nil {
		return nil, err
	}
	if numBlocks < 0 {
		return nil, fmt.Errorf("tail: negative num_blocks %d", numBlocks)
	}

	blocks := make([]block, numBlocks+1)
	for i := int32(1); i <= numBlocks; i++ {
		var next, data int32
		var suffixLen int16
		if err := binary.Read(r, binary.BigEndian, &next); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &data); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.BigEndian, &suffixLen); err != nil {
			return nil, err
		}
		if suffixLen < 0 {
			return nil, fmt.Errorf("tail: negative suffix length %d at block %d", suffixLen, i)
		}
		suffix := make([]byte, suffixLen)
		if suffixLen > 0 {
			if _, err := io.ReadFull(r, suffix); err != nil {
				return nil, err
			}
		}
		blocks[i] = block{next: next, data: data, suffix: suffix}
	}

	return &Tail{firstFree: firstFree, blocks: blocks}, nil
}
