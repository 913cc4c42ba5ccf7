package tail

import (
	"bytes"
	"testing"
)

func TestAddSuffixAndGet(t *testing.T) {
	tl := New()
	idx := tl.AddSuffix([]byte{1, 2, 3})
	got, ok := tl.GetSuffix(idx)
	if !ok {
		t.Fatalf("GetSuffix missed for idx %d", idx)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("GetSuffix = %v, want [1 2 3]", got)
	}
	if d, _ := tl.GetData(idx); d != DataError {
		t.Fatalf("fresh block should have DataError payload, got %d", d)
	}
}

func TestSetDataRoundtrip(t *testing.T) {
	tl := New()
	idx := tl.AddSuffix([]byte{9})
	if !tl.SetData(idx, 77) {
		t.Fatalf("SetData failed")
	}
	got, ok := tl.GetData(idx)
	if !ok || got != 77 {
		t.Fatalf("GetData = %v, %v; want 77, true", got, ok)
	}
}

func TestDeleteThenAllocReusesBlock(t *testing.T) {
	tl := New()
	a := tl.AddSuffix([]byte{1})
	b := tl.AddSuffix([]byte{2})
	if !tl.Delete(a) {
		t.Fatalf("Delete failed")
	}
	c := tl.AddSuffix([]byte{3})
	if c != a {
		t.Fatalf("expected freed block %d to be reused, got new block %d", a, c)
	}
	if got, _ := tl.GetSuffix(b); !bytes.Equal(got, []byte{2}) {
		t.Fatalf("unrelated block b corrupted: got %v", got)
	}
}

func TestWalkCharMatchesSuffixThenTerminator(t *testing.T) {
	tl := New()
	idx := tl.AddSuffix([]byte{5, 6})

	pos := 0
	if !tl.WalkChar(idx, &pos, 5) {
		t.Fatalf("expected match on first suffix byte")
	}
	if !tl.WalkChar(idx, &pos, 6) {
		t.Fatalf("expected match on second suffix byte")
	}
	if !tl.WalkChar(idx, &pos, 0) {
		t.Fatalf("expected implicit terminator match at end of suffix")
	}
	if !tl.WalkChar(idx, &pos, 0) || pos != 2 {
		t.Fatalf("the implicit terminator should keep matching without moving the cursor past the suffix, pos = %d", pos)
	}
}

func TestWalkCharMismatch(t *testing.T) {
	tl := New()
	idx := tl.AddSuffix([]byte{5, 6})
	pos := 0
	if tl.WalkChar(idx, &pos, 9) {
		t.Fatalf("expected mismatch on wrong byte")
	}
}

func TestWalkStrPartialAndFullMatch(t *testing.T) {
	tl := New()
	idx := tl.AddSuffix([]byte{1, 2, 3})

	pos := 0
	n := tl.WalkStr(idx, &pos, []byte{1, 2, 9})
	if n != 2 {
		t.Fatalf("WalkStr consumed %d, want 2 (diverges at third byte)", n)
	}

	pos = 0
	full := append([]byte{1, 2, 3}, 0)
	n = tl.WalkStr(idx, &pos, full)
	if n != len(full) {
		t.Fatalf("WalkStr consumed %d, want full match of %d", n, len(full))
	}
}

func TestSerializeRoundtripWithFreedBlock(t *testing.T) {
	tl := New()
	a := tl.AddSuffix([]byte{1, 2})
	_ = tl.AddSuffix([]byte{3})
	tl.SetData(a, 5)
	c := tl.AddSuffix([]byte{7})
	tl.SetData(c, 9)
	freed := tl.AddSuffix([]byte{9, 9, 9})
	tl.Delete(freed)

	var buf bytes.Buffer
	if _, err := tl.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if got.NumBlocks() != tl.NumBlocks() {
		t.Fatalf("NumBlocks mismatch: got %d want %d", got.NumBlocks(), tl.NumBlocks())
	}
	if s, _ := got.GetSuffix(a); !bytes.Equal(s, []byte{1, 2}) {
		t.Fatalf("suffix for block a mismatched after roundtrip: %v", s)
	}
	if d, _ := got.GetData(a); d != 5 {
		t.Fatalf("data for block a mismatched after roundtrip: %v", d)
	}

	reused := got.AddSuffix([]byte{4, 4})
	if reused != freed {
		t.Fatalf("expected roundtripped free list to reuse block %d, got %d", freed, reused)
	}
}

func TestReadFromRejectsBadSignature(t *testing.T) {
	buf := bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 1})
	if _, err := ReadFrom(buf); err == nil {
		t.Fatalf("expected error for bad signature")
	}
}
