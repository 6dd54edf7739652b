package vmem

import (
	"path/filepath"
	"testing"
)

func TestMemSwapStoreRoundTrip(t *testing.T) {
	s := NewMemSwapStore()
	out := []Word{1, 2, 3, 4}
	if err := s.PageOut(7, out); err != nil {
		t.Fatalf("PageOut: %v", err)
	}
	in := make([]Word, 4)
	if err := s.PageIn(7, in); err != nil {
		t.Fatalf("PageIn: %v", err)
	}
	for i := range out {
		if in[i] != out[i] {
			t.Errorf("in[%d] = %d, want %d", i, in[i], out[i])
		}
	}
}

func TestMemSwapStoreNeverWrittenYieldsZero(t *testing.T) {
	s := NewMemSwapStore()
	buf := []Word{9, 9, 9}
	if err := s.PageIn(42, buf); err != nil {
		t.Fatalf("PageIn: %v", err)
	}
	for i, w := range buf {
		if w != 0 {
			t.Errorf("buf[%d] = %d, want 0", i, w)
		}
	}
}

func TestFileSwapStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap.bin")
	s, err := NewFileSwapStore(path, 3)
	if err != nil {
		t.Fatalf("NewFileSwapStore: %v", err)
	}
	defer s.Close()

	a := []Word{10, 20, 30}
	b := []Word{100, 200, 300}
	if err := s.PageOut(1, a); err != nil {
		t.Fatalf("PageOut(1): %v", err)
	}
	if err := s.PageOut(2, b); err != nil {
		t.Fatalf("PageOut(2): %v", err)
	}

	gotA := make([]Word, 3)
	if err := s.PageIn(1, gotA); err != nil {
		t.Fatalf("PageIn(1): %v", err)
	}
	for i := range a {
		if gotA[i] != a[i] {
			t.Errorf("gotA[%d] = %d, want %d", i, gotA[i], a[i])
		}
	}

	gotB := make([]Word, 3)
	if err := s.PageIn(2, gotB); err != nil {
		t.Fatalf("PageIn(2): %v", err)
	}
	for i := range b {
		if gotB[i] != b[i] {
			t.Errorf("gotB[%d] = %d, want %d", i, gotB[i], b[i])
		}
	}
}

func TestFileSwapStoreOverwriteReusesOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap.bin")
	s, err := NewFileSwapStore(path, 2)
	if err != nil {
		t.Fatalf("NewFileSwapStore: %v", err)
	}
	defer s.Close()

	if err := s.PageOut(5, []Word{1, 1}); err != nil {
		t.Fatalf("PageOut: %v", err)
	}
	if err := s.PageOut(5, []Word{2, 2}); err != nil {
		t.Fatalf("PageOut (overwrite): %v", err)
	}
	got := make([]Word, 2)
	if err := s.PageIn(5, got); err != nil {
		t.Fatalf("PageIn: %v", err)
	}
	if got[0] != 2 || got[1] != 2 {
		t.Errorf("got %v, want [2 2]", got)
	}
	if s.offsets[5] != 0 || s.next != 2*wordBytes {
		t.Errorf("offset of page 5 = %d, next = %d; want 0 and %d (overwrite reuses the slot)", s.offsets[5], s.next, 2*wordBytes)
	}
}
