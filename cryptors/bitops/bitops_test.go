package bitops

import "testing"

func TestLetterSet(t *testing.T) {
	var s LetterSet
	s.SetBit(0).SetBit(25).SetBit(7)
	if !s.GetBit(0) || !s.GetBit(25) || !s.GetBit(7) {
		t.Fatalf("expected bits set: %b", s)
	}
	if s.GetBit(1) {
		t.Fatalf("unexpected bit 1: %b", s)
	}
	if s.Count() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Count())
	}
	s.ClrBit(7)
	if s.GetBit(7) || s.Count() != 2 {
		t.Fatalf("expected bit 7 cleared: %b", s)
	}
}
