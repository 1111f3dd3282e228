package permutator

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
)

func TestNewBuildsInverse(t *testing.T) {
	p, err := New("ekmflgdqvzntowyhxuspaibrcj")
	if err != nil {
		t.Fatalf("new permutator: %v", err)
	}
	if p.Wiring() != "EKMFLGDQVZNTOWYHXUSPAIBRCJ" {
		t.Fatalf("wiring not upper cased: %q", p.Wiring())
	}
	if got := p.ForwardIndex(0); got != 4 {
		t.Fatalf("forward 0: expected 4, got %d", got)
	}
	for i := 0; i < cryptors.AlphabetSize; i++ {
		if got := p.BackwardIndex(p.ForwardIndex(i)); got != i {
			t.Fatalf("index %d: round trip gave %d", i, got)
		}
	}
	if got := p.ForwardIndex(-26); got != 4 {
		t.Fatalf("forward -26: expected 4, got %d", got)
	}
	if p.IsInvolution() {
		t.Fatalf("rotor I wiring is not an involution")
	}
}

func TestInvolutionAndFixedPoints(t *testing.T) {
	id, err := New(cryptors.Alphabet)
	if err != nil {
		t.Fatalf("new permutator: %v", err)
	}
	if !id.IsInvolution() {
		t.Fatalf("identity must be an involution")
	}
	if id.FixedPoints() != cryptors.Alphabet {
		t.Fatalf("unexpected fixed points: %q", id.FixedPoints())
	}
	b, err := New("YRUHQSLDPXNGOKMIEBFZCWVJAT")
	if err != nil {
		t.Fatalf("new permutator: %v", err)
	}
	if !b.IsInvolution() || b.FixedPoints() != "" {
		t.Fatalf("reflector B must be a fixed point free involution")
	}
}

func TestNewRejectsBadWiring(t *testing.T) {
	for _, w := range []string{
		"",
		"ABCDEFGHIJKLMNOPQRSTUVWXY",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZA",
		"ABCDEFGHIJKLMNOPQRSTUVWXYA",
		"ABCDEFGHIJKLMNOPQRSTUVWXY1",
	} {
		if _, err := New(w); err == nil {
			t.Errorf("%q: expected error", w)
		}
	}
}
