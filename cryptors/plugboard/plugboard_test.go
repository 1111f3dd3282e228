package plugboard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bgallie/enigma/cryptors"
)

func TestSwapPairs(t *testing.T) {
	pairs := [][2]byte{{'A', 'B'}, {'C', 'D'}}
	tests := []struct {
		in, want byte
	}{
		{'A', 'B'},
		{'B', 'A'},
		{'C', 'D'},
		{'D', 'C'},
		{'E', 'E'},
	}
	for _, tt := range tests {
		if got := Swap(tt.in, pairs); got != tt.want {
			t.Errorf("swap %c: expected %c, got %c", tt.in, tt.want, got)
		}
	}
}

func TestSwapEmptyIsIdentity(t *testing.T) {
	for i := 0; i < cryptors.AlphabetSize; i++ {
		x := cryptors.Letter(i)
		if got := Swap(x, nil); got != x {
			t.Fatalf("swap %c with no pairs: got %c", x, got)
		}
	}
}

func TestPlugboardSwap(t *testing.T) {
	p, err := New([]string{"AB", "cd"})
	if err != nil {
		t.Fatalf("new plugboard: %v", err)
	}
	for in, want := range map[byte]byte{'A': 'B', 'B': 'A', 'C': 'D', 'd': 'C', 'E': 'E', '!': '!'} {
		if got := p.Swap(in); got != want {
			t.Errorf("swap %c: expected %c, got %c", in, want, got)
		}
	}
	if !reflect.DeepEqual(p.Pairs(), []string{"AB", "CD"}) {
		t.Fatalf("unexpected pairs: %v", p.Pairs())
	}
	if p.String() != "AB CD" {
		t.Fatalf("unexpected string: %q", p.String())
	}
}

func TestPlugboardIsInvolution(t *testing.T) {
	p, err := New([]string{"AZ", "BY", "CX", "DW", "EV", "FU", "GT", "HS", "IR", "JQ"})
	if err != nil {
		t.Fatalf("new plugboard: %v", err)
	}
	for i := 0; i < cryptors.AlphabetSize; i++ {
		if got := p.BackwardIndex(p.ForwardIndex(i)); got != i {
			t.Fatalf("index %d: swap twice gave %d", i, got)
		}
	}
}

func TestNewRejectsBadPairs(t *testing.T) {
	tests := [][]string{
		{"ABC"},
		{"A"},
		{"A1"},
		{"AA"},
		{"AB", "BC"},
		{"AB", "ba"},
	}
	for _, pairs := range tests {
		_, err := New(pairs)
		var cfgErr *cryptors.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%v: expected configuration error, got %v", pairs, err)
		}
	}
}

func TestParsePairs(t *testing.T) {
	got := ParsePairs(" AB cd,EF;GH\tIJ ")
	want := []string{"AB", "cd", "EF", "GH", "IJ"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ParsePairs(""); len(got) != 0 {
		t.Fatalf("expected no pairs, got %v", got)
	}
}
