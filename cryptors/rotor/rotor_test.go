package rotor

import (
	"errors"
	"testing"

	"github.com/bgallie/enigma/cryptors"
)

const rotorI = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"

func newRotorI(t *testing.T, ring, position int) *Rotor {
	t.Helper()
	r, err := New(rotorI, 'Q', ring, position)
	if err != nil {
		t.Fatalf("new rotor: %v", err)
	}
	return r
}

func TestNewKeepsSettings(t *testing.T) {
	r := newRotorI(t, 0, 0)
	if r.Wiring() != rotorI {
		t.Fatalf("unexpected wiring: %q", r.Wiring())
	}
	if r.Notch() != 'Q' {
		t.Fatalf("unexpected notch: %c", r.Notch())
	}
	if r.Ring() != 0 || r.Position() != 0 {
		t.Fatalf("unexpected ring/position: %d/%d", r.Ring(), r.Position())
	}
}

func TestStepWrapsAround(t *testing.T) {
	r := newRotorI(t, 0, 0)
	r.Step()
	if r.Position() != 1 {
		t.Fatalf("expected position 1, got %d", r.Position())
	}
	if err := r.SetPosition(25); err != nil {
		t.Fatalf("set position: %v", err)
	}
	r.Step()
	if r.Position() != 0 {
		t.Fatalf("expected wrap to 0, got %d", r.Position())
	}
}

func TestAtNotch(t *testing.T) {
	r := newRotorI(t, 0, 16)
	if !r.AtNotch() {
		t.Fatalf("expected rotor at Q to be at notch")
	}
	_ = r.SetPosition(15)
	if r.AtNotch() {
		t.Fatalf("expected rotor at P not to be at notch")
	}
}

func TestAtNotchIgnoresRing(t *testing.T) {
	r := newRotorI(t, 5, 16)
	if !r.AtNotch() {
		t.Fatalf("ring setting must not move the notch")
	}
}

func TestForwardBackwardAtZero(t *testing.T) {
	r := newRotorI(t, 0, 0)
	if got := r.Forward('A'); got != 'E' {
		t.Fatalf("forward A: expected E, got %c", got)
	}
	if got := r.Backward('E'); got != 'A' {
		t.Fatalf("backward E: expected A, got %c", got)
	}
	if got := r.Forward('a'); got != 'E' {
		t.Fatalf("forward a: expected E, got %c", got)
	}
}

func TestForwardWithOffset(t *testing.T) {
	// Position B shifts the contacts by one: A enters at B, B maps to K,
	// and K leaves as J.
	r := newRotorI(t, 0, 1)
	if got := r.Forward('A'); got != 'J' {
		t.Fatalf("forward A at B: expected J, got %c", got)
	}
	// Ring B at position B cancels out.
	r = newRotorI(t, 1, 1)
	if got := r.Forward('A'); got != 'E' {
		t.Fatalf("forward A at B ring B: expected E, got %c", got)
	}
}

func TestBackwardInvertsForward(t *testing.T) {
	for ring := 0; ring < cryptors.AlphabetSize; ring++ {
		for pos := 0; pos < cryptors.AlphabetSize; pos++ {
			r := newRotorI(t, ring, pos)
			for i := 0; i < cryptors.AlphabetSize; i++ {
				x := cryptors.Letter(i)
				if got := r.Backward(r.Forward(x)); got != x {
					t.Fatalf("ring %d position %d: backward(forward(%c)) = %c", ring, pos, x, got)
				}
			}
		}
	}
}

func TestNonLettersPassThrough(t *testing.T) {
	r := newRotorI(t, 0, 0)
	if got := r.Forward('1'); got != '1' {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := r.Backward(' '); got != ' ' {
		t.Fatalf("expected passthrough, got %q", got)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name     string
		wiring   string
		notch    byte
		ring     int
		position int
	}{
		{"short wiring", "ABC", 'Q', 0, 0},
		{"duplicate letter", "EEMFLGDQVZNTOWYHXUSPAIBRCJ", 'Q', 0, 0},
		{"bad notch", rotorI, '1', 0, 0},
		{"ring too large", rotorI, 'Q', 26, 0},
		{"negative position", rotorI, 'Q', 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.wiring, tt.notch, tt.ring, tt.position)
			var cfgErr *cryptors.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestCloneStepsIndependently(t *testing.T) {
	r := newRotorI(t, 0, 3)
	c := r.Clone()
	c.Step()
	if r.Position() != 3 || c.Position() != 4 {
		t.Fatalf("unexpected positions: original %d clone %d", r.Position(), c.Position())
	}
}

func TestSetPositionRejectsOutOfRange(t *testing.T) {
	r := newRotorI(t, 0, 3)
	if err := r.SetPosition(26); err == nil {
		t.Fatalf("expected error")
	}
	if r.Position() != 3 {
		t.Fatalf("position changed on error: %d", r.Position())
	}
}
