// reflector
package reflector

import (
	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Reflector (Umkehrwalze) sends the signal back through the rotors.  It never
// moves.
type Reflector struct {
	wiring *permutator.Permutator
}

// New builds a reflector.  The wiring must be an involution: if A maps to Y
// then Y maps to A.
func New(wiring string) (*Reflector, error) {
	p, err := permutator.New(wiring)
	if err != nil {
		return nil, err
	}
	if !p.IsInvolution() {
		return nil, cryptors.NewConfigurationError("reflector", wiring, "wiring is not an involution")
	}
	return &Reflector{wiring: p}, nil
}

// ForwardIndex and BackwardIndex are identical for an involution.
func (r *Reflector) ForwardIndex(idx int) int {
	return r.wiring.ForwardIndex(idx)
}

func (r *Reflector) BackwardIndex(idx int) int {
	return r.wiring.ForwardIndex(idx)
}

// Reflect substitutes letter.  Bytes that are not letters are returned
// unchanged.
func (r *Reflector) Reflect(letter byte) byte {
	idx, ok := cryptors.Index(letter)
	if !ok {
		return letter
	}
	return cryptors.Letter(r.wiring.ForwardIndex(idx))
}

// FixedPoints returns the letters the reflector maps onto themselves.  The
// historical reflectors have none.
func (r *Reflector) FixedPoints() string {
	return r.wiring.FixedPoints()
}

func (r *Reflector) Wiring() string {
	return r.wiring.Wiring()
}
