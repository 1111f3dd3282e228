// rotor
package rotor

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Rotor is a stepping wheel.  The wiring, notch and ring setting are fixed
// when the rotor is built; only the position changes.
type Rotor struct {
	wiring   *permutator.Permutator
	notch    int // alphabet index of the notch letter
	ring     int // Ringstellung, 0 - 25
	position int // current rotation, 0 - 25
}

// New builds a rotor from its wiring, notch letter, ring setting and starting
// position.
func New(wiring string, notch byte, ring, position int) (*Rotor, error) {
	var r Rotor
	if err := r.Update(wiring, notch, ring, position); err != nil {
		return nil, err
	}
	return &r, nil
}

// Update re-initializes the rotor in place.  On error the rotor is left
// unchanged.
func (r *Rotor) Update(wiring string, notch byte, ring, position int) error {
	p, err := permutator.New(wiring)
	if err != nil {
		return err
	}
	n, ok := cryptors.Index(notch)
	if !ok {
		return cryptors.NewConfigurationError("notch", string(notch), "must be a letter")
	}
	if err := checkRange("ring setting", ring); err != nil {
		return err
	}
	if err := checkRange("position", position); err != nil {
		return err
	}
	r.wiring, r.notch, r.ring, r.position = p, n, ring, position
	return nil
}

func checkRange(field string, v int) error {
	if v < 0 || v >= cryptors.AlphabetSize {
		return cryptors.NewConfigurationError(field, fmt.Sprint(v),
			"must be between 0 and %d", cryptors.AlphabetSize-1)
	}
	return nil
}

// shift is the offset of the wiring contacts caused by the rotation of the
// wheel relative to its ring.
func (r *Rotor) shift() int {
	return cryptors.Mod(r.position - r.ring)
}

// ForwardIndex passes idx through the wiring on the way to the reflector.
func (r *Rotor) ForwardIndex(idx int) int {
	s := r.shift()
	return cryptors.Mod(r.wiring.ForwardIndex(idx+s) - s)
}

// BackwardIndex passes idx through the inverse wiring on the way back from
// the reflector.
func (r *Rotor) BackwardIndex(idx int) int {
	s := r.shift()
	return cryptors.Mod(r.wiring.BackwardIndex(idx+s) - s)
}

// Forward substitutes letter on the way to the reflector.  Bytes that are not
// letters are returned unchanged.
func (r *Rotor) Forward(letter byte) byte {
	idx, ok := cryptors.Index(letter)
	if !ok {
		return letter
	}
	return cryptors.Letter(r.ForwardIndex(idx))
}

// Backward is the inverse of Forward for the current position.
func (r *Rotor) Backward(letter byte) byte {
	idx, ok := cryptors.Index(letter)
	if !ok {
		return letter
	}
	return cryptors.Letter(r.BackwardIndex(idx))
}

// Step advances the rotor one position.
func (r *Rotor) Step() {
	r.position = cryptors.Mod(r.position + 1)
}

// AtNotch reports whether the rotor sits on its notch.  The ring setting does
// not move the notch.
func (r *Rotor) AtNotch() bool {
	return r.position == r.notch
}

func (r *Rotor) Position() int {
	return r.position
}

// SetPosition moves the rotor to position p.
func (r *Rotor) SetPosition(p int) error {
	if err := checkRange("position", p); err != nil {
		return err
	}
	r.position = p
	return nil
}

func (r *Rotor) Ring() int {
	return r.ring
}

func (r *Rotor) Notch() byte {
	return cryptors.Letter(r.notch)
}

func (r *Rotor) Wiring() string {
	return r.wiring.Wiring()
}

// Clone returns a copy of the rotor that steps independently.  The wiring is
// immutable and shared.
func (r *Rotor) Clone() *Rotor {
	c := *r
	return &c
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("rotor.New(%q, '%c', %d, %d)",
		r.wiring.Wiring(), r.Notch(), r.ring, r.position))
	return output.String()
}
