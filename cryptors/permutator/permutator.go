// permutator project permutator.go
package permutator

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
)

// Permutator is a validated permutation of the alphabet together with its
// inverse.  Rotors and reflectors are built on top of it.
type Permutator struct {
	wiring  string                     // The wiring as given, upper cased.
	perm    [cryptors.AlphabetSize]int // perm[i] is the output for input i.
	inverse [cryptors.AlphabetSize]int // inverse[perm[i]] == i
}

// New creates a permutator from a 26 letter wiring string.  The wiring must
// contain every letter of the alphabet exactly once (case is ignored).
func New(wiring string) (*Permutator, error) {
	if len(wiring) != cryptors.AlphabetSize {
		return nil, cryptors.NewConfigurationError("wiring", wiring,
			"must be %d letters long, got %d", cryptors.AlphabetSize, len(wiring))
	}

	var p Permutator
	var seen bitops.LetterSet
	var w [cryptors.AlphabetSize]byte

	for i := 0; i < cryptors.AlphabetSize; i++ {
		idx, ok := cryptors.Index(wiring[i])
		if !ok {
			return nil, cryptors.NewConfigurationError("wiring", wiring,
				"%q at offset %d is not a letter", wiring[i], i)
		}
		if seen.GetBit(uint(idx)) {
			return nil, cryptors.NewConfigurationError("wiring", wiring,
				"letter %c appears more than once", cryptors.Letter(idx))
		}
		seen.SetBit(uint(idx))
		p.perm[i] = idx
		p.inverse[idx] = i
		w[i] = cryptors.Letter(idx)
	}

	p.wiring = string(w[:])
	return &p, nil
}

// Wiring returns the upper case wiring string.
func (p *Permutator) Wiring() string {
	return p.wiring
}

// ForwardIndex maps i through the permutation.
func (p *Permutator) ForwardIndex(i int) int {
	return p.perm[cryptors.Mod(i)]
}

// BackwardIndex maps i through the inverse permutation.
func (p *Permutator) BackwardIndex(i int) int {
	return p.inverse[cryptors.Mod(i)]
}

// IsInvolution reports whether the permutation is its own inverse.
func (p *Permutator) IsInvolution() bool {
	return p.perm == p.inverse
}

// FixedPoints returns the letters the permutation maps onto themselves.
func (p *Permutator) FixedPoints() string {
	var output bytes.Buffer
	for i, v := range p.perm {
		if i == v {
			output.WriteByte(cryptors.Letter(i))
		}
	}
	return output.String()
}

func (p *Permutator) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("%s\n", cryptors.Alphabet))
	output.WriteString(p.wiring)
	return output.String()
}
