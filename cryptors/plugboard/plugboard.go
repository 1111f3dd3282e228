// plugboard
package plugboard

import (
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
)

// Swap returns the partner of letter if it appears in one of pairs, otherwise
// letter unchanged.  An empty pair list is the identity.
func Swap(letter byte, pairs [][2]byte) byte {
	u := cryptors.Upper(letter)
	for _, p := range pairs {
		a, b := cryptors.Upper(p[0]), cryptors.Upper(p[1])
		switch u {
		case a:
			return b
		case b:
			return a
		}
	}
	return letter
}

// Plugboard is a validated set of disjoint letter pairs.
type Plugboard struct {
	pairs []string
	table [cryptors.AlphabetSize]int
}

// New builds a plugboard from 2 letter pairs such as "AB".  Each letter may
// appear in at most one pair.
func New(pairs []string) (*Plugboard, error) {
	var p Plugboard
	var used bitops.LetterSet

	for i := range p.table {
		p.table[i] = i
	}

	for _, pair := range pairs {
		if len(pair) != 2 {
			return nil, cryptors.NewConfigurationError("plugboard pair", pair, "must be exactly two letters")
		}
		a, okA := cryptors.Index(pair[0])
		b, okB := cryptors.Index(pair[1])
		if !okA || !okB {
			return nil, cryptors.NewConfigurationError("plugboard pair", pair, "must be exactly two letters")
		}
		if a == b {
			return nil, cryptors.NewConfigurationError("plugboard pair", pair, "a letter cannot be paired with itself")
		}
		for _, v := range [...]int{a, b} {
			if used.GetBit(uint(v)) {
				return nil, cryptors.NewConfigurationError("plugboard pair", pair,
					"letter %c is already plugged", cryptors.Letter(v))
			}
			used.SetBit(uint(v))
		}
		p.table[a], p.table[b] = b, a
		p.pairs = append(p.pairs, string([]byte{cryptors.Letter(a), cryptors.Letter(b)}))
	}

	return &p, nil
}

// ParsePairs splits a plugboard description such as "AB CD,EF" into pairs.
// The pairs are not validated.
func ParsePairs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == ';'
	})
}

// ForwardIndex swaps idx with its partner.  The plugboard is symmetric so
// BackwardIndex is the same mapping.
func (p *Plugboard) ForwardIndex(idx int) int {
	return p.table[cryptors.Mod(idx)]
}

func (p *Plugboard) BackwardIndex(idx int) int {
	return p.table[cryptors.Mod(idx)]
}

// Swap returns the partner of letter, or letter itself when it is not
// plugged.  The result is upper case for letters.
func (p *Plugboard) Swap(letter byte) byte {
	idx, ok := cryptors.Index(letter)
	if !ok {
		return letter
	}
	return cryptors.Letter(p.table[idx])
}

// Pairs returns the normalized (upper case) pairs.
func (p *Plugboard) Pairs() []string {
	return append([]string(nil), p.pairs...)
}

func (p *Plugboard) String() string {
	return strings.Join(p.pairs, " ")
}
