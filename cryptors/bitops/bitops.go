// bitops project bitops.go
package bitops

import "math/bits"

// LetterSet is a set of alphabet indices, one bit per letter.
type LetterSet uint32

func (s *LetterSet) SetBit(bit uint) *LetterSet {
	*s |= 1 << (bit & 31)
	return s
}

func (s *LetterSet) ClrBit(bit uint) *LetterSet {
	*s &= ^(1 << (bit & 31))
	return s
}

func (s LetterSet) GetBit(bit uint) bool {
	return s&(1<<(bit&31)) != 0
}

// Count returns the number of members of the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(uint32(s))
}
