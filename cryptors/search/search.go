// Package search recovers the starting rotor positions of a message from a
// known fragment of its plaintext (a crib).
package search

import (
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/machine"
)

// Match is a starting position triple whose decryption of the ciphertext
// begins with the crib.
type Match struct {
	Positions [cryptors.NumberOfRotors]int
	Plaintext string
}

// Positions tries every starting position of m against ciphertext and
// returns those whose output begins with crib, in position order.  Only the
// letters of crib and of the leading part of ciphertext are compared.  m is
// not modified; each worker runs its own clone.  workers <= 0 uses
// runtime.NumCPU().
func Positions(m *machine.Machine, ciphertext, crib string, workers int) []Match {
	want := letters(crib)
	if len(want) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	states := make(chan int)
	found := make(chan Match)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(em *machine.Machine) {
			defer wg.Done()
			for state := range states {
				p := triple(state)
				if err := em.SetPositions(p); err != nil {
					continue
				}
				if matches(em, ciphertext, want) {
					_ = em.SetPositions(p)
					found <- Match{Positions: p, Plaintext: em.Process(ciphertext)}
				}
			}
		}(m.Clone())
	}

	go func() {
		for state := 0; state < cryptors.MaximalStates; state++ {
			states <- state
		}
		close(states)
	}()

	go func() {
		wg.Wait()
		close(found)
	}()

	var res []Match
	for match := range found {
		res = append(res, match)
	}
	sort.Slice(res, func(i, j int) bool {
		return state(res[i].Positions) < state(res[j].Positions)
	})
	return res
}

// matches feeds ciphertext to em until len(want) letters have been produced
// and compares them with want.
func matches(em *machine.Machine, ciphertext, want string) bool {
	n := 0
	for i := 0; i < len(ciphertext) && n < len(want); i++ {
		b := ciphertext[i]
		if !cryptors.IsLetter(b) {
			continue
		}
		if em.EncryptChar(b) != want[n] {
			return false
		}
		n++
	}
	return n == len(want)
}

// letters returns the upper cased letters of s.
func letters(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if cryptors.IsLetter(s[i]) {
			b.WriteByte(cryptors.Upper(s[i]))
		}
	}
	return b.String()
}

func triple(state int) [cryptors.NumberOfRotors]int {
	return [cryptors.NumberOfRotors]int{
		state / (cryptors.AlphabetSize * cryptors.AlphabetSize),
		(state / cryptors.AlphabetSize) % cryptors.AlphabetSize,
		state % cryptors.AlphabetSize,
	}
}

func state(p [cryptors.NumberOfRotors]int) int {
	return (p[0]*cryptors.AlphabetSize+p[1])*cryptors.AlphabetSize + p[2]
}
