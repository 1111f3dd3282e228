// cryptor
package cryptors

import (
	"fmt"
)

const (
	AlphabetSize = 26
	Alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// NumberOfRotors is the number of stepping wheels in a machine.
	NumberOfRotors = 3
	// MaximalStates is the number of distinct rotor position triples.
	MaximalStates = AlphabetSize * AlphabetSize * AlphabetSize
)

// ConfigurationError is returned when a rotor, reflector, plugboard or
// machine is constructed from invalid settings.  Field names the setting
// that was rejected and Value holds its textual form.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("enigma: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NewConfigurationError is a convenience for building a ConfigurationError.
func NewConfigurationError(field, value, reason string, args ...interface{}) *ConfigurationError {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// Crypter is a substitution stage working on alphabet indices.  Forward is
// applied on the way into the reflector and Backward on the way out.
type Crypter interface {
	ForwardIndex(int) int
	BackwardIndex(int) int
}

// Mod returns n modulo AlphabetSize normalized into [0, AlphabetSize).
func Mod(n int) int {
	n %= AlphabetSize
	if n < 0 {
		n += AlphabetSize
	}
	return n
}

// IsLetter reports whether b is an ASCII letter of either case.
func IsLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Upper folds an ASCII lower case letter to upper case.  Any other byte is
// returned unchanged.
func Upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// Index returns the alphabet index of letter.  The second result is false if
// letter is not an ASCII letter.
func Index(letter byte) (int, bool) {
	if !IsLetter(letter) {
		return 0, false
	}
	return int(Upper(letter) - 'A'), true
}

// Letter returns the upper case letter for the alphabet index i.  i is
// reduced modulo AlphabetSize first.
func Letter(i int) byte {
	return Alphabet[Mod(i)]
}

// Encrypt passes idx forward through the crypter.
func Encrypt(c Crypter, idx int) int {
	return c.ForwardIndex(idx)
}

// Decrypt passes idx backward through the crypter.
func Decrypt(c Crypter, idx int) int {
	return c.BackwardIndex(idx)
}
