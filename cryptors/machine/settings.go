package machine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
)

// Settings is the complete configuration of a machine: which reflector and
// rotors are fitted (left to right), their starting positions and ring
// settings, and the plugboard pairs.  Empty Positions or Rings mean all
// zero.
type Settings struct {
	Reflector string   `yaml:"reflector,omitempty"`
	Rotors    []string `yaml:"rotors"`
	Positions []int    `yaml:"positions,omitempty"`
	Rings     []int    `yaml:"rings,omitempty"`
	Plugboard []string `yaml:"plugboard,omitempty"`
}

// ParseSetting converts a single position or ring value to an alphabet index.
// It accepts a letter ("A" - "Z", either case) or a number from 0 to 25.
func ParseSetting(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && cryptors.IsLetter(s[0]) {
		idx, _ := cryptors.Index(s[0])
		return idx, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, cryptors.NewConfigurationError("setting", s, "must be a letter or a number from 0 to %d", cryptors.AlphabetSize-1)
	}
	if n < 0 || n >= cryptors.AlphabetSize {
		return 0, cryptors.NewConfigurationError("setting", s, "must be between 0 and %d", cryptors.AlphabetSize-1)
	}
	return n, nil
}

// ParseTriple converts a position or ring description to three indices.
// Accepted forms are three letters ("ADU"), or three letters or numbers
// separated by spaces, commas or dashes ("A D U", "0,4,21", "01-04-22").
// A dash only separates values, so negative numbers are rejected.
func ParseTriple(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 1 {
		switch {
		case strings.Contains(s, "-"):
			fields = strings.Split(s, "-")
		case len(s) == cryptors.NumberOfRotors:
			fields = []string{s[0:1], s[1:2], s[2:3]}
		}
	}
	if len(fields) != cryptors.NumberOfRotors {
		return nil, cryptors.NewConfigurationError("settings", s, "need exactly %d values", cryptors.NumberOfRotors)
	}
	res := make([]int, 0, cryptors.NumberOfRotors)
	for _, f := range fields {
		v, err := ParseSetting(f)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// FormatTriple returns the letters for a position triple, e.g. "ADU".
func FormatTriple(p []int) string {
	var b strings.Builder
	for _, v := range p {
		b.WriteByte(cryptors.Letter(v))
	}
	return b.String()
}

// ParseSettings builds Settings from the textual form used on the command
// line and in configuration files.  rotors is a list of rotor ids separated
// by spaces, commas or dashes.
func ParseSettings(reflector, rotors, positions, rings, plugs string) (Settings, error) {
	var s Settings
	var err error
	s.Reflector = strings.TrimSpace(reflector)
	s.Rotors = strings.FieldsFunc(rotors, func(r rune) bool {
		return r == ' ' || r == ',' || r == '-' || r == '\t'
	})
	if strings.TrimSpace(positions) != "" {
		if s.Positions, err = ParseTriple(positions); err != nil {
			return Settings{}, err
		}
	}
	if strings.TrimSpace(rings) != "" {
		if s.Rings, err = ParseTriple(rings); err != nil {
			return Settings{}, err
		}
	}
	s.Plugboard = plugboard.ParsePairs(plugs)
	return s, nil
}

// Key identifies the settings apart from the starting positions.  Two
// settings with the same key differ only in where the rotors start, so a
// session can be resumed from the final positions of a previous one.
func (s Settings) Key() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%v|%s",
		strings.ToUpper(s.Reflector),
		strings.ToUpper(strings.Join(s.Rotors, ",")),
		orZero(s.Rings),
		strings.Join(sortedPairs(s.Plugboard), ","))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

// sortedPairs returns the plugboard pairs in a canonical form: upper case,
// the lower letter first, and the pairs in alphabetical order.
func sortedPairs(pairs []string) []string {
	res := make([]string, 0, len(pairs))
	for _, p := range pairs {
		b := []byte(strings.ToUpper(p))
		sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
		res = append(res, string(b))
	}
	sort.Strings(res)
	return res
}

// orZero returns v, or three zeros if v is empty.
func orZero(v []int) []int {
	if len(v) == 0 {
		return make([]int, cryptors.NumberOfRotors)
	}
	return v
}

// clone returns a deep copy so a Machine never shares slices with its
// caller.
func (s Settings) clone() Settings {
	c := s
	c.Rotors = append([]string(nil), s.Rotors...)
	c.Positions = append([]int(nil), s.Positions...)
	c.Rings = append([]int(nil), s.Rings...)
	c.Plugboard = append([]string(nil), s.Plugboard...)
	return c
}
