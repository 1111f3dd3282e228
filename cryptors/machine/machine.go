// Package machine assembles rotors, a reflector and a plugboard into an
// Enigma machine.
//
// A Machine is a small state machine: its whole state is the position triple
// of its three rotors.  Every letter that is processed first steps the
// rotors, then passes through plugboard, rotors (right to left), reflector,
// rotors (left to right) and plugboard again.  Because stepping does not
// depend on the letter, two machines built from the same Settings produce
// the same sequence of positions, which makes the cipher reciprocal.
//
// A Machine is not safe for concurrent use.  Use Clone to give each
// goroutine its own copy.
package machine

import (
	"fmt"
	"io"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

const (
	left = iota
	middle
	right
)

type Machine struct {
	settings  Settings
	rotors    [cryptors.NumberOfRotors]*rotor.Rotor
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
	start     [cryptors.NumberOfRotors]int
}

// New builds a machine from settings, resolving rotor and reflector ids
// against cat.  A nil cat selects catalog.Historical().  Any problem with the
// settings is reported as a *cryptors.ConfigurationError and no machine is
// returned.
func New(cat *catalog.Catalog, s Settings) (*Machine, error) {
	if cat == nil {
		cat = catalog.Historical()
	}
	s = s.clone()

	if len(s.Rotors) != cryptors.NumberOfRotors {
		return nil, cryptors.NewConfigurationError("rotors", strings.Join(s.Rotors, " "),
			"need exactly %d rotors, got %d", cryptors.NumberOfRotors, len(s.Rotors))
	}
	if len(s.Positions) == 0 {
		s.Positions = make([]int, cryptors.NumberOfRotors)
	}
	if len(s.Rings) == 0 {
		s.Rings = make([]int, cryptors.NumberOfRotors)
	}
	if len(s.Positions) != cryptors.NumberOfRotors {
		return nil, cryptors.NewConfigurationError("positions", fmt.Sprint(s.Positions),
			"need exactly %d values", cryptors.NumberOfRotors)
	}
	if len(s.Rings) != cryptors.NumberOfRotors {
		return nil, cryptors.NewConfigurationError("rings", fmt.Sprint(s.Rings),
			"need exactly %d values", cryptors.NumberOfRotors)
	}

	var m Machine
	for i, id := range s.Rotors {
		spec, err := cat.Rotor(id)
		if err != nil {
			return nil, err
		}
		if len(spec.Notch) != 1 {
			return nil, cryptors.NewConfigurationError("notch", spec.Notch, "rotor %s: must be a single letter", spec.Name)
		}
		r, err := rotor.New(spec.Wiring, spec.Notch[0], s.Rings[i], s.Positions[i])
		if err != nil {
			return nil, err
		}
		m.rotors[i] = r
		m.start[i] = s.Positions[i]
		s.Rotors[i] = spec.Name
	}

	rs, err := cat.Reflector(s.Reflector)
	if err != nil {
		return nil, err
	}
	if m.reflector, err = reflector.New(rs.Wiring); err != nil {
		return nil, err
	}
	s.Reflector = rs.Name

	if m.plugboard, err = plugboard.New(s.Plugboard); err != nil {
		return nil, err
	}
	s.Plugboard = m.plugboard.Pairs()

	m.settings = s
	return &m, nil
}

// step advances the rotors for one key press.  Both notches are read before
// anything moves.  A middle rotor on its notch steps itself along with the
// left rotor (the double step); otherwise a right rotor on its notch steps
// the middle rotor.  The right rotor always steps.
func (m *Machine) step() {
	middleAtNotch := m.rotors[middle].AtNotch()
	rightAtNotch := m.rotors[right].AtNotch()

	if middleAtNotch {
		m.rotors[left].Step()
		m.rotors[middle].Step()
	} else if rightAtNotch {
		m.rotors[middle].Step()
	}
	m.rotors[right].Step()
}

// encryptIndex steps the machine and passes idx through the whole path.
func (m *Machine) encryptIndex(idx int) int {
	m.step()
	c := cryptors.Encrypt(m.plugboard, idx)
	for i := right; i >= left; i-- {
		c = cryptors.Encrypt(m.rotors[i], c)
	}
	c = cryptors.Encrypt(m.reflector, c)
	for i := left; i <= right; i++ {
		c = cryptors.Decrypt(m.rotors[i], c)
	}
	return cryptors.Decrypt(m.plugboard, c)
}

// EncryptChar encrypts a single letter, returning it in upper case.  Any
// byte that is not a letter is returned unchanged and the rotors do not
// move.
func (m *Machine) EncryptChar(letter byte) byte {
	idx, ok := cryptors.Index(letter)
	if !ok {
		return letter
	}
	return cryptors.Letter(m.encryptIndex(idx))
}

// Transform sets dst to the encryption of src.  Letters are encrypted and
// upper cased; all other bytes are copied unchanged.  dst and src may be the
// same slice.  Transform panics if dst is shorter than src.
func (m *Machine) Transform(dst, src []byte) {
	if len(dst) < len(src) {
		panic("enigma: output smaller than input")
	}
	for i, b := range src {
		dst[i] = m.EncryptChar(b)
	}
}

// Process encrypts text.  Since encryption is reciprocal, Process also
// decrypts text produced by a machine built from the same settings.
func (m *Machine) Process(text string) string {
	if text == "" {
		return ""
	}
	buf := []byte(text)
	m.Transform(buf, buf)
	return string(buf)
}

type reader struct {
	m *Machine
	r io.Reader
}

func (rd *reader) Read(p []byte) (int, error) {
	n, err := rd.r.Read(p)
	rd.m.Transform(p[:n], p[:n])
	return n, err
}

// NewReader returns a reader that encrypts everything read from r.
func (m *Machine) NewReader(r io.Reader) io.Reader {
	return &reader{m: m, r: r}
}

// Positions returns the current position triple (left, middle, right).
func (m *Machine) Positions() [cryptors.NumberOfRotors]int {
	var p [cryptors.NumberOfRotors]int
	for i, r := range m.rotors {
		p[i] = r.Position()
	}
	return p
}

// SetPositions moves the rotors to p.  On error the positions are not
// changed.
func (m *Machine) SetPositions(p [cryptors.NumberOfRotors]int) error {
	for _, v := range p {
		if v < 0 || v >= cryptors.AlphabetSize {
			return cryptors.NewConfigurationError("positions", fmt.Sprint(p),
				"must be between 0 and %d", cryptors.AlphabetSize-1)
		}
	}
	for i, r := range m.rotors {
		if err := r.SetPosition(p[i]); err != nil {
			return err
		}
	}
	return nil
}

// Reset returns the rotors to the starting positions the machine was built
// with.
func (m *Machine) Reset() {
	for i, r := range m.rotors {
		_ = r.SetPosition(m.start[i])
	}
}

// Clone returns an independent machine in the same state.
func (m *Machine) Clone() *Machine {
	c := *m
	c.settings = m.settings.clone()
	for i, r := range m.rotors {
		c.rotors[i] = r.Clone()
	}
	return &c
}

// Settings returns the normalized settings the machine was built from.
// Rotor and reflector ids are replaced by their catalog names.
func (m *Machine) Settings() Settings {
	return m.settings.clone()
}

func (m *Machine) String() string {
	p := m.Positions()
	return fmt.Sprintf("%s %s rings %s plugboard [%s] at %s",
		m.settings.Reflector,
		strings.Join(m.settings.Rotors, "-"),
		FormatTriple(m.settings.Rings),
		m.plugboard,
		FormatTriple(p[:]))
}
