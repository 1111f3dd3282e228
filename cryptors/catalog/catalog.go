// Package catalog holds the rotor and reflector wirings a machine is built
// from.  A catalog is plain data: it is either the built in historical set
// returned by Historical or read from a YAML or TOML file by Load.
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
	"github.com/bgallie/enigma/cryptors/reflector"
)

// DefaultReflector is used when a machine does not name a reflector.
const DefaultReflector = "B"

// nameSeparators split rotor lists on the command line and in message
// headers, so no name may contain them.
const nameSeparators = " ,-\t"

// RotorSpec is the wiring and notch letter of one rotor.
type RotorSpec struct {
	Name   string `yaml:"name" toml:"name"`
	Wiring string `yaml:"wiring" toml:"wiring"`
	Notch  string `yaml:"notch" toml:"notch"`
}

// ReflectorSpec is the wiring of one reflector.
type ReflectorSpec struct {
	Name   string `yaml:"name" toml:"name"`
	Wiring string `yaml:"wiring" toml:"wiring"`
}

// Catalog is an ordered set of rotors and reflectors.  Rotors may be looked
// up by name or by their zero based position in the list.
type Catalog struct {
	Rotors     []RotorSpec     `yaml:"rotors" toml:"rotors"`
	Reflectors []ReflectorSpec `yaml:"reflectors" toml:"reflectors"`
}

// Historical returns the Enigma I rotors I - V and the wide reflectors B and
// C.  Each call returns a new catalog.
func Historical() *Catalog {
	return &Catalog{
		Rotors: []RotorSpec{
			{Name: "I", Wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", Notch: "Q"},
			{Name: "II", Wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", Notch: "E"},
			{Name: "III", Wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", Notch: "V"},
			{Name: "IV", Wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", Notch: "J"},
			{Name: "V", Wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", Notch: "Z"},
		},
		Reflectors: []ReflectorSpec{
			{Name: "B", Wiring: "YRUHQSLDPXNGOKMIEBFZCWVJAT"},
			{Name: "C", Wiring: "FVPJIAOYEDRZXWGCTKUQSBNMHL"},
		},
	}
}

// Load reads a catalog file.  The format is chosen by the file extension:
// .yaml, .yml or .toml.  The catalog is validated before it is returned.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog in the given format ("yaml", "yml" or "toml").
func Parse(data []byte, format string) (*Catalog, error) {
	var cat Catalog
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cat); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case "toml":
		meta, err := toml.Decode(string(data), &cat)
		if err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks every wiring in the catalog.  Rotor wirings must be
// permutations with a single letter notch and reflector wirings must be
// involutions.  Names must be unique within their list and must not contain
// list separators.
func (c *Catalog) Validate() error {
	if len(c.Rotors) == 0 {
		return cryptors.NewConfigurationError("catalog", "", "no rotors defined")
	}
	if len(c.Reflectors) == 0 {
		return cryptors.NewConfigurationError("catalog", "", "no reflectors defined")
	}

	names := make(map[string]bool)
	for _, r := range c.Rotors {
		key := strings.ToUpper(strings.TrimSpace(r.Name))
		if key == "" {
			return cryptors.NewConfigurationError("rotor name", r.Name, "must not be empty")
		}
		if strings.ContainsAny(key, nameSeparators) {
			return cryptors.NewConfigurationError("rotor name", r.Name, "must not contain spaces, commas or dashes")
		}
		if names[key] {
			return cryptors.NewConfigurationError("rotor name", r.Name, "defined more than once")
		}
		names[key] = true
		if _, err := permutator.New(r.Wiring); err != nil {
			return fmt.Errorf("rotor %s: %w", r.Name, err)
		}
		if len(r.Notch) != 1 || !cryptors.IsLetter(r.Notch[0]) {
			return cryptors.NewConfigurationError("notch", r.Notch, "rotor %s: must be a single letter", r.Name)
		}
	}

	names = make(map[string]bool)
	for _, r := range c.Reflectors {
		key := strings.ToUpper(strings.TrimSpace(r.Name))
		if key == "" {
			return cryptors.NewConfigurationError("reflector name", r.Name, "must not be empty")
		}
		if strings.ContainsAny(key, nameSeparators) {
			return cryptors.NewConfigurationError("reflector name", r.Name, "must not contain spaces, commas or dashes")
		}
		if names[key] {
			return cryptors.NewConfigurationError("reflector name", r.Name, "defined more than once")
		}
		names[key] = true
		if _, err := reflector.New(r.Wiring); err != nil {
			return fmt.Errorf("reflector %s: %w", r.Name, err)
		}
	}
	return nil
}

// Rotor resolves id to a rotor.  id is either a rotor name (case is ignored)
// or the zero based index of the rotor in the catalog.
func (c *Catalog) Rotor(id string) (RotorSpec, error) {
	id = strings.TrimSpace(id)
	for _, r := range c.Rotors {
		if strings.EqualFold(r.Name, id) {
			return r, nil
		}
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 0 && n < len(c.Rotors) {
		return c.Rotors[n], nil
	}
	return RotorSpec{}, cryptors.NewConfigurationError("rotor", id, "not in catalog")
}

// Reflector resolves id to a reflector in the same way as Rotor.  An empty
// id selects DefaultReflector if present, otherwise the first reflector.
func (c *Catalog) Reflector(id string) (ReflectorSpec, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		if r, err := c.Reflector(DefaultReflector); err == nil {
			return r, nil
		}
		if len(c.Reflectors) > 0 {
			return c.Reflectors[0], nil
		}
	}
	for _, r := range c.Reflectors {
		if strings.EqualFold(r.Name, id) {
			return r, nil
		}
	}
	if n, err := strconv.Atoi(id); err == nil && n >= 0 && n < len(c.Reflectors) {
		return c.Reflectors[n], nil
	}
	return ReflectorSpec{}, cryptors.NewConfigurationError("reflector", id, "not in catalog")
}
