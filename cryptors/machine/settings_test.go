package machine

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseSetting(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"A", 0, false},
		{"z", 25, false},
		{" Q ", 16, false},
		{"0", 0, false},
		{"25", 25, false},
		{"26", 0, true},
		{"-1", 0, true},
		{"AB", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSetting(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseTriple(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"ADU", []int{0, 3, 20}, false},
		{"adu", []int{0, 3, 20}, false},
		{"A D U", []int{0, 3, 20}, false},
		{"0,4,21", []int{0, 4, 21}, false},
		{"01-04-22", []int{1, 4, 22}, false},
		{"A,4,v", []int{0, 4, 21}, false},
		{"AD", nil, true},
		{"1,2,3,4", nil, true},
		{"A,B,99", nil, true},
		{"-1,-2,-3", nil, true},
		{"0,-5,0", nil, true},
		{"-1-2-3", nil, true},
		{"01--04", nil, true},
		{"A-D-U", []int{0, 3, 20}, false},
	}
	for _, tt := range tests {
		got, err := ParseTriple(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestFormatTriple(t *testing.T) {
	if got := FormatTriple([]int{0, 3, 20}); got != "ADU" {
		t.Fatalf("expected ADU, got %s", got)
	}
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings("C", "IV, II, V", "Q E V", "01-02-03", "AB cd,EF")
	if err != nil {
		t.Fatalf("parse settings: %v", err)
	}
	want := Settings{
		Reflector: "C",
		Rotors:    []string{"IV", "II", "V"},
		Positions: []int{16, 4, 21},
		Rings:     []int{1, 2, 3},
		Plugboard: []string{"AB", "cd", "EF"},
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("expected %+v, got %+v", want, s)
	}
	if _, err := New(nil, s); err != nil {
		t.Fatalf("new machine: %v", err)
	}
}

func TestParseSettingsEmptyTriples(t *testing.T) {
	s, err := ParseSettings("", "I II III", "", "", "")
	if err != nil {
		t.Fatalf("parse settings: %v", err)
	}
	if s.Positions != nil || s.Rings != nil || len(s.Plugboard) != 0 {
		t.Fatalf("expected empty triples and plugboard, got %+v", s)
	}
}

func TestKeyIgnoresPositions(t *testing.T) {
	a := Settings{Rotors: []string{"I", "II", "III"}, Positions: []int{0, 0, 0}}
	b := Settings{Rotors: []string{"I", "II", "III"}, Positions: []int{5, 6, 7}, Rings: []int{0, 0, 0}}
	if a.Key() != b.Key() {
		t.Fatalf("keys differ: %s %s", a.Key(), b.Key())
	}
	c := Settings{Rotors: []string{"I", "II", "III"}, Rings: []int{0, 0, 1}}
	if a.Key() == c.Key() {
		t.Fatalf("ring settings must change the key")
	}
	d := Settings{Rotors: []string{"I", "II", "III"}, Plugboard: []string{"AB"}}
	if a.Key() == d.Key() {
		t.Fatalf("plugboard must change the key")
	}
}

func TestKeyIgnoresPlugboardOrder(t *testing.T) {
	rotors := []string{"I", "II", "III"}
	want := Settings{Rotors: rotors, Plugboard: []string{"AB", "CD"}}.Key()
	for _, plugs := range [][]string{{"CD", "AB"}, {"BA", "DC"}, {"dc", "ab"}} {
		if got := (Settings{Rotors: rotors, Plugboard: plugs}).Key(); got != want {
			t.Errorf("%v: expected key %s, got %s", plugs, want, got)
		}
	}
}

func TestSettingsYAML(t *testing.T) {
	const doc = `
reflector: B
rotors: [I, II, III]
positions: [0, 3, 20]
rings: [1, 1, 1]
plugboard: [AB, CD]
`
	var s Settings
	if err := yaml.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, err := New(nil, s)
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	out, err := yaml.Marshal(m.Settings())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Settings
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, m.Settings()) {
		t.Fatalf("expected %+v, got %+v", m.Settings(), back)
	}
}
