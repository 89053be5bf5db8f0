package moose

import (
	"strings"
	"testing"
)

// testPalette returns the palette [transparent, red, blue].
func testPalette(t *testing.T) *Palette {
	t.Helper()
	p, err := NewPalette([]Swatch{
		{Name: "transparent"},
		{Name: "red", Hex: "#FF0000", IRC: 4},
		{Name: "blue", Hex: "#0000FF", IRC: 12},
	})
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	return p
}

// testDef returns a Def of the given size over testPalette.
func testDef(t *testing.T, height, width int) *Def {
	t.Helper()
	d, err := NewDef(height, width, testPalette(t))
	if err != nil {
		t.Fatalf("NewDef failed: %v", err)
	}
	return d
}

// mustColor looks up a colour name in p.
func mustColor(t *testing.T, p *Palette, name string) Color {
	t.Helper()
	c, ok := p.IndexOf(name)
	if !ok {
		t.Fatalf("colour %q not in palette", name)
	}
	return c
}

func TestNewPalette(t *testing.T) {
	p := testPalette(t)

	if p.Len() != 3 {
		t.Errorf("Len: got %d, want 3", p.Len())
	}
	if p.Transparent() != 0 {
		t.Errorf("Transparent: got %d, want 0", p.Transparent())
	}

	c, ok := p.IndexOf("blue")
	if !ok || c != 2 {
		t.Errorf("IndexOf(blue): got (%d,%v), want (2,true)", c, ok)
	}
	if _, ok := p.IndexOf("green"); ok {
		t.Error("IndexOf(green) should not be found")
	}

	s, ok := p.ColorAt(1)
	if !ok || s.Name != "red" || s.IRC != 4 {
		t.Errorf("ColorAt(1): got (%+v,%v), want red", s, ok)
	}
	if _, ok := p.ColorAt(3); ok {
		t.Error("ColorAt(3) should be out of range")
	}
	if _, ok := p.ColorAt(-1); ok {
		t.Error("ColorAt(-1) should be out of range")
	}

	if got := strings.Join(p.Names(), ","); got != "transparent,red,blue" {
		t.Errorf("Names: got %s", got)
	}
	if p.Name(Color(7)) != "" {
		t.Error("Name of unknown colour should be empty")
	}
}

func TestNewPalette_TransparentNotFirst(t *testing.T) {
	p, err := NewPalette([]Swatch{{Name: "red"}, {Name: "transparent"}})
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	if p.Transparent() != 1 {
		t.Errorf("Transparent: got %d, want 1", p.Transparent())
	}
}

func TestNewPalette_Invalid(t *testing.T) {
	tooMany := make([]Swatch, 257)
	for i := range tooMany {
		tooMany[i] = Swatch{Name: strings.Repeat("x", i+1)}
	}
	tooMany[0].Name = "transparent"

	tests := []struct {
		name     string
		swatches []Swatch
	}{
		{"empty", nil},
		{"no transparent", []Swatch{{Name: "red"}}},
		{"duplicate", []Swatch{{Name: "transparent"}, {Name: "red"}, {Name: "red"}}},
		{"unnamed", []Swatch{{Name: "transparent"}, {Name: ""}}},
		{"too many", tooMany},
		{"negative irc", []Swatch{{Name: "transparent"}, {Name: "red", IRC: -1}}},
		{"three digit irc", []Swatch{{Name: "transparent"}, {Name: "red", IRC: 100}}},
		{"irc 99", []Swatch{{Name: "transparent"}, {Name: "red", IRC: 99}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPalette(tt.swatches); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNewPalette_IRCRange(t *testing.T) {
	p, err := NewPalette([]Swatch{{Name: "transparent", IRC: -1}, {Name: "white", IRC: 0}, {Name: "last", IRC: 98}})
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len: got %d, want 3", p.Len())
	}
}

func TestPalette_SwatchesIsCopy(t *testing.T) {
	p := testPalette(t)
	s := p.Swatches()
	s[1].Name = "green"

	if p.Name(1) != "red" {
		t.Errorf("palette mutated through Swatches: got %s", p.Name(1))
	}
}

func TestNewDef_Invalid(t *testing.T) {
	p := testPalette(t)

	if _, err := NewDef(0, 3, p); err == nil {
		t.Error("zero height should fail")
	}
	if _, err := NewDef(3, -1, p); err == nil {
		t.Error("negative width should fail")
	}
	if _, err := NewDef(3, 3, nil); err == nil {
		t.Error("nil palette should fail")
	}
}
