package moose

import "fmt"

// TransparentName is the reserved swatch name for an unpainted cell.
const TransparentName = "transparent"

// maxSwatches keeps every index representable by Color.
const maxSwatches = 256

// maxIRC is the highest real mIRC colour; 99 means the client default.
const maxIRC = 98

// Color is the palette index of a swatch. Values are only meaningful
// together with the Palette they were obtained from.
type Color uint8

// Swatch is one palette entry.
//
// Hex is used when painting onto an image and for terminal output. IRC is
// the mIRC colour code (0-15) used by the chat renderer; it is ignored for
// the transparent swatch.
type Swatch struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
	IRC  int    `json:"irc" yaml:"irc"`
}

// Palette is an ordered, immutable set of swatches.
type Palette struct {
	swatches    []Swatch
	index       map[string]Color
	transparent Color
}

// NewPalette builds a palette from swatches in the given order.
//
// Names must be non-empty and unique, exactly one must be "transparent",
// and at most 256 swatches are allowed. Every other swatch needs an IRC
// code in 0..98.
func NewPalette(swatches []Swatch) (*Palette, error) {
	if len(swatches) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	if len(swatches) > maxSwatches {
		return nil, fmt.Errorf("palette has %d swatches, at most %d allowed", len(swatches), maxSwatches)
	}

	p := &Palette{
		swatches: make([]Swatch, len(swatches)),
		index:    make(map[string]Color, len(swatches)),
	}
	copy(p.swatches, swatches)

	hasTransparent := false
	for i, s := range p.swatches {
		if s.Name == "" {
			return nil, fmt.Errorf("palette entry %d has no name", i)
		}
		if _, dup := p.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate palette colour %q", s.Name)
		}
		p.index[s.Name] = Color(i)
		if s.Name == TransparentName {
			hasTransparent = true
			p.transparent = Color(i)
			continue
		}
		if s.IRC < 0 || s.IRC > maxIRC {
			return nil, fmt.Errorf("palette colour %q has IRC code %d, want 0..%d", s.Name, s.IRC, maxIRC)
		}
	}
	if !hasTransparent {
		return nil, fmt.Errorf("palette has no %q entry", TransparentName)
	}
	return p, nil
}

// IndexOf returns the colour with the given name.
func (p *Palette) IndexOf(name string) (Color, bool) {
	c, ok := p.index[name]
	return c, ok
}

// ColorAt returns the swatch at index i.
func (p *Palette) ColorAt(i int) (Swatch, bool) {
	if i < 0 || i >= len(p.swatches) {
		return Swatch{}, false
	}
	return p.swatches[i], true
}

// Contains reports whether c is an index of this palette.
func (p *Palette) Contains(c Color) bool {
	return int(c) < len(p.swatches)
}

// Name returns the name of c, or "" if c is not in the palette.
func (p *Palette) Name(c Color) string {
	if !p.Contains(c) {
		return ""
	}
	return p.swatches[c].Name
}

// Swatch returns the swatch for c.
func (p *Palette) Swatch(c Color) (Swatch, bool) {
	return p.ColorAt(int(c))
}

// Transparent returns the index of the transparent swatch.
func (p *Palette) Transparent() Color {
	return p.transparent
}

// Len returns the number of swatches.
func (p *Palette) Len() int {
	return len(p.swatches)
}

// Swatches returns a copy of the palette entries in order.
func (p *Palette) Swatches() []Swatch {
	out := make([]Swatch, len(p.swatches))
	copy(out, p.swatches)
	return out
}

// Names returns the swatch names in palette order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.swatches))
	for i, s := range p.swatches {
		names[i] = s.Name
	}
	return names
}
