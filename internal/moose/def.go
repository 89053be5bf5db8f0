package moose

import "fmt"

// Def is the geometry and palette every moose of a deployment shares.
//
// A Def is passed explicitly to the operations that need it, so several
// sizes or palettes can coexist in one process (tests do this a lot).
type Def struct {
	Height  int
	Width   int
	Palette *Palette
}

// NewDef validates and returns a Def.
func NewDef(height, width int, palette *Palette) (*Def, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid moose size %dx%d: both dimensions must be positive", width, height)
	}
	if palette == nil {
		return nil, fmt.Errorf("moose definition needs a palette")
	}
	return &Def{Height: height, Width: width, Palette: palette}, nil
}

// Cells returns Height*Width, the length of an encoded artifact.
func (d *Def) Cells() int {
	return d.Height * d.Width
}

// NewGrid returns an all-transparent grid of the Def's size.
func (d *Def) NewGrid() *Grid {
	return NewGrid(d.Palette, d.Height, d.Width)
}
