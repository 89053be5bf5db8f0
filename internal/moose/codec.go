package moose

// Artifact is the storage form of a grid: Height*Width palette indices in
// row-major order. It marshals to JSON as an array of integers.
type Artifact []int

// Encode flattens g row-major into palette indices.
//
// g must have d's geometry. A cell whose index is outside d's palette, which
// can only happen if the grid was built against another palette, is an
// InvalidColorError.
func (d *Def) Encode(g *Grid) (Artifact, error) {
	if g.height != d.Height || g.width != d.Width {
		return nil, newError(DimensionError, "moose is %dx%d, want %dx%d", g.width, g.height, d.Width, d.Height)
	}

	a := make(Artifact, len(g.cells))
	for i, c := range g.cells {
		if !d.Palette.Contains(c) {
			return nil, newError(InvalidColorError, "cell %d has colour index %d outside palette of %d", i, c, d.Palette.Len())
		}
		a[i] = int(c)
	}
	return a, nil
}

// Decode rebuilds a grid from an artifact, chunking rows at multiples of
// Width.
//
// Decode cannot tell whether a was encoded with the same palette order;
// a re-ordered palette decodes to wrong colours without error.
func (d *Def) Decode(a Artifact) (*Grid, error) {
	if len(a) != d.Cells() {
		return nil, newError(DimensionError, "artifact has %d cells, want %d", len(a), d.Cells())
	}

	g := NewGrid(d.Palette, d.Height, d.Width)
	for i, v := range a {
		if v < 0 || v >= d.Palette.Len() {
			return nil, newError(DecodeRangeError, "cell %d has index %d, palette has %d colours", i, v, d.Palette.Len())
		}
		g.cells[i] = Color(v)
	}
	return g, nil
}
