package moose

// Validate checks an untrusted grid of colour names against d and returns
// the validated Grid.
//
// Rules are checked in order and the first failure wins:
//  1. exactly Height rows, else DimensionError
//  2. every row exactly Width columns, else DimensionError
//  3. every cell a palette colour name, else InvalidColorError naming it
//
// Every row is checked, not only the first one.
func (d *Def) Validate(raw [][]string) (*Grid, error) {
	if len(raw) != d.Height {
		return nil, newError(DimensionError, "moose has %d rows, want %d", len(raw), d.Height)
	}
	for y, row := range raw {
		if len(row) != d.Width {
			return nil, newError(DimensionError, "row %d has %d columns, want %d", y, len(row), d.Width)
		}
	}

	g := NewGrid(d.Palette, d.Height, d.Width)
	for y, row := range raw {
		for x, name := range row {
			c, ok := d.Palette.IndexOf(name)
			if !ok {
				return nil, newError(InvalidColorError, "unknown colour %q at (%d,%d)", name, x, y)
			}
			g.cells[y*d.Width+x] = c
		}
	}
	return g, nil
}
