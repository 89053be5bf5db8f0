package moose

import (
	"encoding/json"
	"image"
)

// Grid is a Height x Width raster of palette colours, stored row-major.
//
// The zero value is not usable; create grids with Def.NewGrid, NewGrid,
// Def.Validate or Def.Decode.
type Grid struct {
	palette *Palette
	height  int
	width   int
	cells   []Color
}

// NewGrid returns an all-transparent grid. Non-positive sizes yield an
// empty 0x0 grid.
func NewGrid(p *Palette, height, width int) *Grid {
	if height <= 0 || width <= 0 {
		height, width = 0, 0
	}
	g := &Grid{
		palette: p,
		height:  height,
		width:   width,
		cells:   make([]Color, height*width),
	}
	g.Clear()
	return g
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Palette returns the palette the grid's colours index into.
func (g *Grid) Palette() *Palette { return g.palette }

// Bounds returns the grid rectangle in cell coordinates.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the colour at (x, y). It panics if (x, y) is out of bounds.
func (g *Grid) At(x, y int) Color {
	if !g.InBounds(x, y) {
		panic("moose: cell out of bounds")
	}
	return g.cells[y*g.width+x]
}

// Set paints a single cell, the editor's pencil tool.
func (g *Grid) Set(x, y int, c Color) error {
	if !g.InBounds(x, y) {
		return newError(DimensionError, "cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
	if !g.palette.Contains(c) {
		return newError(InvalidColorError, "colour index %d not in palette", c)
	}
	g.cells[y*g.width+x] = c
	return nil
}

// Clear resets every cell to transparent.
func (g *Grid) Clear() {
	t := g.palette.Transparent()
	for i := range g.cells {
		g.cells[i] = t
	}
}

// IsTransparent reports whether (x, y) is unpainted.
func (g *Grid) IsTransparent(x, y int) bool {
	return g.At(x, y) == g.palette.Transparent()
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		palette: g.palette,
		height:  g.height,
		width:   g.width,
		cells:   make([]Color, len(g.cells)),
	}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and the same colour
// names in every cell. A nil grid equals only another nil grid.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.height != o.height || g.width != o.width {
		return false
	}
	for i := range g.cells {
		if g.palette.Name(g.cells[i]) != o.palette.Name(o.cells[i]) {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid as rows of colours.
func (g *Grid) Rows() [][]Color {
	rows := make([][]Color, g.height)
	for y := range rows {
		rows[y] = make([]Color, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Names returns the grid as rows of colour names, the shape the editor and
// the JSON API exchange.
func (g *Grid) Names() [][]string {
	rows := make([][]string, g.height)
	for y := range rows {
		rows[y] = make([]string, g.width)
		for x := range rows[y] {
			rows[y][x] = g.palette.Name(g.cells[y*g.width+x])
		}
	}
	return rows
}

// MarshalJSON encodes the grid as nested arrays of colour names.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Names())
}
