package moose

import "image"

// FloodFill repaints the 4-connected region of same-coloured cells that
// contains (x, y) with c, the editor's bucket tool.
//
// It returns the repainted cells in visit order. Filling with the colour
// the region already has is a no-op and returns no cells.
//
// The fill uses an explicit stack, so its memory is bounded by the grid
// size rather than by call depth.
func FloodFill(g *Grid, x, y int, c Color) ([]image.Point, error) {
	if !g.InBounds(x, y) {
		return nil, newError(DimensionError, "fill start (%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
	if !g.palette.Contains(c) {
		return nil, newError(InvalidColorError, "colour index %d not in palette", c)
	}

	target := g.At(x, y)
	if target == c {
		return nil, nil
	}

	var touched []image.Point
	stack := []image.Point{{X: x, Y: y}}
	g.cells[y*g.width+x] = c

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		touched = append(touched, p)

		neighbours := [4]image.Point{
			{X: p.X, Y: p.Y + 1},
			{X: p.X, Y: p.Y - 1},
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
		}
		for _, n := range neighbours {
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			i := n.Y*g.width + n.X
			if g.cells[i] != target {
				continue
			}
			// painted on push so a cell is never queued twice
			g.cells[i] = c
			stack = append(stack, n)
		}
	}
	return touched, nil
}
