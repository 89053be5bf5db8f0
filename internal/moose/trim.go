package moose

import "image"

// ContentBounds returns the smallest rectangle, in cell coordinates, that
// contains every non-transparent cell of g. Max is exclusive.
func ContentBounds(g *Grid) (image.Rectangle, error) {
	t := g.palette.Transparent()
	minX, minY := g.width, g.height
	maxX, maxY := -1, -1

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] == t {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	if maxY < 0 {
		return image.Rectangle{}, newError(EmptyGridError, "moose has no painted cells")
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), nil
}

// Trim crops g to ContentBounds. The input is not modified.
func Trim(g *Grid) (*Grid, error) {
	r, err := ContentBounds(g)
	if err != nil {
		return nil, err
	}

	out := NewGrid(g.palette, r.Dy(), r.Dx())
	for y := 0; y < r.Dy(); y++ {
		src := (r.Min.Y+y)*g.width + r.Min.X
		copy(out.cells[y*out.width:(y+1)*out.width], g.cells[src:src+r.Dx()])
	}
	return out, nil
}

// TrimRagged is the chat bot's historical crop. Rows and the left edge
// follow ContentBounds, but every kept row ends after its own last painted
// cell instead of at a shared right edge, so rows can differ in length.
// A kept row with no painted cells keeps its full width from the left edge.
func TrimRagged(g *Grid) ([][]Color, error) {
	r, err := ContentBounds(g)
	if err != nil {
		return nil, err
	}

	t := g.palette.Transparent()
	rows := make([][]Color, 0, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		end := len(row)
		for x := len(row) - 1; x >= 0; x-- {
			if row[x] != t {
				end = x + 1
				break
			}
		}
		out := make([]Color, end-r.Min.X)
		copy(out, row[r.Min.X:end])
		rows = append(rows, out)
	}
	return rows, nil
}
