package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/captmoose/internal/moose"
)

// CropToContent crops a canvas painted from g down to the cells that
// moose.ContentBounds reports, keeping whole cells.
func CropToContent(canvas image.Image, g *moose.Grid, cw, ch int) (*image.NRGBA, error) {
	cells, err := moose.ContentBounds(g)
	if err != nil {
		return nil, err
	}

	r := image.Rect(cells.Min.X*cw, cells.Min.Y*ch, cells.Max.X*cw, cells.Max.Y*ch)
	bounds := canvas.Bounds()
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside canvas bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(canvas, r), nil
}
