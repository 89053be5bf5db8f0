package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/captmoose/internal/moose"
)

// LoadImage opens a PNG, JPEG or GIF file, applying EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}

// DecodeImage reads a PNG, JPEG or GIF image from r.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// SaveImage writes img to path, choosing the format from the extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Quantize turns an arbitrary picture into a moose of def's size.
//
// The picture is scaled to exactly Width x Height pixels with nearest
// neighbour sampling, so pixel art drawn at a whole multiple of the moose
// size survives unchanged. Every pixel then maps to its nearest swatch
// (see Swatches.Nearest).
func Quantize(def *moose.Def, img image.Image) (*moose.Grid, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image is empty")
	}

	swatches, err := NewSwatches(def.Palette)
	if err != nil {
		return nil, err
	}

	small := img
	if b.Dx() != def.Width || b.Dy() != def.Height {
		small = imaging.Resize(img, def.Width, def.Height, imaging.NearestNeighbor)
	}
	sb := small.Bounds()

	g := def.NewGrid()
	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			if err := g.Set(x, y, swatches.Nearest(small.At(sb.Min.X+x, sb.Min.Y+y))); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
