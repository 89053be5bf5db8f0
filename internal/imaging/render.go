package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/transform"

	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/moose"
)

// MaxSide is the largest width or height in pixels Render will produce.
const MaxSide = 4096

// Options controls how a moose is painted.
type Options struct {
	// CellWidth and CellHeight are the size of one cell in pixels.
	CellWidth  int
	CellHeight int

	// Scale is an integer upscale applied after painting. 0 and 1 both
	// mean no scaling.
	Scale int

	// Grid draws cell borders in GridColor ("#RRGGBB" or "#RRGGBBAA").
	Grid      bool
	GridColor string

	// Trim crops the canvas to the painted cells.
	Trim bool
}

// DefaultOptions returns the editor's canvas settings.
func DefaultOptions() Options {
	return Options{
		CellWidth:  16,
		CellHeight: 24,
		Scale:      1,
		GridColor:  "#000000",
	}
}

// RenderResult contains a painted moose encoded as PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Columns     int    `json:"columns"`
	Rows        int    `json:"rows"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render paints g onto a new image, one solid block per cell.
// Transparent cells stay fully transparent.
func Render(g *moose.Grid, opts Options) (image.Image, error) {
	if opts.CellWidth < 1 || opts.CellHeight < 1 {
		return nil, fmt.Errorf("invalid cell size %dx%d", opts.CellWidth, opts.CellHeight)
	}
	if opts.Scale < 0 {
		return nil, fmt.Errorf("invalid scale %d", opts.Scale)
	}
	if opts.CellWidth > MaxSide/g.Width() || opts.CellHeight > MaxSide/g.Height() {
		return nil, fmt.Errorf("cell size %dx%d makes the canvas larger than %d px", opts.CellWidth, opts.CellHeight, MaxSide)
	}

	swatches, err := NewSwatches(g.Palette())
	if err != nil {
		return nil, err
	}

	canvas := paint(g, swatches, opts.CellWidth, opts.CellHeight)

	if opts.Grid {
		gridColor, err := parseHexColor(opts.GridColor)
		if err != nil {
			logging.Warn("Imaging", "Bad grid color %q, using black: %v", opts.GridColor, err)
			gridColor = color.NRGBA{A: 0xff}
		}
		drawGrid(canvas, opts.CellWidth, opts.CellHeight, gridColor)
	}

	var out image.Image = canvas
	if opts.Trim {
		cropped, err := CropToContent(canvas, g, opts.CellWidth, opts.CellHeight)
		if err != nil {
			return nil, err
		}
		out = cropped
	}

	if opts.Scale > 1 {
		b := out.Bounds()
		if opts.Scale > MaxSide/b.Dx() || opts.Scale > MaxSide/b.Dy() {
			return nil, fmt.Errorf("scale %d makes the image larger than %d px", opts.Scale, MaxSide)
		}
		out = transform.Resize(out, b.Dx()*opts.Scale, b.Dy()*opts.Scale, transform.NearestNeighbor)
	}
	return out, nil
}

// RenderPNG paints g and returns it as a base64 PNG.
func RenderPNG(g *moose.Grid, opts Options) (*RenderResult, error) {
	img, err := Render(g, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	cols, rows := g.Width(), g.Height()
	if opts.Trim {
		r, _ := moose.ContentBounds(g)
		cols, rows = r.Dx(), r.Dy()
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Columns:     cols,
		Rows:        rows,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func paint(g *moose.Grid, swatches *Swatches, cw, ch int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, g.Width()*cw, g.Height()*ch))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.IsTransparent(x, y) {
				continue
			}
			cell := image.Rect(x*cw, y*ch, (x+1)*cw, (y+1)*ch)
			draw.Draw(canvas, cell, image.NewUniform(swatches.NRGBA(g.At(x, y))), image.Point{}, draw.Src)
		}
	}
	return canvas
}

// drawGrid draws the border between neighbouring cells.
func drawGrid(img *image.NRGBA, cw, ch int, c color.NRGBA) {
	b := img.Bounds()

	for x := cw; x < b.Dx(); x += cw {
		for y := 0; y < b.Dy(); y++ {
			img.Set(x, y, c)
		}
	}

	for y := ch; y < b.Dy(); y += ch {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, c)
		}
	}
}
