package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/captmoose/internal/moose"
)

// testGrid returns a 3x4 moose:
//
//	. . . .
//	. r b .
//	. r . .
func testGrid(t *testing.T) *moose.Grid {
	t.Helper()
	def, err := moose.NewDef(3, 4, testPalette(t))
	if err != nil {
		t.Fatalf("NewDef failed: %v", err)
	}
	g, err := def.Validate([][]string{
		{"transparent", "transparent", "transparent", "transparent"},
		{"transparent", "red", "blue", "transparent"},
		{"transparent", "red", "transparent", "transparent"},
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return g
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRender(t *testing.T) {
	g := testGrid(t)
	opts := Options{CellWidth: 4, CellHeight: 6}

	img, err := Render(g, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 16 || b.Dy() != 18 {
		t.Fatalf("dimensions: got %dx%d, want 16x18", b.Dx(), b.Dy())
	}

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"transparent corner", 0, 0, color.NRGBA{}},
		{"red cell origin", 4, 6, color.NRGBA{R: 255, A: 255}},
		{"red cell far corner", 7, 11, color.NRGBA{R: 255, A: 255}},
		{"blue cell", 10, 8, color.NRGBA{B: 255, A: 255}},
		{"lower red cell", 5, 15, color.NRGBA{R: 255, A: 255}},
		{"transparent right", 14, 15, color.NRGBA{}},
	}

	for _, tt := range tests {
		if got := nrgbaAt(img, tt.x, tt.y); got != tt.want {
			t.Errorf("%s at (%d,%d): got %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRender_GridLines(t *testing.T) {
	g := testGrid(t)
	opts := Options{CellWidth: 4, CellHeight: 6, Grid: true, GridColor: "#00FF00"}

	img, err := Render(g, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	green := color.NRGBA{G: 255, A: 255}
	if got := nrgbaAt(img, 4, 1); got != green {
		t.Errorf("vertical line at (4,1): got %v, want %v", got, green)
	}
	if got := nrgbaAt(img, 1, 12); got != green {
		t.Errorf("horizontal line at (1,12): got %v, want %v", got, green)
	}
	// cell interior is untouched
	if got := nrgbaAt(img, 6, 8); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("cell interior at (6,8): got %v, want red", got)
	}
	// no border on the outer edge
	if got := nrgbaAt(img, 0, 0); got != (color.NRGBA{}) {
		t.Errorf("outer edge at (0,0): got %v, want transparent", got)
	}
}

func TestRender_BadGridColorFallsBack(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, Options{CellWidth: 2, CellHeight: 2, Grid: true, GridColor: "invalid"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := nrgbaAt(img, 2, 0); got != (color.NRGBA{A: 255}) {
		t.Errorf("grid line: got %v, want black", got)
	}
}

func TestRender_Trim(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, Options{CellWidth: 4, CellHeight: 6, Trim: true})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 8 || b.Dy() != 12 {
		t.Fatalf("dimensions: got %dx%d, want 8x12", b.Dx(), b.Dy())
	}
	if got := nrgbaAt(img, b.Min.X, b.Min.Y); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("top-left after trim: got %v, want red", got)
	}
	if got := nrgbaAt(img, b.Min.X+7, b.Min.Y+11); got != (color.NRGBA{}) {
		t.Errorf("bottom-right after trim: got %v, want transparent", got)
	}
}

func TestRender_TrimEmpty(t *testing.T) {
	def, err := moose.NewDef(2, 2, testPalette(t))
	if err != nil {
		t.Fatalf("NewDef failed: %v", err)
	}

	_, err = Render(def.NewGrid(), Options{CellWidth: 1, CellHeight: 1, Trim: true})
	if err == nil {
		t.Fatal("expected error for empty moose")
	}
	if !errors.Is(err, moose.ErrEmptyGrid) {
		t.Errorf("got %v, want EmptyGridError", err)
	}
}

func TestRender_Scale(t *testing.T) {
	g := testGrid(t)

	img, err := Render(g, Options{CellWidth: 1, CellHeight: 1, Scale: 3})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 9 {
		t.Fatalf("dimensions: got %dx%d, want 12x9", b.Dx(), b.Dy())
	}
	for _, p := range []image.Point{{3, 3}, {5, 5}, {3, 8}} {
		if got := nrgbaAt(img, p.X, p.Y); got != (color.NRGBA{R: 255, A: 255}) {
			t.Errorf("scaled red at %v: got %v", p, got)
		}
	}
	if got := nrgbaAt(img, 7, 4); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("scaled blue at (7,4): got %v", got)
	}
}

func TestRender_InvalidOptions(t *testing.T) {
	g := testGrid(t)

	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{CellWidth: 0, CellHeight: 1}},
		{"zero height", Options{CellWidth: 1, CellHeight: 0}},
		{"negative scale", Options{CellWidth: 1, CellHeight: 1, Scale: -1}},
		{"huge scale", Options{CellWidth: 1, CellHeight: 1, Scale: 1 << 40}},
		{"scale past max side", Options{CellWidth: 16, CellHeight: 24, Scale: MaxSide}},
		{"huge cells", Options{CellWidth: MaxSide, CellHeight: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(g, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRenderPNG(t *testing.T) {
	g := testGrid(t)

	result, err := RenderPNG(g, DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}

	if result.Width != 64 || result.Height != 72 {
		t.Errorf("dimensions: got %dx%d, want 64x72", result.Width, result.Height)
	}
	if result.Columns != 4 || result.Rows != 3 {
		t.Errorf("cells: got %dx%d, want 4x3", result.Columns, result.Rows)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode png: %v", err)
	}
	if got := nrgbaAt(img, 20, 30); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("decoded pixel at (20,30): got %v, want red", got)
	}
}

func TestRenderPNG_TrimReportsCells(t *testing.T) {
	opts := DefaultOptions()
	opts.Trim = true

	result, err := RenderPNG(testGrid(t), opts)
	if err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if result.Columns != 2 || result.Rows != 2 {
		t.Errorf("cells: got %dx%d, want 2x2", result.Columns, result.Rows)
	}
	if result.Width != 32 || result.Height != 48 {
		t.Errorf("dimensions: got %dx%d, want 32x48", result.Width, result.Height)
	}
}
