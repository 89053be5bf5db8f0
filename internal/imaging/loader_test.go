package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/captmoose/internal/moose"
)

// createTestImage writes img as a PNG in a temp dir and returns its path.
func createTestImage(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moose.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// createPixelArt draws the test moose at the given pixels per cell.
func createPixelArt(scale int) *image.NRGBA {
	rows := [][]color.NRGBA{
		{{}, {}, {}, {}},
		{{}, {R: 250, G: 10, A: 255}, {B: 230, A: 255}, {}},
		{{}, {R: 200, A: 255}, {R: 255, G: 255, B: 255, A: 40}, {}},
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4*scale, 3*scale))
	for y := 0; y < 3*scale; y++ {
		for x := 0; x < 4*scale; x++ {
			img.SetNRGBA(x, y, rows[y/scale][x/scale])
		}
	}
	return img
}

func testDef(t *testing.T) *moose.Def {
	t.Helper()
	def, err := moose.NewDef(3, 4, testPalette(t))
	if err != nil {
		t.Fatalf("NewDef failed: %v", err)
	}
	return def
}

func TestQuantize(t *testing.T) {
	want := testGrid(t)

	for _, scale := range []int{1, 2, 5} {
		g, err := Quantize(testDef(t), createPixelArt(scale))
		if err != nil {
			t.Fatalf("Quantize(scale %d) failed: %v", scale, err)
		}
		if !g.Equal(want) {
			t.Errorf("scale %d: got %v, want %v", scale, g.Names(), want.Names())
		}
	}
}

func TestQuantize_RoundTripsRender(t *testing.T) {
	want := testGrid(t)
	img, err := Render(want, Options{CellWidth: 16, CellHeight: 24})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	g, err := Quantize(testDef(t), img)
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	if !g.Equal(want) {
		t.Errorf("got %v, want %v", g.Names(), want.Names())
	}
}

func TestQuantize_EmptyImage(t *testing.T) {
	if _, err := Quantize(testDef(t), image.NewNRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestLoadImage(t *testing.T) {
	path := createTestImage(t, createPixelArt(2))

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("dimensions: got %dx%d, want 8x6", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLoadImage_NonExistent(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	if _, err := DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid data")
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SaveImage(createPixelArt(1), path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	if err := SaveImage(createPixelArt(1), filepath.Join(t.TempDir(), "out.xyz")); err == nil {
		t.Error("expected error for unknown extension")
	}
}
