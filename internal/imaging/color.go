package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/captmoose/internal/moose"
)

// opaqueThreshold is the 16-bit alpha below which a source pixel counts as
// unpainted when importing a picture.
const opaqueThreshold = 0x8000

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// SwatchInfo describes one palette entry in several representations.
type SwatchInfo struct {
	Index       int       `json:"index"`
	Name        string    `json:"name"`
	Transparent bool      `json:"transparent"`
	Hex         string    `json:"hex,omitempty"`
	IRC         int       `json:"irc"`
	RGB         *RGBColor `json:"rgb,omitempty"`
	HSL         *HSLColor `json:"hsl,omitempty"`
}

// Swatches holds the parsed colours of a palette, indexed by moose.Color.
//
// A Swatches value is immutable and safe for concurrent use.
type Swatches struct {
	palette *moose.Palette
	colors  []colorful.Color
}

// NewSwatches parses the hex value of every painted swatch in p.
//
// The transparent swatch needs no hex value. Any other swatch with a
// missing or malformed value is an error.
func NewSwatches(p *moose.Palette) (*Swatches, error) {
	s := &Swatches{
		palette: p,
		colors:  make([]colorful.Color, p.Len()),
	}
	for i, sw := range p.Swatches() {
		if moose.Color(i) == p.Transparent() {
			continue
		}
		c, err := colorful.Hex(sw.Hex)
		if err != nil {
			return nil, fmt.Errorf("swatch %q has invalid hex %q: %w", sw.Name, sw.Hex, err)
		}
		s.colors[i] = c
	}
	return s, nil
}

// Palette returns the palette the swatches were parsed from.
func (s *Swatches) Palette() *moose.Palette {
	return s.palette
}

// NRGBA returns the paint colour of c. The transparent swatch and colours
// outside the palette yield a fully transparent pixel.
func (s *Swatches) NRGBA(c moose.Color) color.NRGBA {
	if c == s.palette.Transparent() || int(c) >= len(s.colors) {
		return color.NRGBA{}
	}
	r, g, b := s.colors[c].RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Nearest maps an arbitrary colour onto the palette.
//
// Pixels with less than half opacity map to transparent. Everything else
// maps to the painted swatch closest in CIE L*a*b* space; ties go to the
// swatch that comes first in the palette.
func (s *Swatches) Nearest(c color.Color) moose.Color {
	_, _, _, a := c.RGBA()
	if a < opaqueThreshold {
		return s.palette.Transparent()
	}
	target, _ := colorful.MakeColor(c)

	best := s.palette.Transparent()
	bestDist := math.Inf(1)
	for i, sc := range s.colors {
		if moose.Color(i) == s.palette.Transparent() {
			continue
		}
		if d := target.DistanceLab(sc); d < bestDist {
			best, bestDist = moose.Color(i), d
		}
	}
	return best
}

// Describe lists every swatch of the palette with its RGB and HSL values.
func (s *Swatches) Describe() []SwatchInfo {
	out := make([]SwatchInfo, 0, len(s.colors))
	for i, sw := range s.palette.Swatches() {
		info := SwatchInfo{Index: i, Name: sw.Name, IRC: sw.IRC}
		if moose.Color(i) == s.palette.Transparent() {
			info.Transparent = true
			info.IRC = -1
			out = append(out, info)
			continue
		}

		c := s.colors[i]
		r, g, b := c.RGB255()
		h, sat, l := c.Hsl()
		info.Hex = strings.ToUpper(c.Hex())
		info.RGB = &RGBColor{R: r, G: g, B: b}
		info.HSL = &HSLColor{
			H: int(math.Round(h)),
			S: int(math.Round(sat * 100)),
			L: int(math.Round(l * 100)),
		}
		out = append(out, info)
	}
	return out
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	alpha := uint8(0xff)
	switch len(hex) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length in %q", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
