package config

import (
	"time"

	"github.com/ironsheep/captmoose/internal/moose"
)

// DefaultPalette is the transparent swatch followed by the sixteen mIRC
// colours. Hex values are the CSS colours the web editor paints with.
func DefaultPalette() []moose.Swatch {
	return []moose.Swatch{
		{Name: moose.TransparentName},
		{Name: "white", Hex: "#FFFFFF", IRC: 0},
		{Name: "black", Hex: "#000000", IRC: 1},
		{Name: "navy", Hex: "#000080", IRC: 2},
		{Name: "green", Hex: "#008000", IRC: 3},
		{Name: "red", Hex: "#FF0000", IRC: 4},
		{Name: "brown", Hex: "#A52A2A", IRC: 5},
		{Name: "purple", Hex: "#800080", IRC: 6},
		{Name: "olive", Hex: "#808000", IRC: 7},
		{Name: "yellow", Hex: "#FFFF00", IRC: 8},
		{Name: "lime", Hex: "#00FF00", IRC: 9},
		{Name: "teal", Hex: "#008080", IRC: 10},
		{Name: "cyan", Hex: "#00FFFF", IRC: 11},
		{Name: "blue", Hex: "#0000FF", IRC: 12},
		{Name: "fuchsia", Hex: "#FF00FF", IRC: 13},
		{Name: "grey", Hex: "#808080", IRC: 14},
		{Name: "lightgrey", Hex: "#D3D3D3", IRC: 15},
	}
}

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	legacyTrim := false
	return Config{
		Moose: MooseSettings{
			Height:        15,
			Width:         26,
			Palette:       DefaultPalette(),
			MinNameLength: 3,
			MaxNameLength: 48,
		},
		Storage: StorageSettings{
			Dir:         "moose-data",
			CacheTTL:    5 * time.Minute,
			LatestLimit: 10,
		},
		Chat: ChatSettings{
			Cooldown:      25 * time.Second,
			PaceInterval:  800 * time.Millisecond,
			LinesPerBatch: 2,
			LegacyTrim:    &legacyTrim,
			SiteURL:       "http://localhost:1337",
		},
		Canvas: CanvasSettings{
			CellWidth:  16,
			CellHeight: 24,
			GridColor:  "#000000",
		},
	}
}
