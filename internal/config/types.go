package config

import (
	"fmt"
	"time"

	"github.com/ironsheep/captmoose/internal/moose"
)

// Config is the complete captmoose configuration.
type Config struct {
	Moose   MooseSettings   `yaml:"moose"`
	Storage StorageSettings `yaml:"storage"`
	Chat    ChatSettings    `yaml:"chat"`
	Canvas  CanvasSettings  `yaml:"canvas"`
}

// MooseSettings defines the shared raster geometry and palette.
//
// Changing the order of Palette invalidates every stored moose.
type MooseSettings struct {
	Height        int            `yaml:"height"`
	Width         int            `yaml:"width"`
	Palette       []moose.Swatch `yaml:"palette"`
	MinNameLength int            `yaml:"minNameLength"`
	MaxNameLength int            `yaml:"maxNameLength"`
}

// StorageSettings configures the file-backed moose store.
type StorageSettings struct {
	Dir         string        `yaml:"dir"`
	CacheTTL    time.Duration `yaml:"cacheTTL"`
	LatestLimit int           `yaml:"latestLimit"`
}

// ChatSettings configures the chat renderer and its flood control.
type ChatSettings struct {
	Cooldown      time.Duration `yaml:"cooldown"`
	PaceInterval  time.Duration `yaml:"paceInterval"`
	LinesPerBatch int           `yaml:"linesPerBatch"`
	// LegacyTrim keeps the historical ragged right edge when cropping.
	LegacyTrim *bool  `yaml:"legacyTrim,omitempty"`
	SiteURL    string `yaml:"siteURL"`
}

// CanvasSettings controls PNG painting of a moose.
type CanvasSettings struct {
	CellWidth  int    `yaml:"cellWidth"`
	CellHeight int    `yaml:"cellHeight"`
	GridColor  string `yaml:"gridColor"`
}

// UseLegacyTrim reports whether the ragged trim is enabled.
func (c ChatSettings) UseLegacyTrim() bool {
	return c.LegacyTrim != nil && *c.LegacyTrim
}

// Def builds the moose definition described by the configuration.
func (c Config) Def() (*moose.Def, error) {
	palette, err := moose.NewPalette(c.Moose.Palette)
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}
	return moose.NewDef(c.Moose.Height, c.Moose.Width, palette)
}

// Validate checks the settings that have no usable fallback.
func (c Config) Validate() error {
	if _, err := c.Def(); err != nil {
		return err
	}
	if c.Moose.MinNameLength < 1 || c.Moose.MaxNameLength < c.Moose.MinNameLength {
		return fmt.Errorf("invalid name length bounds %d..%d", c.Moose.MinNameLength, c.Moose.MaxNameLength)
	}
	if c.Chat.LinesPerBatch < 1 {
		return fmt.Errorf("chat.linesPerBatch must be at least 1, got %d", c.Chat.LinesPerBatch)
	}
	if c.Chat.PaceInterval < 0 || c.Chat.Cooldown < 0 {
		return fmt.Errorf("chat durations must not be negative")
	}
	if c.Canvas.CellWidth < 1 || c.Canvas.CellHeight < 1 {
		return fmt.Errorf("invalid canvas cell size %dx%d", c.Canvas.CellWidth, c.Canvas.CellHeight)
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir must be set")
	}
	return nil
}
