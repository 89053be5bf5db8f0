package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/captmoose/internal/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/captmoose"
	projectConfigDir = ".captmoose"
	configFileName   = "config.yaml"
)

// LoadConfig layers default, user and project settings, then validates the
// result.
func LoadConfig() (Config, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else {
		config, err = mergeFromFile(config, userConfigPath)
		if err != nil {
			return Config{}, err
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else {
		config, err = mergeFromFile(config, projectConfigPath)
		if err != nil {
			return Config{}, err
		}
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// LoadConfigFile loads defaults overlaid with a single explicit file.
func LoadConfigFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	config, err := mergeFromFile(GetDefaultConfig(), path)
	if err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func mergeFromFile(base Config, path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	logging.Debug("Config", "Merged configuration from %s", path)
	return mergeConfigs(base, overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Set (non-zero)
// overlay fields win; a palette is replaced as a whole because its order is
// part of the storage format.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.Moose.Height != 0 {
		merged.Moose.Height = overlay.Moose.Height
	}
	if overlay.Moose.Width != 0 {
		merged.Moose.Width = overlay.Moose.Width
	}
	if len(overlay.Moose.Palette) > 0 {
		merged.Moose.Palette = overlay.Moose.Palette
	}
	if overlay.Moose.MinNameLength != 0 {
		merged.Moose.MinNameLength = overlay.Moose.MinNameLength
	}
	if overlay.Moose.MaxNameLength != 0 {
		merged.Moose.MaxNameLength = overlay.Moose.MaxNameLength
	}

	if overlay.Storage.Dir != "" {
		merged.Storage.Dir = overlay.Storage.Dir
	}
	if overlay.Storage.CacheTTL != 0 {
		merged.Storage.CacheTTL = overlay.Storage.CacheTTL
	}
	if overlay.Storage.LatestLimit != 0 {
		merged.Storage.LatestLimit = overlay.Storage.LatestLimit
	}

	if overlay.Chat.Cooldown != 0 {
		merged.Chat.Cooldown = overlay.Chat.Cooldown
	}
	if overlay.Chat.PaceInterval != 0 {
		merged.Chat.PaceInterval = overlay.Chat.PaceInterval
	}
	if overlay.Chat.LinesPerBatch != 0 {
		merged.Chat.LinesPerBatch = overlay.Chat.LinesPerBatch
	}
	if overlay.Chat.LegacyTrim != nil {
		merged.Chat.LegacyTrim = overlay.Chat.LegacyTrim
	}
	if overlay.Chat.SiteURL != "" {
		merged.Chat.SiteURL = overlay.Chat.SiteURL
	}

	if overlay.Canvas.CellWidth != 0 {
		merged.Canvas.CellWidth = overlay.Canvas.CellWidth
	}
	if overlay.Canvas.CellHeight != 0 {
		merged.Canvas.CellHeight = overlay.Canvas.CellHeight
	}
	if overlay.Canvas.GridColor != "" {
		merged.Canvas.GridColor = overlay.Canvas.GridColor
	}

	return merged
}
