package batchui

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the window and rendering settings. It is usually loaded from
// a TOML file:
//
//	title = "Production"
//	width = 960
//	height = 640
//	scroll_speed = 40
//
//	[palette]
//	background = "#262629"
type Config struct {
	Title  string  `toml:"title"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
	Debug  bool    `toml:"debug"`

	// ScrollSpeed converts one wheel notch into pixels.
	ScrollSpeed float64 `toml:"scroll_speed"`
	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir string `toml:"screenshot_dir"`
	// Palette overrides scheme colors by name, e.g. "primary" = "#1a73cc".
	Palette map[string]string `toml:"palette"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:         "batchui",
		Width:         960,
		Height:        640,
		Scale:         1,
		ScrollSpeed:   40,
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("batchui: load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warn("unknown config keys", "path", path, "keys", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("batchui: load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.Scale <= 0:
		return errors.New("scale must be positive")
	case c.ScrollSpeed < 0:
		return errors.New("scroll_speed must not be negative")
	}
	return nil
}

// BuildPalette applies the configured overrides to DefaultPalette.
func (c Config) BuildPalette() (Palette, error) {
	p := DefaultPalette
	if err := p.Override(c.Palette); err != nil {
		return Palette{}, err
	}
	return p, nil
}
