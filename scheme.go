package batchui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// SchemeColor is a symbolic color resolved through a Palette at draw time.
// Batches store scheme colors rather than RGBA so a theme switch only needs
// a repaint, not a rebuild.
type SchemeColor int16

const (
	// SchemeNone is the sentinel "draw nothing" color. Rectangles with this
	// color still take part in hit testing.
	SchemeNone SchemeColor = iota
	SchemeBackground
	SchemePureBackground
	SchemeBackgroundText
	SchemeGrey
	SchemeGreyText
	SchemePrimary
	SchemePrimaryAlt
	SchemePrimaryText
	SchemeSecondary
	SchemeSecondaryText
	SchemeError
	SchemeErrorText
	SchemeSource
	SchemeSourceText

	schemeCount
)

// schemeInvalid never equals a real scheme color. Present uses it to reset
// its color-coalescing state.
const schemeInvalid SchemeColor = -1

var schemeNames = [schemeCount]string{
	"none",
	"background",
	"pure_background",
	"background_text",
	"grey",
	"grey_text",
	"primary",
	"primary_alt",
	"primary_text",
	"secondary",
	"secondary_text",
	"error",
	"error_text",
	"source",
	"source_text",
}

// String returns the palette key for the color.
func (c SchemeColor) String() string {
	if c < 0 || c >= schemeCount {
		return "SchemeColor(" + strconv.Itoa(int(c)) + ")"
	}
	return schemeNames[c]
}

// ParseSchemeColor maps a palette key back to its SchemeColor.
func ParseSchemeColor(name string) (SchemeColor, bool) {
	for i, n := range schemeNames {
		if n == name {
			return SchemeColor(i), true
		}
	}
	return SchemeNone, false
}

// Palette resolves scheme colors to concrete RGBA values.
type Palette [schemeCount]Color

// DefaultPalette is the dark theme used when no palette is configured.
var DefaultPalette = Palette{
	SchemeNone:           {},
	SchemeBackground:     {0.15, 0.15, 0.16, 1},
	SchemePureBackground: {0.09, 0.09, 0.10, 1},
	SchemeBackgroundText: {0.95, 0.95, 0.95, 1},
	SchemeGrey:           {0.25, 0.25, 0.27, 1},
	SchemeGreyText:       {0.80, 0.80, 0.80, 1},
	SchemePrimary:        {0.10, 0.45, 0.80, 1},
	SchemePrimaryAlt:     {0.20, 0.55, 0.90, 1},
	SchemePrimaryText:    {1, 1, 1, 1},
	SchemeSecondary:      {0.85, 0.55, 0.10, 1},
	SchemeSecondaryText:  {0, 0, 0, 1},
	SchemeError:          {0.80, 0.15, 0.15, 1},
	SchemeErrorText:      {1, 1, 1, 1},
	SchemeSource:         {0.20, 0.60, 0.25, 1},
	SchemeSourceText:     {1, 1, 1, 1},
}

// Color returns the RGBA value for c. Unknown colors resolve to transparent.
func (p *Palette) Color(c SchemeColor) Color {
	if c < 0 || c >= schemeCount {
		return Color{}
	}
	return p[c]
}

// Override replaces palette entries from a name → "#rrggbb[aa]" map.
func (p *Palette) Override(entries map[string]string) error {
	for name, hex := range entries {
		sc, ok := ParseSchemeColor(name)
		if !ok {
			return fmt.Errorf("batchui: unknown scheme color %q", name)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("batchui: scheme color %q: %w", name, err)
		}
		p[sc] = c
	}
	return nil
}

// LoadPalette parses a TOML table of scheme color overrides on top of
// DefaultPalette:
//
//	background = "#262629"
//	primary    = "#1a73cc"
func LoadPalette(data []byte) (Palette, error) {
	var entries map[string]string
	if _, err := toml.Decode(string(data), &entries); err != nil {
		return Palette{}, fmt.Errorf("batchui: failed to parse palette: %w", err)
	}
	p := DefaultPalette
	if err := p.Override(entries); err != nil {
		return Palette{}, err
	}
	return p, nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
