package batchui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeColorNames(t *testing.T) {
	for c := SchemeNone; c < schemeCount; c++ {
		got, ok := ParseSchemeColor(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, got)
	}
	_, ok := ParseSchemeColor("fuchsia")
	assert.False(t, ok)
	assert.Equal(t, "SchemeColor(-1)", schemeInvalid.String())
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Color{1, 0, 0, 1}, c)

	c, err = ParseHexColor(" 00ff0080 ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.R)
	assert.Equal(t, 1.0, c.G)
	assert.InDelta(t, 0.5, c.A, 0.01)

	for _, bad := range []string{"", "#fff", "#gg0000", "#ff00000"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestPaletteColor(t *testing.T) {
	p := DefaultPalette
	assert.Equal(t, DefaultPalette[SchemePrimary], p.Color(SchemePrimary))
	assert.Equal(t, Color{}, p.Color(schemeInvalid))
	assert.Equal(t, Color{}, p.Color(schemeCount))
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette([]byte(`
background = "#000000"
primary    = "#ffffff"
`))
	require.NoError(t, err)
	assert.Equal(t, Color{0, 0, 0, 1}, p.Color(SchemeBackground))
	assert.Equal(t, Color{1, 1, 1, 1}, p.Color(SchemePrimary))
	assert.Equal(t, DefaultPalette[SchemeGrey], p.Color(SchemeGrey))
}

func TestLoadPaletteErrors(t *testing.T) {
	_, err := LoadPalette([]byte(`not toml =`))
	assert.Error(t, err)

	_, err = LoadPalette([]byte(`mauve = "#ffffff"`))
	assert.ErrorContains(t, err, "unknown scheme color")

	_, err = LoadPalette([]byte(`primary = "blue"`))
	assert.ErrorContains(t, err, "primary")
}
