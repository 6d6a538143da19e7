package batchui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFixedFontMeasure(t *testing.T) {
	f := FixedFont{Advance: 7, Height: 16}
	w, h := f.MeasureString("hello")
	assert.Equal(t, 35.0, w)
	assert.Equal(t, 16.0, h)

	w, h = f.MeasureString("ab\nlonger")
	assert.Equal(t, 42.0, w)
	assert.Equal(t, 32.0, h)

	w, h = f.MeasureString("")
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestWrapText(t *testing.T) {
	f := FixedFont{Advance: 10, Height: 10}
	assert.Equal(t, []string{"one two", "three"}, wrapText(f, "one two three", 80))
	assert.Equal(t, []string{"a", "", "b"}, wrapText(f, "a\n\nb", 80))
	assert.Equal(t, []string{"supercalifragilistic"}, wrapText(f, "supercalifragilistic", 50))
	assert.Equal(t, []string{"no width limit"}, wrapText(f, "no width limit", 0))
}

type textRecorder struct {
	recordingRenderer
	texts []string
	at    []Vec2
}

func (r *textRecorder) DrawText(content string, _ Font, position Vec2, _ SchemeColor) {
	r.texts = append(r.texts, content)
	r.at = append(r.at, position)
}

func TestLabelRendersThroughTextRenderer(t *testing.T) {
	b := cleanBatch()
	b.DrawRenderable(Rect{10, 20, 50, 16}, &Label{Content: "Iron", Font: defaultFont})
	b.DrawRenderable(Rect{10, 40, 50, 16}, &Label{Font: defaultFont})

	r := &textRecorder{}
	b.Present(r, Vec2{5, 5}, screenRect)
	assert.Equal(t, []string{"Iron"}, r.texts)
	assert.Equal(t, []Vec2{{15, 25}}, r.at)

	// Renderers without text support draw nothing.
	plain := &recordingRenderer{}
	b.Present(plain, Vec2{}, screenRect)
	assert.Empty(t, plain.calls)
}

func TestLoadTTFFont(t *testing.T) {
	f, err := LoadTTFFont(goregular.TTF, 14)
	require.NoError(t, err)
	assert.Greater(t, f.LineHeight(), 14.0)
	short, _ := f.MeasureString("ab")
	long, _ := f.MeasureString("abcdef")
	assert.Greater(t, long, short)
	assert.NotNil(t, f.Face())

	_, err = LoadTTFFont([]byte("not a font"), 14)
	assert.Error(t, err)
}
