package batchui

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextRenderer is implemented by renderers that can draw text. Label falls
// back to drawing nothing on renderers without it.
type TextRenderer interface {
	DrawText(content string, font Font, position Vec2, color SchemeColor)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("batchui: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// FixedFont measures every rune as the same advance. It needs no font data,
// which makes layouts reproducible in headless builds.
type FixedFont struct {
	Advance float64
	Height  float64
}

// MeasureString implements Font.
func (f FixedFont) MeasureString(s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	lines := strings.Split(s, "\n")
	for _, l := range lines {
		width = max(width, float64(utf8.RuneCountInString(l))*f.Advance)
	}
	return width, float64(len(lines)) * f.Height
}

// LineHeight implements Font.
func (f FixedFont) LineHeight() float64 {
	return f.Height
}

// defaultFont is used by Gui when no font is configured.
var defaultFont Font = FixedFont{Advance: 7, Height: 16}

// wrapText splits content into lines no wider than width. Words longer than
// width get a line of their own.
func wrapText(font Font, content string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := font.MeasureString(candidate); width > 0 && cw > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// --- Label ---

// Label is a single line of text placed in a batch with DrawRenderable.
type Label struct {
	Content string
	Font    Font
	Color   SchemeColor
}

// Render implements Renderable.
func (l *Label) Render(r Renderer, position Rect) {
	tr, ok := r.(TextRenderer)
	if !ok || l.Content == "" {
		return
	}
	tr.DrawText(l.Content, l.Font, position.Position(), l.Color)
}

// DrawText implements TextRenderer. Fonts other than *TTFFont are skipped:
// they carry no glyphs.
func (s *Screen) DrawText(content string, font Font, position Vec2, color SchemeColor) {
	f, ok := font.(*TTFFont)
	if !ok || s.clipped == nil {
		return
	}
	c := s.palette.Color(color)
	op := &text.DrawOptions{}
	op.GeoM.Translate(position.X, position.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	op.LineSpacing = f.lh
	text.Draw(s.clipped, content, f.face, op)
}
