package batchui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled up to fill solid rectangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// DrawStats counts device calls issued during one frame.
type DrawStats struct {
	Fills        int
	Sprites      int
	ColorChanges int
	ClipChanges  int
}

// Screen is the ebiten-backed Renderer. Ebiten has no clip state, so the
// clip rect is emulated by drawing into a SubImage of the target.
type Screen struct {
	target  *ebiten.Image
	palette *Palette
	atlas   *SpriteAtlas

	clip        Rect
	clipped     *ebiten.Image // target.SubImage(clip), cached per clip change
	drawColor   Color
	spriteColor Color
	op          ebiten.DrawImageOptions
	stats       DrawStats
}

// NewScreen creates a renderer drawing into target. A nil palette uses
// DefaultPalette; a nil atlas draws every sprite as the magenta placeholder.
func NewScreen(target *ebiten.Image, palette *Palette, atlas *SpriteAtlas) *Screen {
	if palette == nil {
		p := DefaultPalette
		palette = &p
	}
	s := &Screen{palette: palette, atlas: atlas}
	s.Reset(target)
	return s
}

// Reset retargets the screen for a new frame and clears clip and stats.
func (s *Screen) Reset(target *ebiten.Image) {
	s.target = target
	s.clip = Rect{}
	s.clipped = target
	s.stats = DrawStats{}
}

// Stats returns the counters accumulated since the last Reset.
func (s *Screen) Stats() DrawStats { return s.stats }

// ClipRect implements Renderer.
func (s *Screen) ClipRect() Rect { return s.clip }

// SetClipRect implements Renderer.
func (s *Screen) SetClipRect(r Rect) {
	s.stats.ClipChanges++
	s.clip = r
	if r == (Rect{}) || s.target == nil {
		s.clipped = s.target
		return
	}
	bounds := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
	s.clipped = s.target.SubImage(bounds).(*ebiten.Image)
}

// SetDrawColor implements Renderer.
func (s *Screen) SetDrawColor(c SchemeColor) {
	s.stats.ColorChanges++
	s.drawColor = s.palette.Color(c)
}

// FillRect implements Renderer.
func (s *Screen) FillRect(r Rect) {
	if s.clipped == nil || r.Empty() {
		return
	}
	s.stats.Fills++
	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.Reset()
	a := float32(s.drawColor.A)
	op.ColorScale.Scale(float32(s.drawColor.R)*a, float32(s.drawColor.G)*a, float32(s.drawColor.B)*a, a)
	op.Blend = ebiten.BlendSourceOver
	s.clipped.DrawImage(ensureWhitePixel(), op)
}

// SetSpriteColor implements Renderer.
func (s *Screen) SetSpriteColor(c SchemeColor) {
	s.stats.ColorChanges++
	s.spriteColor = s.palette.Color(c)
}

// DrawSprite implements Renderer. Only the RGB channels of the sprite color
// modulate the atlas texture.
func (s *Screen) DrawSprite(dst Rect, sprite Sprite) {
	if s.clipped == nil || dst.Empty() {
		return
	}
	var region TextureRegion
	var page *ebiten.Image
	if s.atlas != nil {
		region = s.atlas.Region(sprite)
		page = s.atlas.page(region)
	} else {
		region = magentaRegion()
		page = ensureMagentaImage()
	}
	if page == nil {
		return
	}
	s.stats.Sprites++
	subImg := page.SubImage(region.rect()).(*ebiten.Image)

	op := &s.op
	op.GeoM.Reset()

	// Rotated regions are stored 90° CW: rotate back and shift down.
	if region.Rotated {
		op.GeoM.Rotate(-math.Pi / 2)
		op.GeoM.Translate(0, float64(region.Width))
	}
	if region.OffsetX != 0 || region.OffsetY != 0 {
		op.GeoM.Translate(float64(region.OffsetX), float64(region.OffsetY))
	}

	ow, oh := float64(region.OriginalW), float64(region.OriginalH)
	if ow == 0 || oh == 0 {
		ow, oh = float64(region.Width), float64(region.Height)
	}
	op.GeoM.Scale(dst.Width/ow, dst.Height/oh)
	op.GeoM.Translate(dst.X, dst.Y)

	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(s.spriteColor.R), float32(s.spriteColor.G), float32(s.spriteColor.B), 1)
	op.Blend = ebiten.BlendSourceOver
	s.clipped.DrawImage(subImg, op)
}
