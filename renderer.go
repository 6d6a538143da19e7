package batchui

// Renderer is the drawing device a Batch presents into. Implementations own
// the device state (current clip rect, draw color, sprite tint); Present only
// mutates it through these calls and restores the clip rect it overwrote.
type Renderer interface {
	// ClipRect returns the current device clip. A zero Rect means clipping
	// is disabled.
	ClipRect() Rect
	// SetClipRect sets the device clip. A zero Rect disables clipping.
	SetClipRect(r Rect)
	// SetDrawColor sets the fill color used by FillRect.
	SetDrawColor(c SchemeColor)
	// FillRect fills r (screen space) with the current draw color.
	FillRect(r Rect)
	// SetSpriteColor sets the atlas color modulation used by DrawSprite.
	SetSpriteColor(c SchemeColor)
	// DrawSprite copies s from the shared atlas into dst (screen space).
	DrawSprite(dst Rect, s Sprite)
}

// Renderable is custom content placed in a batch, such as a text label. It
// receives its position already translated to screen space.
type Renderable interface {
	Render(r Renderer, position Rect)
}

// RenderableFunc adapts a function to Renderable.
type RenderableFunc func(r Renderer, position Rect)

// Render calls f(r, position).
func (f RenderableFunc) Render(r Renderer, position Rect) {
	f(r, position)
}
