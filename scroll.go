package batchui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollArea shows a clipped window onto a taller content panel. Wheel input
// on the area eases the content offset towards the new position; register
// the area with Window.Animate so the easing advances.
//
// Scrolling only moves the content batch: nothing is rebuilt.
type ScrollArea struct {
	// Duration of the easing in seconds.
	Duration float32
	Ease     ease.TweenFunc

	batch  *Batch
	handle Handle
	rect   Rect

	scroll float64 // current offset
	target float64 // offset the tween is heading to
	tween  *gween.Tween
}

// NewScrollArea creates an area hosting the content batch, typically
// Gui.Batch. The batch is clipped to the area from then on.
func NewScrollArea(content *Batch) *ScrollArea {
	if content == nil {
		panic("batchui: scroll area needs a content batch")
	}
	s := &ScrollArea{
		Duration: 0.15,
		Ease:     ease.OutQuad,
		batch:    content,
	}
	s.batch.Clip = true
	s.handle = Handle{
		Name:     "scroll",
		OnScroll: func(ctx ScrollContext) { s.ScrollBy(-ctx.DeltaY) },
	}
	return s
}

// Batch returns the content batch.
func (s *ScrollArea) Batch() *Batch { return s.batch }

// Handle returns the wheel handle attached to the area.
func (s *ScrollArea) Handle() *Handle { return &s.handle }

// Scroll returns the current vertical offset.
func (s *ScrollArea) Scroll() float64 { return s.scroll }

// MaxScroll returns the largest offset that still keeps the viewport filled.
func (s *ScrollArea) MaxScroll() float64 {
	return max(0, s.batch.ContentSize().Height-s.rect.Height)
}

// Draw places the area at r. Build passes only.
func (s *ScrollArea) Draw(g *Gui, r Rect) {
	if !g.IsBuilding() {
		return
	}
	s.rect = r
	s.applyOffset()
	g.batch.DrawSubBatch(r, s.batch, &s.handle)
}

func (s *ScrollArea) applyOffset() {
	s.batch.Offset = Vec2{s.rect.X, s.rect.Y - s.scroll}
}

// ScrollTo eases towards offset y, clamped to [0, MaxScroll].
func (s *ScrollArea) ScrollTo(y float64) {
	y = min(max(y, 0), s.MaxScroll())
	if y == s.target {
		return
	}
	s.target = y
	if s.Duration <= 0 {
		s.scroll = y
		s.tween = nil
		s.applyOffset()
		return
	}
	s.tween = gween.New(float32(s.scroll), float32(y), s.Duration, s.Ease)
}

// ScrollBy eases by dy relative to the current target.
func (s *ScrollArea) ScrollBy(dy float64) {
	s.ScrollTo(s.target + dy)
}

// Update implements Animator.
func (s *ScrollArea) Update(dt float32) bool {
	if s.tween == nil {
		return false
	}
	v, finished := s.tween.Update(dt)
	s.scroll = float64(v)
	if finished {
		s.scroll = s.target
		s.tween = nil
	}
	s.applyOffset()
	return true
}
