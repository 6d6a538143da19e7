package batchui

// Panel produces the content of a Batch. BuildPanel must only use the
// batch's Draw* builder calls and must be deterministic for a given width.
// It returns the extent of the content it built.
type Panel interface {
	BuildPanel(b *Batch, width float64) Size
}

// PanelFunc adapts a function to Panel.
type PanelFunc func(b *Batch, width float64) Size

// BuildPanel calls f(b, width).
func (f PanelFunc) BuildPanel(b *Batch, width float64) Size {
	return f(b, width)
}

type rectEntry struct {
	rect   Rect
	color  SchemeColor
	handle *Handle
	caps   Capability
}

type shadowEntry struct {
	rect   Rect
	shadow RectangleShadow
}

type spriteEntry struct {
	rect   Rect
	sprite Sprite
	color  SchemeColor
}

type renderableEntry struct {
	rect       Rect
	renderable Renderable
}

type subBatchEntry struct {
	rect   Rect
	batch  *Batch
	handle *Handle
	caps   Capability
}

// Batch is a cached node of the retained draw tree. It holds the draw
// commands one panel produced during its last build, plus nested batches
// for child panels that cache independently.
//
// The Draw* calls are only valid while the batch is being (re)built. A batch
// is not safe for concurrent use.
type Batch struct {
	// Offset translates everything this batch draws, including nested
	// batches. Scroll areas drive it.
	Offset Vec2
	// Clip constrains drawing to the clip rectangle handed down by the
	// parent during Present.
	Clip bool

	panel       Panel
	dirty       bool
	buildSize   Size
	contentSize Size

	rects       []rectEntry
	shadows     []shadowEntry
	sprites     []spriteEntry
	renderables []renderableEntry
	subBatches  []subBatchEntry

	// parent is lookup-only: it carries dirtiness upward and nothing else.
	parent *Batch
}

// NewBatch creates a dirty batch built by panel. panel may be nil for a
// batch that is populated directly by its owner.
func NewBatch(panel Panel) *Batch {
	return &Batch{panel: panel, dirty: true}
}

// Panel returns the panel that builds this batch.
func (b *Batch) Panel() Panel { return b.panel }

// Parent returns the batch this one was last attached to via DrawSubBatch.
func (b *Batch) Parent() *Batch { return b.parent }

// Dirty reports whether the batch must be rebuilt before its next present.
func (b *Batch) Dirty() bool { return b.dirty }

// BuildSize returns the size passed to the last Rebuild.
func (b *Batch) BuildSize() Size { return b.buildSize }

// ContentSize returns the extent reported by the panel in the last Rebuild.
func (b *Batch) ContentSize() Size { return b.contentSize }

// Len returns the total number of recorded draw entries.
func (b *Batch) Len() int {
	return len(b.rects) + len(b.shadows) + len(b.sprites) + len(b.renderables) + len(b.subBatches)
}

// Clear drops every recorded draw entry. Backing arrays are kept for reuse.
func (b *Batch) Clear() {
	clear(b.rects)
	clear(b.renderables)
	clear(b.subBatches)
	b.rects = b.rects[:0]
	b.shadows = b.shadows[:0]
	b.sprites = b.sprites[:0]
	b.renderables = b.renderables[:0]
	b.subBatches = b.subBatches[:0]
}

// Rebuild clears the batch and asks its panel to repopulate it for size.
// Afterwards the batch is clean and remembers size as its build size.
func (b *Batch) Rebuild(size Size) {
	b.dirty = false
	b.buildSize = size
	if b.panel == nil {
		return
	}
	b.Clear()
	b.contentSize = b.panel.BuildPanel(b, size.Width)
}

// SetDirty marks the batch stale and propagates upward. Propagation stops at
// the first ancestor that is already dirty: that ancestor rebuilds its dirty
// children when it is next presented.
func (b *Batch) SetDirty() {
	for n := b; n != nil && !n.dirty; n = n.parent {
		n.dirty = true
	}
}

// --- Builder operations ---

// DrawRectangle records a filled rectangle. A shadow other than ShadowNone
// also records a shadow entry at the same rect. handle may be nil.
func (b *Batch) DrawRectangle(rect Rect, color SchemeColor, shadow RectangleShadow, handle *Handle) {
	b.rects = append(b.rects, rectEntry{rect: rect, color: color, handle: handle, caps: handle.Capabilities()})
	if shadow != ShadowNone {
		b.shadows = append(b.shadows, shadowEntry{rect: rect, shadow: shadow})
	}
}

// DrawRect is DrawRectangle without shadow or handle.
func (b *Batch) DrawRect(rect Rect, color SchemeColor) {
	b.DrawRectangle(rect, color, ShadowNone, nil)
}

// DrawSprite records an atlas sprite tinted by color.
func (b *Batch) DrawSprite(rect Rect, sprite Sprite, color SchemeColor) {
	b.sprites = append(b.sprites, spriteEntry{rect: rect, sprite: sprite, color: color})
}

// DrawRenderable records custom content.
func (b *Batch) DrawRenderable(rect Rect, renderable Renderable) {
	b.renderables = append(b.renderables, renderableEntry{rect: rect, renderable: renderable})
}

// DrawSubBatch nests child at rect and makes b its parent. Attaching a batch
// that already has a parent silently replaces the old parent reference.
func (b *Batch) DrawSubBatch(rect Rect, child *Batch, handle *Handle) {
	if child == nil {
		panic("batchui: cannot draw nil sub-batch")
	}
	if child == b {
		panic("batchui: batch cannot contain itself")
	}
	child.parent = b
	b.subBatches = append(b.subBatches, subBatchEntry{rect: rect, batch: child, handle: handle, caps: handle.Capabilities()})
}

// --- Hit testing ---

// Raycast returns the topmost handle at p (in this batch's parent space)
// that has every capability in want, or nil.
//
// Nested batches are searched last-drawn first, recursing before falling
// back to the nested batch's own handle. Plain rectangles are searched in
// insertion order and the first containing match wins.
func (b *Batch) Raycast(p Vec2, want Capability) *Handle {
	p = p.Sub(b.Offset)
	for i := len(b.subBatches) - 1; i >= 0; i-- {
		e := &b.subBatches[i]
		if !e.rect.ContainsPoint(p) {
			continue
		}
		if h := e.batch.Raycast(p, want); h != nil {
			return h
		}
		if e.caps.Has(want) {
			return e.handle
		}
	}
	for i := range b.rects {
		e := &b.rects[i]
		if e.caps.Has(want) && e.rect.ContainsPoint(p) {
			return e.handle
		}
	}
	return nil
}

// --- Presentation ---

// Present draws the batch tree depth-first. screenOffset is the accumulated
// translation of all ancestors, screenClip the visible area in screen space.
// Nested batches that are dirty or whose allotted size changed are rebuilt
// on the way down. When Clip is set the device clip rect is restored before
// returning.
func (b *Batch) Present(r Renderer, screenOffset Vec2, screenClip Rect) {
	var prevClip Rect
	if b.Clip {
		prevClip = r.ClipRect()
		r.SetClipRect(screenClip)
	}

	screenOffset = screenOffset.Add(b.Offset)
	localClip := Rect{screenClip.X - screenOffset.X, screenClip.Y - screenOffset.Y, screenClip.Width, screenClip.Height}

	// Reverse order: the first rectangle recorded ends up on top, which is
	// the same one Raycast picks.
	current := schemeInvalid
	for i := len(b.rects) - 1; i >= 0; i-- {
		e := &b.rects[i]
		if e.color == SchemeNone || !e.rect.Intersects(localClip) {
			continue
		}
		if e.color != current {
			current = e.color
			r.SetDrawColor(current)
		}
		r.FillRect(e.rect.Translate(screenOffset))
	}

	for range b.shadows {
		// Shadows are recorded but not rendered yet.
	}

	current = schemeInvalid
	for i := range b.sprites {
		e := &b.sprites[i]
		if !e.rect.Intersects(localClip) {
			continue
		}
		if e.color != current {
			current = e.color
			r.SetSpriteColor(current)
		}
		r.DrawSprite(e.rect.Translate(screenOffset), e.sprite)
	}

	for i := range b.renderables {
		e := &b.renderables[i]
		if !e.rect.Intersects(localClip) {
			continue
		}
		e.renderable.Render(r, e.rect.Translate(screenOffset))
	}

	for i := range b.subBatches {
		e := &b.subBatches[i]
		intersection := e.rect.Translate(screenOffset).Intersect(screenClip)
		if intersection.Empty() {
			continue
		}
		if size := e.rect.Size(); e.batch.dirty || e.batch.buildSize != size {
			e.batch.Rebuild(size)
		}
		e.batch.Present(r, screenOffset, intersection)
	}

	if b.Clip {
		r.SetClipRect(prevClip)
	}
}
