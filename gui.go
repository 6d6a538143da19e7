package batchui

// Action identifies the kind of pass a Gui is running.
type Action uint8

const (
	ActionBuild     Action = iota // record draw commands into the batch
	ActionMouseMove               // pointer moved with no button held
	ActionMouseDown               // button pressed
	ActionMouseDrag               // pointer moved with a button held
	ActionMouseUp                 // button released
)

// Padding insets a layout group.
type Padding struct {
	Left, Top, Right, Bottom float64
}

// PadAll returns a Padding with the same inset on every side.
func PadAll(v float64) Padding { return Padding{v, v, v, v} }

type layoutState struct {
	left, right, top float64
}

// Gui is an immediate-mode panel. Its build function is replayed for every
// pass: build passes record draw commands into the Gui's batch, event passes
// only lay out so that the same code can answer pointer queries against the
// same rectangles. Anything that changes what a build pass would draw must
// call Rebuild.
type Gui struct {
	// Font measures and draws BuildText content. Defaults to a FixedFont.
	Font Font
	// Spacing is added below every allocated rect.
	Spacing float64
	// TextColor is used by BuildText.
	TextColor SchemeColor

	build  func(g *Gui)
	batch  *Batch
	action Action
	width  float64
	state  layoutState
	stack  []layoutState

	pointer     Vec2 // local space
	pointerDown bool

	dragging any
	dragRect Rect
	dragGrab Vec2
}

// NewGui creates a Gui whose content is produced by build. The Gui owns a
// fresh batch that it populates in BuildPanel.
func NewGui(build func(g *Gui)) *Gui {
	if build == nil {
		panic("batchui: Gui needs a build function")
	}
	g := &Gui{
		Font:      defaultFont,
		TextColor: SchemeBackgroundText,
		build:     build,
	}
	g.batch = NewBatch(g)
	return g
}

// Batch returns the batch this Gui builds into.
func (g *Gui) Batch() *Batch { return g.batch }

// BuildPanel implements Panel. A Gui only builds into its own batch; host
// it elsewhere through Batch, e.g. DrawPanel or NewScrollArea.
func (g *Gui) BuildPanel(b *Batch, width float64) Size {
	if b != g.batch {
		panic("batchui: Gui can only build into its own batch")
	}
	g.width = width
	g.run(ActionBuild)
	return Size{width, g.state.top}
}

func (g *Gui) run(action Action) {
	g.action = action
	g.state = layoutState{left: 0, right: g.width, top: 0}
	g.stack = g.stack[:0]
	g.build(g)
	g.action = ActionBuild
}

// Rebuild marks the Gui's batch dirty so the next present rebuilds it.
func (g *Gui) Rebuild() {
	g.batch.SetDirty()
}

// ScreenOffset returns the accumulated batch offset of this Gui's content,
// i.e. where its local origin lands on screen.
func (g *Gui) ScreenOffset() Vec2 {
	var off Vec2
	for b := g.batch; b != nil; b = b.parent {
		off = off.Add(b.Offset)
	}
	return off
}

// HandleMouse runs an event pass for a pointer event at the window-space
// position p.
func (g *Gui) HandleMouse(action Action, p Vec2) {
	if action == ActionBuild {
		panic("batchui: HandleMouse needs a pointer action")
	}
	g.pointer = p.Sub(g.ScreenOffset())
	switch action {
	case ActionMouseDown:
		g.pointerDown = true
	case ActionMouseUp:
		g.pointerDown = false
	}
	g.run(action)
	if action == ActionMouseUp && g.dragging != nil {
		g.dragging = nil
		g.Rebuild()
	}
}

// --- Pass state ---

// IsBuilding reports whether the current pass records draw commands.
func (g *Gui) IsBuilding() bool { return g.action == ActionBuild }

// Action returns the kind of the current pass.
func (g *Gui) Action() Action { return g.action }

// Width returns the width of the current layout group.
func (g *Gui) Width() float64 { return g.state.right - g.state.left }

// Left returns the left edge of the current layout group.
func (g *Gui) Left() float64 { return g.state.left }

// Bottom returns the layout cursor: the y coordinate where the next rect is
// allocated.
func (g *Gui) Bottom() float64 { return g.state.top }

// Pointer returns the last pointer position in local space.
func (g *Gui) Pointer() Vec2 { return g.pointer }

// --- Layout ---

// AllocateRect reserves a width × height rect at the layout cursor and
// advances the cursor below it.
func (g *Gui) AllocateRect(width, height float64) Rect {
	r := Rect{g.state.left, g.state.top, width, height}
	g.state.top = r.Bottom() + g.Spacing
	return r
}

// AllocateRow reserves a full-width rect of the given height.
func (g *Gui) AllocateRow(height float64) Rect {
	return g.AllocateRect(g.Width(), height)
}

// EnterGroup insets the layout by p until the returned function is called.
// The group's bottom padding is applied when it closes.
func (g *Gui) EnterGroup(p Padding) func() {
	g.stack = append(g.stack, g.state)
	g.state.left += p.Left
	g.state.right -= p.Right
	g.state.top += p.Top
	return func() {
		bottom := g.state.top + p.Bottom
		g.state = g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]
		g.state.top = bottom
	}
}

// EnterRect lays out inside r until the returned function is called. The
// cursor returns to where it was before, so sibling cells can share a top.
func (g *Gui) EnterRect(r Rect) func() {
	g.stack = append(g.stack, g.state)
	g.state = layoutState{left: r.X, right: r.Right(), top: r.Y}
	return func() {
		g.state = g.stack[len(g.stack)-1]
		g.stack = g.stack[:len(g.stack)-1]
	}
}

// --- Drawing (build passes only) ---

// DrawRectangle records a rectangle. No-op outside build passes.
func (g *Gui) DrawRectangle(r Rect, color SchemeColor, shadow RectangleShadow) {
	if g.IsBuilding() {
		g.batch.DrawRectangle(r, color, shadow, nil)
	}
}

// DrawHandle records a rectangle carrying an interactive handle.
func (g *Gui) DrawHandle(r Rect, color SchemeColor, h *Handle) {
	if g.IsBuilding() {
		g.batch.DrawRectangle(r, color, ShadowNone, h)
	}
}

// DrawSprite records an atlas sprite.
func (g *Gui) DrawSprite(r Rect, s Sprite, color SchemeColor) {
	if g.IsBuilding() {
		g.batch.DrawSprite(r, s, color)
	}
}

// DrawRenderable records custom content.
func (g *Gui) DrawRenderable(r Rect, renderable Renderable) {
	if g.IsBuilding() {
		g.batch.DrawRenderable(r, renderable)
	}
}

// DrawPanel nests child at r. The child's content is laid out from its own
// origin, which is placed at r's corner.
func (g *Gui) DrawPanel(r Rect, child *Batch, h *Handle) {
	if g.IsBuilding() {
		child.Offset = r.Position()
		g.batch.DrawSubBatch(r, child, h)
	}
}

// BuildText lays out content wrapped to the group width.
func (g *Gui) BuildText(content string) {
	lh := g.Font.LineHeight()
	for _, line := range wrapText(g.Font, content, g.Width()) {
		w, _ := g.Font.MeasureString(line)
		r := g.AllocateRect(w, lh)
		if g.IsBuilding() && line != "" {
			g.batch.DrawRenderable(r, &Label{Content: line, Font: g.Font, Color: g.TextColor})
		}
	}
}

// --- Drag and drop ---

// InitiateDrag starts dragging obj when a press lands inside moveHandle.
// contentRect is the area that visually moves with the pointer. While obj is
// being dragged, build passes paint contentRect with bg.
func (g *Gui) InitiateDrag(moveHandle, contentRect Rect, obj any, bg SchemeColor) bool {
	if obj == nil {
		return false
	}
	if g.action == ActionMouseDown && g.dragging == nil && moveHandle.ContainsPoint(g.pointer) {
		g.dragging = obj
		g.dragRect = contentRect
		g.dragGrab = g.pointer.Sub(contentRect.Position())
		g.Rebuild()
		return true
	}
	if g.IsBuilding() && g.dragging == obj {
		g.dragRect = contentRect
		g.batch.DrawRect(contentRect, bg)
	}
	return false
}

// ConsumeDrag reports whether the dragged object, held at the pointer, now
// covers anchor. obj is the element anchor belongs to; an object never
// consumes its own drag.
func (g *Gui) ConsumeDrag(anchor Vec2, obj any) bool {
	if g.action != ActionMouseDrag || g.dragging == nil || g.dragging == obj {
		return false
	}
	held := g.dragRect
	held.X = g.pointer.X - g.dragGrab.X
	held.Y = g.pointer.Y - g.dragGrab.Y
	if !held.ContainsPoint(anchor) {
		return false
	}
	g.Rebuild()
	return true
}

// IsDragging reports whether a drag is in flight with the button held.
func (g *Gui) IsDragging() bool {
	return g.dragging != nil && g.pointerDown
}

// DraggingObject returns the object being dragged, or nil.
func (g *Gui) DraggingObject() any {
	return g.dragging
}

// DraggingAs returns the dragged object as T.
func DraggingAs[T any](g *Gui) (T, bool) {
	v, ok := g.dragging.(T)
	return v, ok
}
