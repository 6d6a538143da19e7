package batchui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGui(g *Gui, width float64) {
	g.Batch().Rebuild(Size{width, 1000})
}

func TestGuiAllocatesTopToBottom(t *testing.T) {
	var rects []Rect
	g := NewGui(func(g *Gui) {
		rects = rects[:0]
		rects = append(rects, g.AllocateRow(20))
		rects = append(rects, g.AllocateRect(50, 10))
	})
	g.Spacing = 2
	buildGui(g, 300)

	assert.Equal(t, []Rect{{0, 0, 300, 20}, {0, 22, 50, 10}}, rects)
	assert.Equal(t, Size{300, 34}, g.Batch().ContentSize())
}

func TestGuiEnterGroup(t *testing.T) {
	var inner Rect
	var after float64
	g := NewGui(func(g *Gui) {
		done := g.EnterGroup(Padding{Left: 10, Top: 5, Right: 20, Bottom: 7})
		inner = g.AllocateRow(30)
		done()
		after = g.Bottom()
	})
	buildGui(g, 200)
	assert.Equal(t, Rect{10, 5, 170, 30}, inner)
	assert.Equal(t, 42.0, after)
	assert.Equal(t, Padding{4, 4, 4, 4}, PadAll(4))
}

func TestGuiEnterRectRestoresCursor(t *testing.T) {
	var cell Rect
	var bottom, left float64
	g := NewGui(func(g *Gui) {
		g.AllocateRow(10)
		done := g.EnterRect(Rect{40, 10, 60, 0})
		cell = g.AllocateRow(25)
		done()
		bottom, left = g.Bottom(), g.Left()
	})
	buildGui(g, 200)
	assert.Equal(t, Rect{40, 10, 60, 25}, cell)
	assert.Equal(t, 10.0, bottom)
	assert.Zero(t, left)
}

func TestGuiDrawsOnlyInBuildPasses(t *testing.T) {
	var actions []Action
	g := NewGui(func(g *Gui) {
		actions = append(actions, g.Action())
		g.DrawRectangle(g.AllocateRow(10), SchemeGrey, ShadowNone)
		g.DrawSprite(g.AllocateRow(10), 1, SchemeGrey)
	})
	buildGui(g, 100)
	require.Equal(t, 2, g.Batch().Len())

	g.HandleMouse(ActionMouseMove, Vec2{5, 5})
	assert.Equal(t, 2, g.Batch().Len())
	assert.Equal(t, []Action{ActionBuild, ActionMouseMove}, actions)
	assert.True(t, g.IsBuilding(), "action resets after an event pass")
	assert.Panics(t, func() { g.HandleMouse(ActionBuild, Vec2{}) })
}

func TestGuiBuildText(t *testing.T) {
	g := NewGui(func(g *Gui) {
		g.BuildText("alpha beta gamma")
	})
	g.Font = FixedFont{Advance: 10, Height: 12}
	buildGui(g, 110)
	assert.Equal(t, 2, len(g.Batch().renderables))
	assert.Equal(t, 24.0, g.Batch().ContentSize().Height)
	label := g.Batch().renderables[0].renderable.(*Label)
	assert.Equal(t, "alpha beta", label.Content)
}

func TestGuiRebuildMarksBatchDirty(t *testing.T) {
	g := NewGui(func(g *Gui) {})
	buildGui(g, 100)
	require.False(t, g.Batch().Dirty())
	g.Rebuild()
	assert.True(t, g.Batch().Dirty())
}

func TestGuiPanelPlacesChild(t *testing.T) {
	child := NewGui(func(g *Gui) { g.AllocateRow(5) })
	parent := NewGui(func(g *Gui) {
		g.AllocateRow(30)
		g.DrawPanel(Rect{20, 30, 100, 50}, child.Batch(), nil)
	})
	buildGui(parent, 200)
	assert.Same(t, parent.Batch(), child.Batch().Parent())
	assert.Equal(t, Vec2{20, 30}, child.ScreenOffset())

	child.HandleMouse(ActionMouseMove, Vec2{25, 45})
	assert.Equal(t, Vec2{5, 15}, child.Pointer())
}

// dragList lays out three 20-high items; the item under a press starts a
// drag and items covered by the held rect are reported.
type dragList struct {
	items    []string
	consumed []string
	started  string
}

func (d *dragList) build(g *Gui) {
	for _, item := range d.items {
		r := g.AllocateRow(20)
		if g.InitiateDrag(r, r, item, SchemeGrey) {
			d.started = item
		} else if g.ConsumeDrag(r.Center(), item) {
			d.consumed = append(d.consumed, item)
		}
	}
}

func TestGuiDragProtocol(t *testing.T) {
	d := &dragList{items: []string{"a", "b", "c"}}
	g := NewGui(d.build)
	buildGui(g, 100)

	g.HandleMouse(ActionMouseDown, Vec2{10, 5})
	assert.Equal(t, "a", d.started)
	assert.True(t, g.IsDragging())
	assert.Equal(t, "a", g.DraggingObject())
	v, ok := DraggingAs[string](g)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.True(t, g.Batch().Dirty())

	// Grabbed 5 below the top; the held rect spans 40..60 and covers c at 50.
	g.HandleMouse(ActionMouseDrag, Vec2{10, 45})
	assert.Equal(t, []string{"c"}, d.consumed)

	// A second press while dragging does not start another drag.
	d.started = ""
	g.HandleMouse(ActionMouseDown, Vec2{10, 25})
	assert.Empty(t, d.started)

	g.HandleMouse(ActionMouseUp, Vec2{10, 45})
	assert.False(t, g.IsDragging())
	assert.Nil(t, g.DraggingObject())
}

func TestGuiDragHighlightsHeldItem(t *testing.T) {
	d := &dragList{items: []string{"a", "b"}}
	g := NewGui(d.build)
	buildGui(g, 100)
	assert.Empty(t, g.Batch().rects)

	g.HandleMouse(ActionMouseDown, Vec2{10, 25})
	buildGui(g, 100)
	require.Len(t, g.Batch().rects, 1)
	assert.Equal(t, Rect{0, 20, 100, 20}, g.Batch().rects[0].rect)
}

func TestGuiNilDragObject(t *testing.T) {
	g := NewGui(func(g *Gui) {
		r := g.AllocateRow(20)
		assert.False(t, g.InitiateDrag(r, r, nil, SchemeGrey))
	})
	buildGui(g, 100)
	g.HandleMouse(ActionMouseDown, Vec2{5, 5})
	assert.False(t, g.IsDragging())
}
