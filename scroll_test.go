package batchui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScrollArea(contentHeight float64) (*ScrollArea, *Gui) {
	content := NewGui(func(g *Gui) { g.AllocateRow(contentHeight) })
	area := NewScrollArea(content.Batch())
	host := NewGui(func(g *Gui) {
		g.AllocateRow(10)
		area.Draw(g, Rect{0, 10, 200, 100})
	})
	host.Batch().Rebuild(Size{200, 110})
	host.Batch().Present(&recordingRenderer{}, Vec2{}, Rect{0, 0, 200, 110})
	return area, host
}

func TestScrollAreaPlacement(t *testing.T) {
	area, host := newTestScrollArea(300)
	assert.True(t, area.Batch().Clip)
	assert.Same(t, host.Batch(), area.Batch().Parent())
	assert.Equal(t, Vec2{0, 10}, area.Batch().Offset)
	assert.Equal(t, 200.0, area.MaxScroll())
	assert.Same(t, area.Handle(), host.Batch().Raycast(Vec2{50, 50}, CapScroll))
}

func TestScrollAreaEasesAndClamps(t *testing.T) {
	area, _ := newTestScrollArea(300)
	area.ScrollBy(80)
	assert.Zero(t, area.Scroll(), "nothing moves until Update")

	assert.True(t, area.Update(0.05))
	assert.Greater(t, area.Scroll(), 0.0)
	assert.Less(t, area.Scroll(), 80.0)

	for area.Update(0.05) {
	}
	assert.Equal(t, 80.0, area.Scroll())
	assert.Equal(t, Vec2{0, 10 - 80}, area.Batch().Offset)
	assert.False(t, area.Update(0.05))

	area.Duration = 0
	area.ScrollTo(1000)
	assert.Equal(t, 200.0, area.Scroll())
	area.ScrollTo(-50)
	assert.Zero(t, area.Scroll())
}

func TestScrollAreaWheelHandle(t *testing.T) {
	area, host := newTestScrollArea(300)
	area.Duration = 0
	h := host.Batch().Raycast(Vec2{50, 50}, CapScroll)
	require.NotNil(t, h)
	h.OnScroll(ScrollContext{DeltaY: -40})
	assert.Equal(t, 40.0, area.Scroll())
}

func TestScrollAreaShortContent(t *testing.T) {
	area, _ := newTestScrollArea(50)
	assert.Zero(t, area.MaxScroll())
	area.ScrollBy(30)
	assert.False(t, area.Update(0.1))
	assert.Zero(t, area.Scroll())
}

// striped builds a scroll area at (0, 10, 200, 100) whose content has 30-high
// primary stripes every 40 pixels, 280 in total.
func striped() (*ScrollArea, *Gui, *Gui) {
	content := NewGui(func(g *Gui) {
		for range 7 {
			r := g.AllocateRow(40)
			g.DrawRectangle(Rect{r.X, r.Y, r.Width, 30}, SchemePrimary, ShadowNone)
		}
	})
	area := NewScrollArea(content.Batch())
	area.Duration = 0
	host := NewGui(func(g *Gui) {
		g.AllocateRow(10)
		area.Draw(g, Rect{0, 10, 200, 100})
	})
	host.Batch().Rebuild(Size{200, 110})
	return area, content, host
}

func TestScrollAreaPresentsGuiContent(t *testing.T) {
	area, content, host := striped()
	r := &recordingRenderer{}
	host.Batch().Present(r, Vec2{}, Rect{0, 0, 200, 110})
	assert.Same(t, content.Batch(), area.Batch())
	assert.ElementsMatch(t, []Rect{{0, 10, 200, 30}, {0, 50, 200, 30}, {0, 90, 200, 30}}, r.fills())

	area.ScrollTo(90)
	r = &recordingRenderer{}
	host.Batch().Present(r, Vec2{}, Rect{0, 0, 200, 110})
	assert.ElementsMatch(t, []Rect{{0, 0, 200, 30}, {0, 40, 200, 30}, {0, 80, 200, 30}}, r.fills())
}

func TestScrollAreaContentRebuildDirtiesHost(t *testing.T) {
	area, content, host := striped()
	host.Batch().Present(&recordingRenderer{}, Vec2{}, Rect{0, 0, 200, 110})
	require.False(t, area.Batch().Dirty())
	require.False(t, host.Batch().Dirty())

	content.Rebuild()
	assert.True(t, area.Batch().Dirty())
	assert.True(t, host.Batch().Dirty())
}

func TestScrollAreaContentScreenOffset(t *testing.T) {
	area, content, host := striped()
	host.Batch().Present(&recordingRenderer{}, Vec2{}, Rect{0, 0, 200, 110})
	assert.Equal(t, Vec2{0, 10}, content.ScreenOffset())

	area.ScrollTo(90)
	assert.Equal(t, Vec2{0, -80}, content.ScreenOffset())
	content.HandleMouse(ActionMouseMove, Vec2{5, 20})
	assert.Equal(t, Vec2{5, 100}, content.Pointer())
}

func TestGuiBuildsOnlyIntoOwnBatch(t *testing.T) {
	content := NewGui(func(g *Gui) { g.AllocateRow(10) })
	assert.Panics(t, func() { NewBatch(content).Rebuild(Size{100, 100}) })
	assert.Panics(t, func() { NewScrollArea(nil) })
}
