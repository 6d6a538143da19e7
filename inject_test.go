package batchui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectClick(t *testing.T) {
	l := &handleLog{}
	w := newTestWindow(t, twoButtons(l))

	w.InjectClick(20, 20)
	require.Len(t, w.injectQueue, 2)

	// Frame 1: press
	require.True(t, w.processInjectedInput())
	assert.Len(t, w.injectQueue, 1)
	assert.NotContains(t, l.events, "a click")

	// Frame 2: release fires the click
	require.True(t, w.processInjectedInput())
	assert.Empty(t, w.injectQueue)
	assert.Contains(t, l.events, "a click")

	assert.False(t, w.processInjectedInput(), "empty queue")
}

func TestInjectDrag(t *testing.T) {
	w := newTestWindow(t, func(*Gui) {})
	w.InjectDrag(10, 10, 200, 200, 5)
	require.Len(t, w.injectQueue, 5)

	first, last := w.injectQueue[0], w.injectQueue[4]
	assert.Equal(t, Vec2{10, 10}, first.pos)
	assert.True(t, first.pressed)
	assert.Equal(t, Vec2{200, 200}, last.pos)
	assert.False(t, last.pressed)
	assert.InDelta(t, 57.5, w.injectQueue[1].pos.X, 1e-9)
	assert.InDelta(t, 152.5, w.injectQueue[3].pos.Y, 1e-9)
	for _, evt := range w.injectQueue[1:4] {
		assert.True(t, evt.pressed)
	}
}

func TestInjectDragMinFrames(t *testing.T) {
	w := newTestWindow(t, func(*Gui) {})
	w.InjectDrag(0, 0, 10, 10, 0)
	assert.Len(t, w.injectQueue, 2)
}

func TestInjectedDragMovesGuiItems(t *testing.T) {
	d := &dragList{items: []string{"a", "b", "c"}}
	w := newTestWindow(t, d.build)
	w.InjectPress(10, 5)
	w.InjectMove(10, 45)
	w.InjectRelease(10, 45)
	for w.processInjectedInput() {
	}
	assert.Equal(t, "a", d.started)
	assert.Equal(t, []string{"c"}, d.consumed)
	assert.False(t, w.Root().IsDragging())
}
