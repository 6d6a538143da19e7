package batchui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T, level log.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewLogger(&buf, level))
	t.Cleanup(func() { SetLogger(prev) })
	return &buf
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	prev := Logger()
	SetLogger(nil)
	assert.Same(t, prev, Logger())
}

func TestDebugLogFrameStats(t *testing.T) {
	buf := captureLog(t, log.DebugLevel)
	w := newTestWindow(t, func(*Gui) {})
	w.debugLog(frameStats{rebuilt: true, presentTime: time.Millisecond, draw: DrawStats{Fills: 12, ColorChanges: 3}})
	out := buf.String()
	assert.Contains(t, out, "frame")
	assert.Contains(t, out, "fills=12")
	assert.NotContains(t, out, "coalescing")
}

func TestDebugLogWarnsOnColorChurn(t *testing.T) {
	buf := captureLog(t, log.WarnLevel)
	w := newTestWindow(t, func(*Gui) {})
	w.debugLog(frameStats{draw: DrawStats{Fills: 100, ColorChanges: 90}})
	assert.Contains(t, buf.String(), "poor color coalescing")
}

func TestDebugWindowRegistersFPSOverlay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	w, err := NewWindow(cfg, func(*Gui) {})
	require.NoError(t, err)
	require.NotNil(t, w.fps)
	assert.Contains(t, w.animators, Animator(w.fps))

	w, err = NewWindow(DefaultConfig(), func(*Gui) {})
	require.NoError(t, err)
	assert.Nil(t, w.fps)
}

func TestFPSOverlayRefreshInterval(t *testing.T) {
	var o fpsOverlay
	assert.False(t, o.Update(0.2))
	assert.True(t, o.Update(0.4), "first refresh sets the label")
	assert.Contains(t, o.label, "FPS:")
	assert.Zero(t, o.elapsed)
}
