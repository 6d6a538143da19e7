package batchui

import (
	"bytes"
	"math"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animator is advanced once per frame by the Window. Update reports whether
// the animation changed anything that needs presenting.
type Animator interface {
	Update(dt float32) bool
}

// Window hosts a root Gui as an ebiten game. All methods except Post must be
// called on the UI goroutine, which is the goroutine ebiten runs Update and
// Draw on.
type Window struct {
	cfg     Config
	palette Palette
	root    *Gui
	screen  *Screen
	size    Size

	uiGoroutine atomic.Uint64
	postMu      sync.Mutex
	posted      []func()

	repaint     bool
	nextRepaint time.Time
	lastUpdate  time.Time

	guis      []*Gui
	animators []Animator

	pointer     pointerState
	hover       *Handle
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	screenshotQueue []string
	fps             *fpsOverlay
}

// NewWindow creates a window whose content is produced by build. The
// palette is built from cfg and the root Gui is tracked for pointer events.
func NewWindow(cfg Config, build func(g *Gui)) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := cfg.BuildPalette()
	if err != nil {
		return nil, err
	}
	w := &Window{
		cfg:     cfg,
		palette: palette,
		root:    NewGui(build),
		size:    Size{float64(cfg.Width), float64(cfg.Height)},
		repaint: true,
	}
	w.screen = NewScreen(nil, &w.palette, nil)
	w.guis = append(w.guis, w.root)
	if cfg.Debug {
		w.fps = &fpsOverlay{}
		w.animators = append(w.animators, w.fps)
	}
	return w, nil
}

// Root returns the root Gui.
func (w *Window) Root() *Gui { return w.root }

// Config returns the window settings.
func (w *Window) Config() Config { return w.cfg }

// Palette returns the palette used to resolve scheme colors.
func (w *Window) Palette() *Palette { return &w.palette }

// Size returns the logical size of the window content.
func (w *Window) Size() Size { return w.size }

// SetAtlas sets the sprite atlas used by DrawSprite.
func (w *Window) SetAtlas(atlas *SpriteAtlas) {
	w.screen.atlas = atlas
}

// Track forwards pointer events to g in addition to the root Gui. Nested
// Guis drawn with DrawPanel must be tracked to receive drag events.
func (w *Window) Track(g *Gui) {
	for _, t := range w.guis {
		if t == g {
			return
		}
	}
	w.guis = append(w.guis, g)
}

// Animate registers a per-frame animation.
func (w *Window) Animate(a Animator) {
	w.animators = append(w.animators, a)
}

// Repaint requests that the next frame presents the batch tree even when
// nothing is dirty. It panics when called off the UI goroutine; use Post
// from other goroutines. The UI goroutine is whichever one runs the first
// Update or Draw, so calls made before the loop starts are not checked.
func (w *Window) Repaint() {
	w.checkUIGoroutine("Repaint")
	w.repaint = true
}

// SetNextRepaint schedules a repaint at t. When several are scheduled only
// the earliest is kept. It is guarded like Repaint.
func (w *Window) SetNextRepaint(t time.Time) {
	w.checkUIGoroutine("SetNextRepaint")
	if w.nextRepaint.IsZero() || t.Before(w.nextRepaint) {
		w.nextRepaint = t
	}
}

// Post queues fn to run on the UI goroutine at the start of the next Update.
// It is safe to call from any goroutine.
func (w *Window) Post(fn func()) {
	if fn == nil {
		return
	}
	w.postMu.Lock()
	w.posted = append(w.posted, fn)
	w.postMu.Unlock()
}

func (w *Window) runPosted() {
	w.postMu.Lock()
	posted := w.posted
	w.posted = nil
	w.postMu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

// bindUIGoroutine records the calling goroutine as the UI goroutine the
// first time it is called.
func (w *Window) bindUIGoroutine() {
	if w.uiGoroutine.Load() == 0 {
		w.uiGoroutine.CompareAndSwap(0, goroutineID())
	}
}

// checkUIGoroutine panics when the UI goroutine is known and the caller is
// a different goroutine.
func (w *Window) checkUIGoroutine(op string) {
	id := w.uiGoroutine.Load()
	if id != 0 && id != goroutineID() {
		panic("batchui: " + op + " called off the UI goroutine")
	}
}

// goroutineID parses the current goroutine id from the stack header
// "goroutine 18 [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("batchui: cannot parse goroutine id: " + err.Error())
	}
	return id
}

// --- ebiten.Game ---

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.bindUIGoroutine()
	now := time.Now()
	dt := float32(1.0 / float64(ebiten.TPS()))
	if !w.lastUpdate.IsZero() {
		dt = float32(now.Sub(w.lastUpdate).Seconds())
	}
	w.lastUpdate = now
	w.advance(now, dt)
	w.processInput()
	if r := w.testRunner; r != nil && r.ExitWhenDone && r.Done() && len(w.screenshotQueue) == 0 {
		logger.Info("test script finished")
		return ebiten.Termination
	}
	return nil
}

// advance runs everything in Update that does not read the real mouse.
func (w *Window) advance(now time.Time, dt float32) {
	w.runPosted()
	if !w.nextRepaint.IsZero() && !now.Before(w.nextRepaint) {
		w.nextRepaint = time.Time{}
		w.repaint = true
	}
	for _, a := range w.animators {
		if a.Update(dt) {
			w.repaint = true
		}
	}
	if w.testRunner != nil {
		w.testRunner.step(w)
	}
}

// processInput feeds one pointer sample to the dispatcher, preferring
// injected events over the real mouse.
func (w *Window) processInput() {
	if w.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := Vec2{float64(mx), float64(my)}

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	w.processPointer(p, pressed, button)

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		w.processWheel(p, dx, dy)
	}
}

// Draw implements ebiten.Game. The screen keeps its content between frames;
// a frame with nothing dirty and no repaint request draws nothing.
func (w *Window) Draw(target *ebiten.Image) {
	w.bindUIGoroutine()
	b := target.Bounds()
	size := Size{float64(b.Dx()), float64(b.Dy())}
	w.size = size
	root := w.root.Batch()
	resized := root.BuildSize() != size
	if !w.repaint && !root.Dirty() && !resized && len(w.screenshotQueue) == 0 {
		return
	}

	start := time.Now()
	rebuilt := root.Dirty() || resized
	if rebuilt {
		root.Rebuild(size)
	}
	target.Fill(w.palette.Color(SchemeBackground).toRGBA())
	w.screen.Reset(target)
	root.Present(w.screen, Vec2{}, Rect{0, 0, size.Width, size.Height})
	w.repaint = false

	if w.cfg.Debug {
		w.debugLog(frameStats{
			rebuilt:     rebuilt,
			presentTime: time.Since(start),
			content:     root.ContentSize(),
			draw:        w.screen.Stats(),
		})
	}
	w.flushScreenshots(target)
	if w.fps != nil {
		w.fps.draw(target)
	}
}

// Layout implements ebiten.Game. The logical size is the outside size
// divided by the configured scale.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := w.cfg.Scale
	return int(math.Ceil(float64(outsideWidth) / scale)), int(math.Ceil(float64(outsideHeight) / scale))
}

// Run opens the OS window and blocks until it is closed.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowSize(int(float64(w.cfg.Width)*w.cfg.Scale), int(float64(w.cfg.Height)*w.cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	logger.Info("window opened", "title", w.cfg.Title, "width", w.cfg.Width, "height", w.cfg.Height)
	return ebiten.RunGame(w)
}
