package batchui

// syntheticPointerEvent is a single injected pointer sample in window
// space, dispatched exactly like real mouse input.
type syntheticPointerEvent struct {
	pos     Vec2
	pressed bool
	button  MouseButton
	wheel   Vec2 // non-zero for a wheel event; the button state is untouched
}

// InjectPress queues a left-button press at (x, y). Injected events are
// consumed one per frame ahead of the real mouse.
func (w *Window) InjectPress(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, pressed: true, button: MouseButtonLeft})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to drag.
func (w *Window) InjectMove(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, pressed: true, button: MouseButtonLeft})
}

// InjectRelease queues a left-button release at (x, y).
func (w *Window) InjectRelease(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, button: MouseButtonLeft})
}

// InjectClick queues a press and release at the same point. Consumes two
// frames.
func (w *Window) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
}

// InjectRightClick queues a right-button press and release at (x, y).
func (w *Window) InjectRightClick(x, y float64) {
	w.injectQueue = append(w.injectQueue,
		syntheticPointerEvent{pos: Vec2{x, y}, pressed: true, button: MouseButtonRight},
		syntheticPointerEvent{pos: Vec2{x, y}, button: MouseButtonRight},
	)
}

// InjectScroll queues a wheel movement of (dx, dy) notches at (x, y).
func (w *Window) InjectScroll(x, y, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{pos: Vec2{x, y}, wheel: Vec2{dx, dy}})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). frames is at least 2.
func (w *Window) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		w.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	w.InjectRelease(toX, toY)
}

// processInjectedInput pops one queued event and dispatches it. It reports
// whether an event was consumed, in which case the real mouse is skipped.
func (w *Window) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	evt := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]

	if evt.wheel != (Vec2{}) {
		w.processWheel(evt.pos, evt.wheel.X, evt.wheel.Y)
		return true
	}
	w.processPointer(evt.pos, evt.pressed, evt.button)
	return true
}
