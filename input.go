package batchui

import "math"

const defaultDragDeadZone = 4.0 // pixels

// pointerState tracks the mouse between frames.
type pointerState struct {
	down     bool
	start    Vec2
	last     Vec2
	button   MouseButton // captured at press time
	pressed  *Handle     // CapMouseDown (or CapRightClick) handle under the press
	dragged  *Handle     // CapDrag handle under the press
	dragging bool
}

// processPointer runs the pointer state machine for one sample in window
// space. Handles are found by raycasting the root batch; every tracked Gui
// also gets an event pass so its drag protocol sees the pointer.
func (w *Window) processPointer(p Vec2, pressed bool, button MouseButton) {
	ps := &w.pointer
	root := w.root.Batch()

	// Hover enter/exit when the topmost hover handle changes.
	if hover := root.Raycast(p, CapMouseOver); hover != w.hover {
		if w.hover != nil && w.hover.OnMouseExit != nil {
			w.hover.OnMouseExit(w.mouseContext(w.hover, p, button))
		}
		if hover != nil && hover.OnMouseEnter != nil {
			hover.OnMouseEnter(w.mouseContext(hover, p, button))
		}
		w.hover = hover
	}

	switch {
	case pressed && !ps.down:
		want := CapMouseDown
		if button == MouseButtonRight {
			want = CapRightClick
		}
		*ps = pointerState{
			down:    true,
			start:   p,
			last:    p,
			button:  button,
			pressed: root.Raycast(p, want),
			dragged: root.Raycast(p, CapDrag),
		}
		if h := ps.pressed; h != nil && h.OnMouseDown != nil {
			h.OnMouseDown(w.mouseContext(h, p, button))
		}
		if button == MouseButtonLeft {
			w.dispatchGui(ActionMouseDown, p)
		}

	case !pressed && ps.down:
		if ps.dragging {
			if h := ps.dragged; h.OnDragEnd != nil {
				h.OnDragEnd(w.dragContext(h, p))
			}
		} else if h := ps.pressed; h != nil {
			want := CapMouseDown
			if ps.button == MouseButtonRight {
				want = CapRightClick
			}
			if root.Raycast(p, want) == h {
				if ps.button == MouseButtonRight {
					h.OnRightClick(w.mouseContext(h, p, ps.button))
				} else if h.OnClick != nil {
					h.OnClick(w.mouseContext(h, p, ps.button))
				}
			}
		}
		if h := ps.pressed; h != nil && h.OnMouseUp != nil {
			h.OnMouseUp(w.mouseContext(h, p, ps.button))
		}
		if ps.button == MouseButtonLeft {
			w.dispatchGui(ActionMouseUp, p)
		}
		*ps = pointerState{last: p}

	case pressed && ps.down:
		if p == ps.last {
			return
		}
		if ps.dragged != nil && !ps.dragging {
			d := p.Sub(ps.start)
			if math.Hypot(d.X, d.Y) > defaultDragDeadZone {
				ps.dragging = true
				if ps.dragged.OnDragStart != nil {
					ps.dragged.OnDragStart(w.dragContext(ps.dragged, p))
				}
			}
		}
		if ps.dragging && ps.dragged.OnDrag != nil {
			ps.dragged.OnDrag(w.dragContext(ps.dragged, p))
		}
		ps.last = p
		if ps.button == MouseButtonLeft {
			w.dispatchGui(ActionMouseDrag, p)
		}

	default:
		if p == ps.last {
			return
		}
		ps.last = p
		w.dispatchGui(ActionMouseMove, p)
	}
}

// processWheel sends a wheel step to the topmost scroll handle.
func (w *Window) processWheel(p Vec2, dx, dy float64) {
	h := w.root.Batch().Raycast(p, CapScroll)
	if h == nil {
		return
	}
	h.OnScroll(ScrollContext{
		Handle:   h,
		Position: p,
		DeltaX:   dx * w.cfg.ScrollSpeed,
		DeltaY:   dy * w.cfg.ScrollSpeed,
		UserData: h.UserData,
	})
}

func (w *Window) dispatchGui(action Action, p Vec2) {
	for _, g := range w.guis {
		g.HandleMouse(action, p)
	}
}

func (w *Window) mouseContext(h *Handle, p Vec2, button MouseButton) MouseContext {
	return MouseContext{Handle: h, Position: p, Button: button, UserData: h.UserData}
}

func (w *Window) dragContext(h *Handle, p Vec2) DragContext {
	return DragContext{
		Handle:   h,
		Position: p,
		Start:    w.pointer.start,
		Delta:    p.Sub(w.pointer.last),
		UserData: h.UserData,
	}
}
