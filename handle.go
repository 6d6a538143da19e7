package batchui

// Capability is a bit set of the interactions a Handle responds to.
type Capability uint8

const (
	CapMouseDown  Capability = 1 << iota // press, release and click
	CapMouseOver                         // enter / exit hover tracking
	CapScroll                            // wheel input
	CapDrag                              // drag start, move and end
	CapRightClick                        // context menu button
)

// Has reports whether c includes every bit of want. An empty want never
// matches.
func (c Capability) Has(want Capability) bool {
	return want != 0 && c&want == want
}

// MouseContext carries pointer event data for Handle callbacks.
type MouseContext struct {
	Handle   *Handle
	Position Vec2 // window-space pointer position
	Button   MouseButton
	UserData any
}

// ScrollContext carries wheel data.
type ScrollContext struct {
	Handle   *Handle
	Position Vec2
	DeltaX   float64
	DeltaY   float64
	UserData any
}

// DragContext carries drag event data.
type DragContext struct {
	Handle   *Handle
	Position Vec2
	Start    Vec2
	Delta    Vec2
	UserData any
}

// Handle is the interactive element attached to rectangles and sub-batches.
// Batches look handles up during Raycast; they never own them. The
// capability set is derived from which callbacks are non-nil (zero cost
// when unused).
type Handle struct {
	Name     string
	UserData any

	OnMouseDown  func(MouseContext)
	OnMouseUp    func(MouseContext)
	OnClick      func(MouseContext)
	OnRightClick func(MouseContext)
	OnMouseEnter func(MouseContext)
	OnMouseExit  func(MouseContext)
	OnScroll     func(ScrollContext)
	OnDragStart  func(DragContext)
	OnDrag       func(DragContext)
	OnDragEnd    func(DragContext)
}

// Capabilities returns the interaction kinds h responds to. A nil handle has
// no capabilities.
func (h *Handle) Capabilities() Capability {
	if h == nil {
		return 0
	}
	var c Capability
	if h.OnMouseDown != nil || h.OnMouseUp != nil || h.OnClick != nil {
		c |= CapMouseDown
	}
	if h.OnRightClick != nil {
		c |= CapRightClick
	}
	if h.OnMouseEnter != nil || h.OnMouseExit != nil {
		c |= CapMouseOver
	}
	if h.OnScroll != nil {
		c |= CapScroll
	}
	if h.OnDragStart != nil || h.OnDrag != nil || h.OnDragEnd != nil {
		c |= CapDrag
	}
	return c
}
