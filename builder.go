package batchui

// Builder is the immediate-mode surface widgets lay out and draw into.
// *Gui implements it; widgets accept the interface so they can be driven
// by a recording fake in tests.
type Builder interface {
	IsBuilding() bool
	Width() float64
	Left() float64
	Bottom() float64
	AllocateRect(width, height float64) Rect
	EnterGroup(p Padding) func()
	EnterRect(r Rect) func()
	DrawRectangle(r Rect, color SchemeColor, shadow RectangleShadow)
	BuildText(content string)
	Rebuild()

	IsDragging() bool
	InitiateDrag(moveHandle, contentRect Rect, obj any, bg SchemeColor) bool
	ConsumeDrag(anchor Vec2, obj any) bool
	DraggingObject() any
}

var _ Builder = (*Gui)(nil)
