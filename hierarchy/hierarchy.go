package hierarchy

import (
	"slices"

	"github.com/phanxgames/batchui"
)

// Tree is the capability set a FlatHierarchy needs from a concrete row/group
// model. The zero values of R and G mean "no row" and "no group"; a real row
// or group must never be the zero value (use pointer types).
type Tree[R, G comparable] interface {
	// Expanded reports whether the children of group are shown.
	Expanded(group G) bool
	// Subgroup returns the group row owns, or the zero G.
	Subgroup(row R) G
	// Elements returns the rows of group in display order.
	Elements(group G) []R
	// Owner returns the group row belongs to.
	Owner(row R) G
	// SetOwner reassigns row to owner. The element lists are edited
	// separately through RecordUndo.
	SetOwner(row R, owner G)
	// Filter reports whether row is displayed. A hidden row hides its
	// whole subtree.
	Filter(row R) bool
	// RecordUndo snapshots group for undo and returns its element list for
	// editing. All calls made while handling one drop form one undo step.
	RecordUndo(group G) *[]R
}

// Grid lays out the rows of a FlatHierarchy.
type Grid[R any] interface {
	Width() float64
	BuildHeader(b batchui.Builder)
	BeginBuildingContent(b batchui.Builder)
	BuildRow(b batchui.Builder, row R, indent float64) batchui.Rect
	EndBuildingContent(b batchui.Builder) batchui.Rect
}

// Options tunes the layout of a FlatHierarchy. Zero fields use defaults.
type Options[G any] struct {
	// IndentStep is the horizontal indent per nesting level.
	IndentStep float64
	// GroupPadding pads the empty-group message and table header.
	GroupPadding float64
	// CloseGap is the vertical space left after a group's last row.
	CloseGap float64
	// EmptyGroupMessage is shown under an expanded group with no rows.
	EmptyGroupMessage string
	// TableHeader, when set, is built under every expanded group's row.
	TableHeader func(b batchui.Builder, group G)
}

const (
	defaultIndentStep   = 8
	defaultGroupPadding = 4
	defaultCloseGap     = 4
)

// FlatHierarchy caches the flattened form of a Tree and draws it. The
// flattening is rebuilt lazily after SetData or Invalidate.
type FlatHierarchy[R, G comparable] struct {
	tree Tree[R, G]
	grid Grid[R]
	opts Options[G]
	root G

	// Parallel sequences. rows[i] is the zero R for close markers.
	// groups[i] is the bracketed subgroup for open and close entries, and
	// the owning group for plain rows (zero at the top level). match[i] is
	// the partner index of a bracket entry, -1 for plain rows.
	rows   []R
	groups []G
	match  []int

	rebuildRequired bool
	dragging        R
	depthStart      []float64
}

// New creates a FlatHierarchy over tree whose rows are laid out by grid.
func New[R, G comparable](tree Tree[R, G], grid Grid[R], opts Options[G]) *FlatHierarchy[R, G] {
	if tree == nil || grid == nil {
		panic("hierarchy: tree and grid are required")
	}
	if opts.IndentStep == 0 {
		opts.IndentStep = defaultIndentStep
	}
	if opts.GroupPadding == 0 {
		opts.GroupPadding = defaultGroupPadding
	}
	if opts.CloseGap == 0 {
		opts.CloseGap = defaultCloseGap
	}
	return &FlatHierarchy[R, G]{tree: tree, grid: grid, opts: opts}
}

// SetData replaces the displayed root group.
func (h *FlatHierarchy[R, G]) SetData(root G) {
	h.root = root
	h.rebuildRequired = true
}

// Root returns the displayed root group.
func (h *FlatHierarchy[R, G]) Root() G { return h.root }

// Invalidate marks the flattening stale. Call it after changing group
// membership or expansion state outside of a drop.
func (h *FlatHierarchy[R, G]) Invalidate() { h.rebuildRequired = true }

// RebuildRequired reports whether the flattening is stale.
func (h *FlatHierarchy[R, G]) RebuildRequired() bool { return h.rebuildRequired }

// Width returns the grid width.
func (h *FlatHierarchy[R, G]) Width() float64 { return h.grid.Width() }

// BuildHeader builds the grid header.
func (h *FlatHierarchy[R, G]) BuildHeader(b batchui.Builder) { h.grid.BuildHeader(b) }

// Dragging returns the row being dragged, or the zero R.
func (h *FlatHierarchy[R, G]) Dragging() R { return h.dragging }

// Len returns the number of flat entries, close markers included.
func (h *FlatHierarchy[R, G]) Len() int { return len(h.rows) }

// At returns flat entry i. closing is true for close markers, whose row is
// the zero R.
func (h *FlatHierarchy[R, G]) At(i int) (row R, group G, closing bool) {
	var zero R
	return h.rows[i], h.groups[i], h.rows[i] == zero
}

// Rows returns the flat row sequence. The slice must not be mutated.
func (h *FlatHierarchy[R, G]) Rows() []R { return h.rows }

// Groups returns the flat group sequence. The slice must not be mutated.
func (h *FlatHierarchy[R, G]) Groups() []G { return h.groups }

// Rebuild flattens the tree from the root.
func (h *FlatHierarchy[R, G]) Rebuild() {
	clear(h.rows)
	clear(h.groups)
	h.rows = h.rows[:0]
	h.groups = h.groups[:0]
	var zero G
	if h.root != zero {
		h.flatten(h.root, zero)
	}
	h.relink()
	h.rebuildRequired = false
}

// flatten appends the rows of group, tagging plain rows with tag.
func (h *FlatHierarchy[R, G]) flatten(group, tag G) {
	var zeroR R
	var zeroG G
	for _, row := range h.tree.Elements(group) {
		h.rows = append(h.rows, row)
		if sub := h.tree.Subgroup(row); sub != zeroG && h.tree.Expanded(sub) {
			h.groups = append(h.groups, sub)
			h.flatten(sub, sub)
			h.rows = append(h.rows, zeroR)
			h.groups = append(h.groups, sub)
		} else {
			h.groups = append(h.groups, tag)
		}
	}
}

// opens reports whether entry i is the open entry of a bracket: a row
// tagged with its own subgroup.
func (h *FlatHierarchy[R, G]) opens(i int) bool {
	var zeroR R
	var zeroG G
	row, group := h.rows[i], h.groups[i]
	return row != zeroR && group != zeroG && h.tree.Subgroup(row) == group
}

// relink recomputes the bracket partner of every open and close entry.
func (h *FlatHierarchy[R, G]) relink() {
	var zeroR R
	if cap(h.match) < len(h.rows) {
		h.match = make([]int, len(h.rows))
	}
	h.match = h.match[:len(h.rows)]
	open := make([]int, 0, 8)
	for i := range h.rows {
		switch {
		case h.rows[i] == zeroR:
			if len(open) == 0 {
				panic("hierarchy: close marker without open entry")
			}
			o := open[len(open)-1]
			open = open[:len(open)-1]
			h.match[o] = i
			h.match[i] = o
		case h.opens(i):
			open = append(open, i)
		default:
			h.match[i] = -1
		}
	}
	if len(open) != 0 {
		panic("hierarchy: unterminated group bracket")
	}
}

func (h *FlatHierarchy[R, G]) indexOf(row R) int {
	return slices.Index(h.rows, row)
}

// moveFlat relocates the entry of from onto the index of to in both
// sequences. The tree itself is untouched until the drop commits.
func (h *FlatHierarchy[R, G]) moveFlat(from, to R) {
	indexFrom := h.indexOf(from)
	indexTo := h.indexOf(to)
	if indexFrom < 0 || indexTo < 0 {
		return
	}
	h.dragging = from
	moveIndex(h.rows, indexFrom, indexTo)
	moveIndex(h.groups, indexFrom, indexTo)
	h.relink()
}

// moveIndex moves s[from] to index to, shifting the elements in between.
func moveIndex[T any](s []T, from, to int) {
	if from == to {
		return
	}
	moving := s[from]
	if from > to {
		copy(s[to+1:from+1], s[to:from])
	} else {
		copy(s[from:to], s[from+1:to+1])
	}
	s[to] = moving
}

// FindDraggingRowParentAndIndex resolves where the dragged row would land
// in the tree given its current flat position. It walks backwards counting
// preceding siblings; a close marker skips its whole bracket as a single
// sibling, and the first open entry reached is the new parent. Reaching the
// top yields the root. ok is false when nothing is being dragged or the
// dragged row is not in the flat list.
func (h *FlatHierarchy[R, G]) FindDraggingRowParentAndIndex() (parent G, index int, ok bool) {
	var zeroR R
	var zeroG G
	if h.dragging == zeroR || h.root == zeroG {
		return zeroG, 0, false
	}
	at := h.indexOf(h.dragging)
	if at < 0 {
		return zeroG, 0, false
	}
	current := 0
	for i := at - 1; i >= 0; i-- {
		if h.opens(i) {
			return h.groups[i], current, true
		}
		if h.rows[i] == zeroR {
			i = h.match[i]
		}
		current++
	}
	return h.root, current, true
}

// ActuallyMoveDraggingRow commits the dragged row's flat position to the
// tree. It reports whether the tree changed; a row dropped on its own
// position changes nothing and records no undo.
func (h *FlatHierarchy[R, G]) ActuallyMoveDraggingRow() bool {
	parent, index, ok := h.FindDraggingRowParentAndIndex()
	if !ok {
		return false
	}
	row := h.dragging
	owner := h.tree.Owner(row)
	if owner == parent {
		if elems := h.tree.Elements(parent); index < len(elems) && elems[index] == row {
			return false
		}
	}

	var zeroG G
	if owner != zeroG {
		list := h.tree.RecordUndo(owner)
		if i := slices.Index(*list, row); i >= 0 {
			*list = slices.Delete(*list, i, i+1)
		}
	}
	h.tree.SetOwner(row, parent)
	list := h.tree.RecordUndo(parent)
	*list = slices.Insert(*list, min(index, len(*list)), row)
	return true
}

func swapBackground(c batchui.SchemeColor) batchui.SchemeColor {
	if c == batchui.SchemeBackground {
		return batchui.SchemePureBackground
	}
	return batchui.SchemeBackground
}

// Build draws the hierarchy. A drag released since the last pass is
// committed to the tree first.
func (h *FlatHierarchy[R, G]) Build(b batchui.Builder) {
	var zeroR R
	if h.dragging != zeroR && !b.IsDragging() {
		h.ActuallyMoveDraggingRow()
		h.dragging = zeroR
		h.rebuildRequired = true
	}
	if h.rebuildRequired {
		h.Rebuild()
	}

	h.grid.BeginBuildingContent(b)
	h.depthStart = h.depthStart[:0]
	bg := batchui.SchemePureBackground
	depth := 0
	indent := 0.0
	pad := h.opts.GroupPadding
	var moveFrom, moveTo R
	for i := 0; i < len(h.rows); i++ {
		row, group := h.rows[i], h.groups[i]
		if row == zeroR {
			if b.IsBuilding() && len(h.depthStart) > 0 {
				top := h.depthStart[len(h.depthStart)-1]
				h.depthStart = h.depthStart[:len(h.depthStart)-1]
				r := batchui.Rect{X: b.Left() + indent, Y: top, Width: h.grid.Width() - indent, Height: b.Bottom() - top}
				b.DrawRectangle(r, bg, batchui.ShadowThin)
			}
			bg = swapBackground(bg)
			depth--
			indent = float64(depth) * h.opts.IndentStep
			b.AllocateRect(h.opts.IndentStep, h.opts.CloseGap)
			continue
		}

		open := h.opens(i)
		if !h.tree.Filter(row) {
			if open {
				i = h.match[i]
			}
			continue
		}

		if open {
			depth++
			bg = swapBackground(bg)
			indent = float64(depth) * h.opts.IndentStep
			if b.IsBuilding() {
				h.depthStart = append(h.depthStart, b.Bottom())
			}
		}

		rect := h.grid.BuildRow(b, row, indent)
		if !open && b.InitiateDrag(rect, rect, row, bg) {
			h.dragging = row
		} else if moveTo == zeroR && b.ConsumeDrag(rect.Center(), row) {
			if from, ok := b.DraggingObject().(R); ok {
				moveFrom, moveTo = from, row
			}
		}

		if open {
			if len(h.tree.Elements(group)) == 0 && h.opts.EmptyGroupMessage != "" {
				done := b.EnterGroup(batchui.Padding{Left: pad + indent, Top: pad, Right: pad, Bottom: pad})
				b.BuildText(h.opts.EmptyGroupMessage)
				done()
			}
			if h.opts.TableHeader != nil {
				done := b.EnterGroup(batchui.Padding{Left: pad + indent, Top: pad, Right: pad, Bottom: pad})
				h.opts.TableHeader(b, group)
				done()
			}
		}
	}
	full := h.grid.EndBuildingContent(b)
	// Reordering waits for the pass to finish so every entry is laid out
	// exactly once.
	if moveTo != zeroR {
		h.moveFlat(moveFrom, moveTo)
	}
	b.DrawRectangle(full, batchui.SchemePureBackground, batchui.ShadowNone)
}
