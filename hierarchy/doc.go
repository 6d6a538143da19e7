// Package hierarchy displays a tree of rows owned by groups as one flat,
// drag-reorderable list.
//
// A [Tree] supplies the shape: every group owns an ordered list of rows, and
// a row may own a subgroup that is either expanded or collapsed. A
// [FlatHierarchy] linearizes that shape in pre-order and brackets the
// children of every expanded subgroup with an open entry (the owning row)
// and a close marker:
//
//	Root{A, B{expanded: C}, D}
//
//	rows:   A    B    C    ·    D
//	groups: -    B    B    B    -
//
// The close marker (·) carries the subgroup it closes, so the flat list can
// be walked backwards, skipping whole brackets. That walk is how a row that
// was dragged to a new position in the flat list finds its new owner and
// index in the tree.
//
// Rows are drawn through a [batchui.Builder] and laid out by a [Grid]
// (typically a [batchui.DataGrid]); the builder's drag protocol drives
// reordering.
package hierarchy
