package batchui

// Column describes one DataGrid column.
type Column[R any] struct {
	Header string
	Width  float64
	// Build lays out the cell for row. The builder is already confined to
	// the cell's rect.
	Build func(b Builder, row R)
}

// DataGrid lays rows out as fixed-width columns under a header.
type DataGrid[R any] struct {
	Columns      []Column[R]
	RowHeight    float64 // minimum row height
	HeaderHeight float64
	Spacing      float64 // horizontal gap between columns
	HeaderColor  SchemeColor

	contentTop float64
}

// NewDataGrid creates a grid with the default row metrics.
func NewDataGrid[R any](columns ...Column[R]) *DataGrid[R] {
	return &DataGrid[R]{
		Columns:      columns,
		RowHeight:    22,
		HeaderHeight: 24,
		Spacing:      6,
		HeaderColor:  SchemeGrey,
	}
}

// Width returns the total width of all columns.
func (d *DataGrid[R]) Width() float64 {
	var w float64
	for i, c := range d.Columns {
		if i > 0 {
			w += d.Spacing
		}
		w += c.Width
	}
	return w
}

// BuildHeader lays out the header row.
func (d *DataGrid[R]) BuildHeader(b Builder) {
	r := b.AllocateRect(max(b.Width(), d.Width()), d.HeaderHeight)
	b.DrawRectangle(r, d.HeaderColor, ShadowNone)
	x := r.X
	for _, c := range d.Columns {
		done := b.EnterRect(Rect{x, r.Y, c.Width, r.Height})
		b.BuildText(c.Header)
		done()
		x += c.Width + d.Spacing
	}
}

// BeginBuildingContent marks where the row area starts.
func (d *DataGrid[R]) BeginBuildingContent(b Builder) {
	d.contentTop = b.Bottom()
}

// BuildRow lays out row with its first column shifted right by indent, and
// returns the full-width row rect.
func (d *DataGrid[R]) BuildRow(b Builder, row R, indent float64) Rect {
	top := b.Bottom()
	bottom := top + d.RowHeight
	x := b.Left() + indent
	for i, c := range d.Columns {
		w := c.Width
		if i == 0 {
			w = max(w-indent, 0)
		}
		if c.Build != nil {
			done := b.EnterRect(Rect{x, top, w, 0})
			c.Build(b, row)
			bottom = max(bottom, b.Bottom())
			done()
		}
		x += w + d.Spacing
	}
	return b.AllocateRect(max(b.Width(), d.Width()), bottom-top)
}

// EndBuildingContent returns the rect covering every row built since
// BeginBuildingContent.
func (d *DataGrid[R]) EndBuildingContent(b Builder) Rect {
	return Rect{b.Left(), d.contentTop, max(b.Width(), d.Width()), b.Bottom() - d.contentTop}
}
