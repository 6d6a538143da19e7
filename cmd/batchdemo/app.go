package main

import (
	"fmt"

	"github.com/phanxgames/batchui"
	"github.com/phanxgames/batchui/hierarchy"
	"github.com/phanxgames/batchui/internal/production"
)

const (
	toolbarHeight = 28
	buttonWidth   = 64
	toggleSize    = 12
)

// app is the production table editor: a toolbar, the grid header, and a
// scrolling flat hierarchy of rows that can be dragged between groups.
type app struct {
	window  *batchui.Window
	model   *production.Model
	tree    *hierarchy.FlatHierarchy[*production.Row, *production.Group]
	content *batchui.Gui
	area    *batchui.ScrollArea

	undo, redo batchui.Handle
	toggles    map[*production.Group]*batchui.Handle
}

func newApp(cfg batchui.Config, model *production.Model, font batchui.Font) (*app, error) {
	a := &app{model: model, toggles: map[*production.Group]*batchui.Handle{}}

	grid := batchui.NewDataGrid(
		batchui.Column[*production.Row]{Header: "Recipe", Width: 220, Build: a.buildName},
		batchui.Column[*production.Row]{Header: "Building", Width: 140, Build: func(b batchui.Builder, r *production.Row) {
			b.BuildText(r.Building)
		}},
		batchui.Column[*production.Row]{Header: "Per min", Width: 80, Build: func(b batchui.Builder, r *production.Row) {
			b.BuildText(fmt.Sprintf("%.1f", r.Amount))
		}},
	)
	a.tree = hierarchy.New[*production.Row, *production.Group](model, grid, hierarchy.Options[*production.Group]{
		EmptyGroupMessage: "Drag recipes here",
	})
	a.tree.SetData(model.Root())

	a.content = batchui.NewGui(func(g *batchui.Gui) { a.tree.Build(g) })
	a.content.Font = font
	a.area = batchui.NewScrollArea(a.content.Batch())

	a.undo = batchui.Handle{Name: "undo", OnClick: func(batchui.MouseContext) { a.step(model.History().Undo) }}
	a.redo = batchui.Handle{Name: "redo", OnClick: func(batchui.MouseContext) { a.step(model.History().Redo) }}

	w, err := batchui.NewWindow(cfg, a.build)
	if err != nil {
		return nil, err
	}
	w.Root().Font = font
	w.Track(a.content)
	w.Animate(a.area)
	w.Animate(historySealer{a})
	a.window = w
	return a, nil
}

// historySealer closes the pending undo step once per frame, so every edit
// made during one frame undoes together.
type historySealer struct {
	app *app
}

func (s historySealer) Update(float32) bool {
	if !s.app.model.History().Seal() {
		return false
	}
	s.app.window.Root().Rebuild()
	return true
}

func (a *app) step(fn func() bool) {
	if !fn() {
		return
	}
	a.tree.Invalidate()
	a.content.Rebuild()
	a.window.Root().Rebuild()
}

func (a *app) toggle(g *production.Group) *batchui.Handle {
	h, ok := a.toggles[g]
	if !ok {
		h = &batchui.Handle{Name: "toggle", OnClick: func(batchui.MouseContext) {
			a.model.Toggle(g)
			a.tree.Invalidate()
			a.content.Rebuild()
		}}
		a.toggles[g] = h
	}
	return h
}

func (a *app) buildName(b batchui.Builder, r *production.Row) {
	left := b.Left()
	if sub := r.Subgroup(); sub != nil {
		box := batchui.Rect{X: left, Y: b.Bottom() + 5, Width: toggleSize, Height: toggleSize}
		color := batchui.SchemeGrey
		if sub.Expanded {
			color = batchui.SchemePrimary
		}
		a.content.DrawHandle(box, color, a.toggle(sub))
	}
	left += toggleSize + 4
	done := b.EnterRect(batchui.Rect{X: left, Y: b.Bottom() + 3, Width: b.Width() - toggleSize - 4, Height: 0})
	b.BuildText(r.Name)
	done()
}

func (a *app) button(g *batchui.Gui, x float64, label string, h *batchui.Handle, enabled bool) {
	r := batchui.Rect{X: x, Y: 4, Width: buttonWidth, Height: toolbarHeight - 8}
	color := batchui.SchemeGrey
	if enabled {
		color = batchui.SchemePrimary
		g.DrawHandle(r, color, h)
	} else {
		g.DrawRectangle(r, color, batchui.ShadowNone)
	}
	done := g.EnterRect(batchui.Rect{X: r.X + 8, Y: r.Y + 2, Width: r.Width - 16})
	g.BuildText(label)
	done()
}

func (a *app) build(g *batchui.Gui) {
	history := a.model.History()
	a.button(g, 4, "Undo", &a.undo, history.CanUndo())
	a.button(g, 8+buttonWidth, "Redo", &a.redo, history.CanRedo())

	status := fmt.Sprintf("%.1f items/min", a.model.Root().Total())
	if q := a.model.Query(); q != "" {
		status = fmt.Sprintf("%q  %s", q, status)
	}
	done := g.EnterRect(batchui.Rect{X: 16 + 2*buttonWidth, Y: 6, Width: g.Width() - 16 - 2*buttonWidth})
	g.BuildText(status)
	done()

	g.AllocateRow(toolbarHeight)
	a.tree.BuildHeader(g)

	top := g.Bottom()
	height := max(0, g.Batch().BuildSize().Height-top)
	a.area.Draw(g, batchui.Rect{X: 0, Y: top, Width: g.Width(), Height: height})
	g.AllocateRow(height)
}
