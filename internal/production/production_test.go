package production

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/batchui"
	"github.com/phanxgames/batchui/hierarchy"
)

func names(rows []*Row) string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return strings.Join(out, " ")
}

// smallTable builds Factory{Iron, Gear{Copper}}.
func smallTable() (*Group, map[string]*Row) {
	root := NewGroup("Factory")
	rows := map[string]*Row{
		"Iron": root.Add("Iron", "Smelter", 30),
		"Gear": root.Add("Gear", "Assembler", 20),
	}
	rows["Copper"] = rows["Gear"].Nest().Add("Copper", "Assembler", 60)
	return root, rows
}

func TestAddAndNest(t *testing.T) {
	root, rows := smallTable()
	assert.Equal(t, "Iron Gear", names(root.Rows))
	assert.Same(t, root, rows["Iron"].Owner())
	sub := rows["Gear"].Subgroup()
	require.NotNil(t, sub)
	assert.Same(t, rows["Gear"], sub.Owner())
	assert.Same(t, sub, rows["Copper"].Owner())
	assert.Same(t, sub, rows["Gear"].Nest(), "nesting twice reuses the group")
	assert.NotEqual(t, rows["Iron"].ID, rows["Gear"].ID)
	assert.InDelta(t, 110, root.Total(), 0.001)
}

func TestSampleTable(t *testing.T) {
	root := Sample(9)
	require.Len(t, root.Rows, 9)
	var nested, collapsed int
	for _, r := range root.Rows {
		if sub := r.Subgroup(); sub != nil {
			nested++
			assert.Len(t, sub.Rows, 2)
			if !sub.Expanded {
				collapsed++
			}
		}
	}
	assert.Equal(t, 3, nested)
	assert.Equal(t, 1, collapsed)
}

func TestFind(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	assert.Same(t, rows["Copper"], m.Find(rows["Copper"].ID))
	assert.Nil(t, m.Find(NewGroup("x").ID))
}

func TestHistoryUndoRedo(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	h := m.History()
	assert.False(t, h.CanUndo())

	list := m.RecordUndo(root)
	*list = (*list)[1:]
	m.RecordUndo(root) // second record in the same step is ignored
	*list = nil
	h.Seal()
	assert.Empty(t, root.Rows)

	require.True(t, h.Undo())
	assert.Equal(t, "Iron Gear", names(root.Rows))
	assert.Same(t, root, rows["Iron"].Owner())
	assert.False(t, h.CanUndo())
	require.True(t, h.CanRedo())

	require.True(t, h.Redo())
	assert.Empty(t, root.Rows)
	assert.False(t, h.Redo())
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	root, _ := smallTable()
	var h History
	h.Record(root)
	root.Rows = root.Rows[:1]
	require.True(t, h.Undo())
	require.True(t, h.CanRedo())

	h.Record(root)
	assert.False(t, h.CanRedo())
}

func TestHistoryLimit(t *testing.T) {
	root, _ := smallTable()
	h := History{Limit: 2}
	for range 3 {
		h.Record(root)
		h.Seal()
	}
	assert.Len(t, h.undo, 2)
	assert.True(t, h.Undo())
	assert.True(t, h.Undo())
	assert.False(t, h.Undo())
}

func TestSetOwnerRefusesCycle(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	m.SetOwner(rows["Gear"], rows["Gear"].Subgroup())
	assert.Same(t, root, rows["Gear"].Owner())

	m.SetOwner(rows["Iron"], rows["Gear"].Subgroup())
	assert.Same(t, rows["Gear"].Subgroup(), rows["Iron"].Owner())
}

func TestSearchKeepsAncestorsVisible(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	for _, r := range rows {
		assert.True(t, m.Filter(r))
	}

	assert.Equal(t, 1, m.Search(" Copper "))
	assert.Equal(t, "Copper", m.Query())
	assert.True(t, m.Filter(rows["Copper"]))
	assert.True(t, m.Filter(rows["Gear"]), "parent of a match stays visible")
	assert.False(t, m.Filter(rows["Iron"]))

	assert.Zero(t, m.Search(""))
	assert.True(t, m.Filter(rows["Iron"]))
}

func TestToggle(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	sub := rows["Gear"].Subgroup()
	m.Toggle(sub)
	assert.False(t, m.Expanded(sub))
	m.Toggle(sub)
	assert.True(t, m.Expanded(sub))
}

// Rows are 22 high: Iron 0..22, Gear 22..44, Copper 44..66.
func TestDragIntoSubgroupAndUndo(t *testing.T) {
	root, rows := smallTable()
	m := NewModel(root)
	grid := batchui.NewDataGrid(batchui.Column[*Row]{Header: "Name", Width: 120})
	h := hierarchy.New[*Row, *Group](m, grid, hierarchy.Options[*Group]{})
	h.SetData(root)
	gui := batchui.NewGui(func(g *batchui.Gui) { h.Build(g) })
	gui.Batch().Rebuild(batchui.Size{Width: 200, Height: 400})

	gui.HandleMouse(batchui.ActionMouseDown, batchui.Vec2{X: 50, Y: 10})
	require.Same(t, rows["Iron"], h.Dragging())
	// Held rect spans 40..62, covering Copper's center at 55.
	gui.HandleMouse(batchui.ActionMouseDrag, batchui.Vec2{X: 50, Y: 50})
	gui.HandleMouse(batchui.ActionMouseUp, batchui.Vec2{X: 50, Y: 50})

	sub := rows["Gear"].Subgroup()
	assert.Equal(t, "Gear", names(root.Rows))
	assert.Equal(t, "Copper Iron", names(sub.Rows))
	assert.Same(t, sub, rows["Iron"].Owner())

	require.True(t, m.History().Undo())
	assert.Equal(t, "Iron Gear", names(root.Rows))
	assert.Equal(t, "Copper", names(sub.Rows))
	assert.Same(t, root, rows["Iron"].Owner())
}
