// Package production is the model behind the demo's production table:
// recipe rows that can own nested groups of further rows, with undo and
// fuzzy search. *Model implements hierarchy.Tree.
package production

import (
	"fmt"

	"github.com/google/uuid"
)

// Row is one recipe line of a production table.
type Row struct {
	ID       uuid.UUID
	Name     string
	Building string
	Amount   float64 // items per minute

	owner    *Group
	subgroup *Group
}

// Owner returns the group the row belongs to.
func (r *Row) Owner() *Group { return r.owner }

// Subgroup returns the nested group the row owns, or nil.
func (r *Row) Subgroup() *Group { return r.subgroup }

// Group is an ordered list of rows. Every group except the table root is
// owned by a row.
type Group struct {
	ID       uuid.UUID
	Name     string
	Expanded bool
	Rows     []*Row

	owner *Row
}

// Owner returns the row that owns g, nil for the root.
func (g *Group) Owner() *Row { return g.owner }

// NewGroup creates an empty expanded group.
func NewGroup(name string) *Group {
	return &Group{ID: uuid.New(), Name: name, Expanded: true}
}

// Add appends a new row to g.
func (g *Group) Add(name, building string, amount float64) *Row {
	r := &Row{ID: uuid.New(), Name: name, Building: building, Amount: amount, owner: g}
	g.Rows = append(g.Rows, r)
	return r
}

// Nest gives r a subgroup, creating it if needed.
func (r *Row) Nest() *Group {
	if r.subgroup == nil {
		r.subgroup = NewGroup(r.Name)
		r.subgroup.owner = r
	}
	return r.subgroup
}

// Walk calls fn for every row under g in pre-order, collapsed subgroups
// included. Walking stops when fn returns false.
func (g *Group) Walk(fn func(r *Row) bool) bool {
	for _, r := range g.Rows {
		if !fn(r) {
			return false
		}
		if r.subgroup != nil && !r.subgroup.Walk(fn) {
			return false
		}
	}
	return true
}

// Total sums Amount over every row under g.
func (g *Group) Total() float64 {
	var total float64
	g.Walk(func(r *Row) bool {
		total += r.Amount
		return true
	})
	return total
}

var sampleRecipes = []struct {
	name, building string
	amount         float64
}{
	{"Iron Plate", "Smelter", 30},
	{"Copper Cable", "Assembler", 60},
	{"Steel Beam", "Foundry", 15},
	{"Circuit Board", "Assembler", 7.5},
	{"Gear Wheel", "Assembler", 20},
	{"Concrete", "Mixer", 45},
	{"Plastic Bar", "Chemical Plant", 12},
	{"Sulfuric Acid", "Chemical Plant", 50},
}

// Sample builds a table with n top-level rows. Every third row owns a
// small nested group; the first of those is collapsed.
func Sample(n int) *Group {
	root := NewGroup("Factory")
	collapsed := false
	for i := range n {
		rec := sampleRecipes[i%len(sampleRecipes)]
		r := root.Add(fmt.Sprintf("%s #%d", rec.name, i+1), rec.building, rec.amount)
		if i%3 != 2 {
			continue
		}
		sub := r.Nest()
		for j := range 2 {
			part := sampleRecipes[(i+j+1)%len(sampleRecipes)]
			sub.Add(part.name, part.building, part.amount/2)
		}
		if !collapsed {
			sub.Expanded = false
			collapsed = true
		}
	}
	return root
}
