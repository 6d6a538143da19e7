package production

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/phanxgames/batchui"
	"github.com/phanxgames/batchui/hierarchy"
)

// Model adapts a production table to hierarchy.Tree and adds undo and
// search on top.
type Model struct {
	root    *Group
	history History

	query   string
	visible map[*Row]bool // nil when no query is active
}

var _ hierarchy.Tree[*Row, *Group] = (*Model)(nil)

// NewModel wraps root.
func NewModel(root *Group) *Model {
	return &Model{root: root}
}

// Root returns the table root.
func (m *Model) Root() *Group { return m.root }

// History returns the undo history.
func (m *Model) History() *History { return &m.history }

// Expanded implements hierarchy.Tree.
func (m *Model) Expanded(g *Group) bool { return g.Expanded }

// Subgroup implements hierarchy.Tree.
func (m *Model) Subgroup(r *Row) *Group { return r.subgroup }

// Elements implements hierarchy.Tree.
func (m *Model) Elements(g *Group) []*Row { return g.Rows }

// Owner implements hierarchy.Tree.
func (m *Model) Owner(r *Row) *Group { return r.owner }

// SetOwner implements hierarchy.Tree. A row can never move into its own
// subtree; such a request leaves the owner unchanged.
func (m *Model) SetOwner(r *Row, g *Group) {
	for p := g; p != nil && p.owner != nil; p = p.owner.owner {
		if p.owner == r {
			batchui.Logger().Warn("refusing to move row into its own subtree", "row", r.Name)
			return
		}
	}
	r.owner = g
}

// Filter implements hierarchy.Tree.
func (m *Model) Filter(r *Row) bool {
	return m.visible == nil || m.visible[r]
}

// RecordUndo implements hierarchy.Tree.
func (m *Model) RecordUndo(g *Group) *[]*Row {
	m.history.Record(g)
	return &g.Rows
}

// Toggle flips the expansion of g.
func (m *Model) Toggle(g *Group) {
	g.Expanded = !g.Expanded
}

// Find returns the row with the given id.
func (m *Model) Find(id uuid.UUID) *Row {
	var found *Row
	m.root.Walk(func(r *Row) bool {
		if r.ID == id {
			found = r
			return false
		}
		return true
	})
	return found
}

// Query returns the active search query.
func (m *Model) Query() string { return m.query }

type rowSource []*Row

func (s rowSource) String(i int) string { return s[i].Name + " " + s[i].Building }
func (s rowSource) Len() int            { return len(s) }

// Search filters rows by a fuzzy match on name and building. A row stays
// visible when it matches or when anything in its subgroup does, so matches
// are never hidden behind a filtered parent. An empty query shows all rows.
func (m *Model) Search(query string) int {
	m.query = strings.TrimSpace(query)
	if m.query == "" {
		m.visible = nil
		return 0
	}
	var rows rowSource
	m.root.Walk(func(r *Row) bool {
		rows = append(rows, r)
		return true
	})
	matches := fuzzy.FindFrom(m.query, rows)
	m.visible = make(map[*Row]bool, len(matches))
	for _, match := range matches {
		for r := rows[match.Index]; r != nil && !m.visible[r]; r = r.owner.owner {
			m.visible[r] = true
		}
	}
	batchui.Logger().Debug("search", "query", m.query, "matches", len(matches))
	return len(matches)
}
