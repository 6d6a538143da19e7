package production

import "slices"

// snapshot is the row list of one group at the time it was recorded.
type snapshot struct {
	group *Group
	rows  []*Row
}

// History records group snapshots as undo steps. Every Record between two
// Seal calls belongs to the same step, so a multi-group edit made during one
// frame undoes as a whole.
type History struct {
	// Limit caps the number of undo steps kept. Zero means unlimited.
	Limit int

	pending []snapshot
	undo    [][]snapshot
	redo    [][]snapshot
}

// Record snapshots g into the pending step. Recording the same group twice
// in one step keeps the first snapshot.
func (h *History) Record(g *Group) {
	for _, s := range h.pending {
		if s.group == g {
			return
		}
	}
	h.pending = append(h.pending, snapshot{group: g, rows: slices.Clone(g.Rows)})
	h.redo = h.redo[:0]
}

// Seal closes the pending step and reports whether there was one.
func (h *History) Seal() bool {
	if len(h.pending) == 0 {
		return false
	}
	h.undo = append(h.undo, h.pending)
	h.pending = nil
	if h.Limit > 0 && len(h.undo) > h.Limit {
		h.undo = slices.Delete(h.undo, 0, len(h.undo)-h.Limit)
	}
	return true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.pending) > 0 || len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo restores the last step and reports whether there was one.
func (h *History) Undo() bool {
	h.Seal()
	if len(h.undo) == 0 {
		return false
	}
	step := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, capture(step))
	restore(step)
	return true
}

// Redo reapplies the last undone step and reports whether there was one.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	step := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, capture(step))
	restore(step)
	return true
}

// capture snapshots the current state of the groups in step.
func capture(step []snapshot) []snapshot {
	out := make([]snapshot, len(step))
	for i, s := range step {
		out[i] = snapshot{group: s.group, rows: slices.Clone(s.group.Rows)}
	}
	return out
}

func restore(step []snapshot) {
	for _, s := range step {
		s.group.Rows = slices.Clone(s.rows)
		for _, r := range s.group.Rows {
			r.owner = s.group
		}
	}
}
