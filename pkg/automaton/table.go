package automaton

// State is a row index into a transition table. Row 0 is reserved and is
// never the target of a transition.
type State uint16

// Next is one transition table cell. The zero value is the dead cell: there
// is no transition for that (state, column) pair.
type Next struct {
	to State
	ok bool
}

// Dead is the cell that has no transition.
var Dead Next

// To returns a cell that moves to s.
func To(s State) Next {
	return Next{to: s, ok: true}
}

// State returns the target state, or false for a dead cell.
func (n Next) State() (State, bool) {
	return n.to, n.ok
}

// IsDead reports whether n has no transition.
func (n Next) IsDead() bool {
	return !n.ok
}

// Table is a transition table indexed by [state][column].
type Table [][]Next

// NewTable allocates a table of the given shape with every cell dead.
func NewTable(states, columns int) Table {
	cells := make([]Next, states*columns)
	t := make(Table, states)
	for i := range t {
		t[i] = cells[i*columns : (i+1)*columns : (i+1)*columns]
	}
	return t
}

// Lookup returns the cell for (s, col). Out of range indices, including the
// -1 column of a missing character, are dead.
func (t Table) Lookup(s State, col int) Next {
	if int(s) >= len(t) || col < 0 || col >= len(t[s]) {
		return Dead
	}
	return t[s][col]
}

// Set stores a transition from s on col to target.
func (t Table) Set(s State, col int, target State) {
	t[s][col] = To(target)
}
