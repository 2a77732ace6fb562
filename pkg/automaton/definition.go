// Package automaton implements the table driven DFAs the scanner runs in
// lock-step. A Definition is immutable and shared by every scan; a Run is
// the per-scan cursor over one Definition.
package automaton

import (
	"github.com/pkg/errors"

	"github.com/agenthands/cscan/pkg/token"
)

// Definition describes one DFA and the category it produces.
type Definition struct {
	Name      string
	Category  token.Category
	Vocab     Vocabulary
	Table     Table
	Start     State
	Accepting []State
}

// IsAccepting reports whether s is an accepting state.
func (d *Definition) IsAccepting(s State) bool {
	for _, a := range d.Accepting {
		if a == s {
			return true
		}
	}
	return false
}

// Validate checks the table shape. The scanner itself only bounds-checks at
// lookup time; Validate is for definitions authored outside this package.
func (d *Definition) Validate() error {
	rows := len(d.Table)
	if rows < 2 {
		return errors.Errorf("automaton %q: table needs at least one state besides the reserved row 0", d.Name)
	}
	if d.Start == 0 || int(d.Start) >= rows {
		return errors.Errorf("automaton %q: start state %d out of range [1,%d)", d.Name, d.Start, rows)
	}
	width := d.Vocab.Width()
	if width == 0 {
		return errors.Errorf("automaton %q: empty vocabulary", d.Name)
	}
	for _, s := range d.Vocab {
		if s.Column < 0 {
			return errors.Errorf("automaton %q: character %q has negative column %d", d.Name, s.Char, s.Column)
		}
	}
	for i := 1; i < rows; i++ {
		if len(d.Table[i]) != width {
			return errors.Errorf("automaton %q: state %d has %d columns, vocabulary needs %d", d.Name, i, len(d.Table[i]), width)
		}
		for col, cell := range d.Table[i] {
			to, ok := cell.State()
			if !ok {
				continue
			}
			if to == 0 || int(to) >= rows {
				return errors.Errorf("automaton %q: transition (%d,%d) targets invalid state %d", d.Name, i, col, to)
			}
		}
	}
	if len(d.Accepting) == 0 {
		return errors.Errorf("automaton %q: no accepting states", d.Name)
	}
	for _, a := range d.Accepting {
		if a == 0 || int(a) >= rows {
			return errors.Errorf("automaton %q: accepting state %d out of range", d.Name, a)
		}
	}
	return nil
}
