package automata

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/token"
)

// File is the on-disk form of an automaton set. Order is priority order.
type File struct {
	Automata []Spec `json:"automata"`
}

// Spec is the on-disk form of one automaton. In Transitions, 0 means there
// is no transition; row 0 is reserved and ignored.
type Spec struct {
	Name        string          `json:"name"`
	Category    *token.Category `json:"category"`
	Start       int             `json:"start"`
	Accepting   []int           `json:"accepting"`
	Vocabulary  []VocabEntry    `json:"vocabulary"`
	Transitions [][]int         `json:"transitions"`
}

// VocabEntry maps every character of Chars to Column.
type VocabEntry struct {
	Chars  string `json:"chars"`
	Column int    `json:"column"`
}

// Load decodes and validates an automaton set.
func Load(r io.Reader) ([]*automaton.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading automaton definitions")
	}
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "decoding automaton definitions")
	}
	if len(f.Automata) == 0 {
		return nil, errors.New("no automata defined")
	}

	defs := make([]*automaton.Definition, 0, len(f.Automata))
	seen := make(map[string]bool)
	for i, spec := range f.Automata {
		if spec.Name == "" {
			return nil, errors.Errorf("automaton #%d has no name", i)
		}
		if seen[spec.Name] {
			return nil, errors.Errorf("duplicate automaton name %q", spec.Name)
		}
		seen[spec.Name] = true

		def, err := spec.Definition()
		if err != nil {
			return nil, err
		}
		if err := def.Validate(); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadFile is Load on the named file.
func LoadFile(path string) ([]*automaton.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening automaton definitions")
	}
	defer f.Close()

	defs, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return defs, nil
}

// Definition converts the wire form into an automaton definition.
func (s *Spec) Definition() (*automaton.Definition, error) {
	if s.Category == nil {
		return nil, errors.Errorf("automaton %q: no category", s.Name)
	}
	if s.Start < 0 || s.Start > maxState {
		return nil, errors.Errorf("automaton %q: start state %d out of range", s.Name, s.Start)
	}
	def := &automaton.Definition{
		Name:     s.Name,
		Category: *s.Category,
		Start:    automaton.State(s.Start),
		Table:    make(automaton.Table, len(s.Transitions)),
	}
	for _, e := range s.Vocabulary {
		def.Vocab = def.Vocab.Chars(e.Chars, e.Column)
	}
	for _, a := range s.Accepting {
		if a < 0 || a > maxState {
			return nil, errors.Errorf("automaton %q: accepting state %d out of range", s.Name, a)
		}
		def.Accepting = append(def.Accepting, automaton.State(a))
	}
	for i, row := range s.Transitions {
		def.Table[i] = make([]automaton.Next, len(row))
		for col, to := range row {
			switch {
			case to == 0:
			case to < 0 || to > maxState:
				return nil, errors.Errorf("automaton %q: transition (%d,%d) targets invalid state %d", s.Name, i, col, to)
			default:
				def.Table[i][col] = automaton.To(automaton.State(to))
			}
		}
	}
	return def, nil
}

const maxState = 1<<16 - 1

// SpecOf converts a definition to its wire form. Consecutive symbols that
// share a column are folded into one vocabulary entry.
func SpecOf(def *automaton.Definition) Spec {
	cat := def.Category
	s := Spec{
		Name:        def.Name,
		Category:    &cat,
		Start:       int(def.Start),
		Transitions: make([][]int, len(def.Table)),
	}
	for _, a := range def.Accepting {
		s.Accepting = append(s.Accepting, int(a))
	}
	for _, sym := range def.Vocab {
		n := len(s.Vocabulary)
		if n > 0 && s.Vocabulary[n-1].Column == sym.Column {
			s.Vocabulary[n-1].Chars += string([]byte{sym.Char})
			continue
		}
		s.Vocabulary = append(s.Vocabulary, VocabEntry{Chars: string([]byte{sym.Char}), Column: sym.Column})
	}
	for i, row := range def.Table {
		s.Transitions[i] = make([]int, len(row))
		for col, cell := range row {
			if to, ok := cell.State(); ok {
				s.Transitions[i][col] = int(to)
			}
		}
	}
	return s
}

// Dump writes defs in the wire format.
func Dump(w io.Writer, defs []*automaton.Definition) error {
	f := File{Automata: make([]Spec, 0, len(defs))}
	for _, def := range defs {
		f.Automata = append(f.Automata, SpecOf(def))
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "encoding automaton definitions")
	}
	_, err = w.Write(data)
	return err
}
