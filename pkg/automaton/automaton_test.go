package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/token"
)

// digits builds [0-9]+ by hand: 1 -d-> 2, 2 -d-> 2.
func digits() *automaton.Definition {
	t := automaton.NewTable(3, 1)
	t.Set(1, 0, 2)
	t.Set(2, 0, 2)
	return &automaton.Definition{
		Name:      "digits",
		Category:  token.Number,
		Vocab:     automaton.Vocabulary(nil).Chars("0123456789", 0),
		Table:     t,
		Start:     1,
		Accepting: []automaton.State{2},
	}
}

// arrow builds "->" with a non-accepting middle state.
func arrow() *automaton.Definition {
	t := automaton.NewTable(4, 2)
	t.Set(1, 0, 2)
	t.Set(2, 1, 3)
	return &automaton.Definition{
		Name:      "arrow",
		Category:  token.Operator,
		Vocab:     automaton.Vocabulary{{Char: '-', Column: 0}, {Char: '>', Column: 1}},
		Table:     t,
		Start:     1,
		Accepting: []automaton.State{3},
	}
}

func TestVocabularyLookup(t *testing.T) {
	v := automaton.Vocabulary{{Char: 'a', Column: 0}, {Char: 'b', Column: 1}, {Char: 'a', Column: 5}}

	col, ok := v.Column('a')
	require.True(t, ok)
	assert.Equal(t, 0, col, "first entry wins")

	_, ok = v.Column('z')
	assert.False(t, ok)

	cur, la := v.Columns('b', 'a')
	assert.Equal(t, 1, cur)
	assert.Equal(t, 0, la)

	cur, la = v.Columns('a', automaton.EOF)
	assert.Equal(t, 0, cur)
	assert.Equal(t, -1, la)

	cur, la = v.Columns('?', 'b')
	assert.Equal(t, -1, cur)
	assert.Equal(t, 1, la)

	assert.Equal(t, 6, v.Width())
}

func TestTableDeadCells(t *testing.T) {
	tab := automaton.NewTable(2, 2)
	assert.True(t, tab.Lookup(1, 0).IsDead())
	assert.True(t, tab.Lookup(1, -1).IsDead())
	assert.True(t, tab.Lookup(7, 0).IsDead())

	tab.Set(1, 1, 1)
	s, ok := tab.Lookup(1, 1).State()
	require.True(t, ok)
	assert.Equal(t, automaton.State(1), s)
	assert.True(t, tab.Lookup(1, 0).IsDead(), "rows must not share cells")
}

func TestRunMaximalMunch(t *testing.T) {
	r := automaton.NewRun(digits())

	assert.Equal(t, automaton.Continue, r.Step('1', '2'))
	assert.Equal(t, automaton.Continue, r.Step('2', '3'))
	assert.Equal(t, automaton.Accept, r.Step('3', ';'))
	assert.True(t, r.Active())

	r.Reset()
	assert.Equal(t, automaton.Accept, r.Step('7', automaton.EOF))
}

func TestRunRejects(t *testing.T) {
	r := automaton.NewRun(digits())
	assert.Equal(t, automaton.Reject, r.Step('x', '1'))
	assert.False(t, r.Active())

	r.Reset()
	assert.True(t, r.Active())
	assert.Equal(t, automaton.State(1), r.State())

	// A non-accepting state that cannot extend is a dead end.
	a := automaton.NewRun(arrow())
	assert.Equal(t, automaton.Reject, a.Step('-', ' '))
	assert.False(t, a.Active())

	a.Reset()
	assert.Equal(t, automaton.Continue, a.Step('-', '>'))
	assert.Equal(t, automaton.Accept, a.Step('>', 'x'))
}

func TestDefinitionValidate(t *testing.T) {
	require.NoError(t, digits().Validate())
	require.NoError(t, arrow().Validate())

	d := digits()
	d.Start = 0
	assert.Error(t, d.Validate())

	d = digits()
	d.Accepting = []automaton.State{9}
	assert.Error(t, d.Validate())

	d = digits()
	d.Table[2] = d.Table[2][:0]
	assert.Error(t, d.Validate())

	d = digits()
	d.Table[1][0] = automaton.To(5)
	assert.Error(t, d.Validate())

	d = digits()
	d.Table[1][0] = automaton.To(0)
	assert.Error(t, d.Validate())

	d = digits()
	d.Accepting = nil
	assert.Error(t, d.Validate())
}
