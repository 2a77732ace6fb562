package automata_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cscan/pkg/automata"
	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/token"
)

// munch feeds src to a fresh run of def and returns the length of the
// first accepted prefix, or -1 if the run rejects first.
func munch(def *automaton.Definition, src string) int {
	r := automaton.NewRun(def)
	for i := 0; i < len(src); i++ {
		la := automaton.EOF
		if i+1 < len(src) {
			la = int(src[i+1])
		}
		switch r.Step(src[i], la) {
		case automaton.Accept:
			return i + 1
		case automaton.Reject:
			return -1
		}
	}
	return -1
}

func TestStandardValidates(t *testing.T) {
	for _, def := range automata.Standard() {
		assert.NoError(t, def.Validate(), def.Name)
	}
}

func TestStandardMatches(t *testing.T) {
	tests := []struct {
		def  *automaton.Definition
		src  string
		want int
	}{
		{automata.Number(), "10;", 2},
		{automata.Number(), "007", 3},
		{automata.Number(), "x1", -1},
		{automata.Identifier(), "x = 1", 1},
		{automata.Identifier(), "abc123+", 6},
		{automata.Identifier(), "1abc", -1},
		{automata.Identifier(), "my_var", 2},
		{automata.Keyword(), "return;", 6},
		{automata.Keyword(), "if(", 2},
		{automata.Keyword(), "iffy", -1},
		{automata.Keyword(), "returned", -1},
		{automata.Keyword(), "else1", -1},
		{automata.Keyword(), "foo", -1},
		{automata.Type(), "int x", 3},
		{automata.Type(), "integer", -1},
		{automata.Type(), "char*", 4},
		{automata.Literal(), `"hi there";`, 10},
		{automata.Literal(), `"a\"b"`, 6},
		{automata.Literal(), `""`, 2},
		{automata.Literal(), "\"open\n", -1},
		{automata.Operator(), "== 1", 2},
		{automata.Operator(), "=-1", 1},
		{automata.Operator(), "<=", 2},
		{automata.Operator(), "++x", 2},
		{automata.Operator(), "&x", -1},
		{automata.Special(), ";;", 1},
		{automata.Special(), "(", 1},
		{automata.Special(), "x", -1},
	}
	for _, tt := range tests {
		t.Run(tt.def.Name+"/"+tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, munch(tt.def, tt.src))
		})
	}
}

func TestStandardOrder(t *testing.T) {
	var names []string
	for _, def := range automata.Standard() {
		names = append(names, def.Name)
	}
	want := []string{"keyword", "type", "identifier", "number", "literal", "operator", "special"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("priority order mismatch (-want +got):\n%s", diff)
	}
}

const identifierYAML = `
automata:
  - name: ident
    category: IDENTIFIER
    start: 1
    accepting: [2]
    vocabulary:
      - chars: abcdefghijklmnopqrstuvwxyz
        column: 0
      - chars: "0123456789"
        column: 1
    transitions:
      - [0, 0]
      - [2, 0]
      - [2, 2]
`

func TestLoad(t *testing.T) {
	defs, err := automata.Load(strings.NewReader(identifierYAML))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "ident", def.Name)
	assert.Equal(t, token.Identifier, def.Category)
	assert.Equal(t, automaton.State(1), def.Start)
	assert.True(t, def.Table.Lookup(1, 1).IsDead(), "0 in the wire format is a dead cell")
	assert.Equal(t, 4, munch(def, "ab12 "))
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "automata: []",
		"unknown key":  "automata:\n  - name: a\n    colour: red\n",
		"bad category": strings.Replace(identifierYAML, "IDENTIFIER", "COMMENT", 1),
		"no category":  strings.Replace(identifierYAML, "    category: IDENTIFIER\n", "", 1),
		"bad target":   strings.Replace(identifierYAML, "[2, 2]", "[2, 9]", 1),
		"bad start":    strings.Replace(identifierYAML, "start: 1", "start: 0", 1),
		"short row":    strings.Replace(identifierYAML, "[2, 2]", "[2]", 1),
		"no name":      strings.Replace(identifierYAML, "name: ident", "name: \"\"", 1),
		"duplicate":    identifierYAML + identifierYAML[strings.Index(identifierYAML, "  - name"):],
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := automata.Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadNoCategory(t *testing.T) {
	src := strings.Replace(identifierYAML, "    category: IDENTIFIER\n", "", 1)
	_, err := automata.Load(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `automaton "ident": no category`)

	src = strings.Replace(identifierYAML, "category: IDENTIFIER", "category: NUMBER", 1)
	defs, err := automata.Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, token.Number, defs[0].Category)
}

func TestDumpLoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, automata.Dump(&buf, automata.Standard()))

	defs, err := automata.Load(&buf)
	require.NoError(t, err)
	require.Len(t, defs, len(automata.Standard()))

	for i, def := range automata.Standard() {
		if diff := cmp.Diff(automata.SpecOf(def), automata.SpecOf(defs[i])); diff != "" {
			t.Errorf("%s differs after reload (-want +got):\n%s", def.Name, diff)
		}
	}
}
