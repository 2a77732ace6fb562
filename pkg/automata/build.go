// Package automata provides the standard automaton set for the C-like
// language and the YAML format used to author custom sets.
package automata

import (
	"strings"

	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/token"
)

// Character classes.
const (
	Lower  = "abcdefghijklmnopqrstuvwxyz"
	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Letter = Lower + Upper
	Digit  = "0123456789"
	Alnum  = Letter + Digit
)

// Repeat builds first (rest)*: one character from first, then any number
// of characters from rest.
func Repeat(name string, cat token.Category, first, rest string) *automaton.Definition {
	// Column 0 holds characters only allowed after the first position,
	// column 1 characters allowed anywhere, column 2 first-only ones.
	var vocab automaton.Vocabulary
	for i := 0; i < len(first); i++ {
		col := 2
		if strings.IndexByte(rest, first[i]) >= 0 {
			col = 1
		}
		vocab = append(vocab, automaton.Symbol{Char: first[i], Column: col})
	}
	for i := 0; i < len(rest); i++ {
		if strings.IndexByte(first, rest[i]) < 0 {
			vocab = append(vocab, automaton.Symbol{Char: rest[i], Column: 0})
		}
	}

	width := vocab.Width()
	t := automaton.NewTable(3, width)
	for col := 0; col < width; col++ {
		if col > 0 {
			t.Set(1, col, 2)
		}
		if col < 2 {
			t.Set(2, col, 2)
		}
	}
	return &automaton.Definition{
		Name:      name,
		Category:  cat,
		Vocab:     vocab,
		Table:     t,
		Start:     1,
		Accepting: []automaton.State{2},
	}
}

// Single builds a DFA that accepts exactly one character from chars.
func Single(name string, cat token.Category, chars string) *automaton.Definition {
	t := automaton.NewTable(3, 1)
	t.Set(1, 0, 2)
	return &automaton.Definition{
		Name:      name,
		Category:  cat,
		Vocab:     automaton.Vocabulary(nil).Chars(chars, 0),
		Table:     t,
		Start:     1,
		Accepting: []automaton.State{2},
	}
}

// Words builds a trie DFA accepting exactly the given words. Characters in
// cont that do not extend a word lead to a non-accepting trap state that
// keeps consuming cont, so a word is never accepted as the prefix of a
// longer run (e.g. "if" inside "iffy"). Pass an empty cont for punctuation
// words where a prefix match is the intended result.
func Words(name string, cat token.Category, words []string, cont string) *automaton.Definition {
	var vocab automaton.Vocabulary
	column := make(map[byte]int)
	addChar := func(c byte) {
		if _, ok := column[c]; !ok {
			column[c] = len(column)
			vocab = append(vocab, automaton.Symbol{Char: c, Column: column[c]})
		}
	}
	for _, w := range words {
		for i := 0; i < len(w); i++ {
			addChar(w[i])
		}
	}
	for i := 0; i < len(cont); i++ {
		addChar(cont[i])
	}

	// Build the trie over state ids; row 0 is reserved, 1 is the root.
	type node struct {
		next map[byte]automaton.State
		word bool
	}
	nodes := []*node{nil, {next: map[byte]automaton.State{}}}
	for _, w := range words {
		cur := automaton.State(1)
		for i := 0; i < len(w); i++ {
			n := nodes[cur]
			nxt, ok := n.next[w[i]]
			if !ok {
				nxt = automaton.State(len(nodes))
				nodes = append(nodes, &node{next: map[byte]automaton.State{}})
				n.next[w[i]] = nxt
			}
			cur = nxt
		}
		nodes[cur].word = true
	}

	trap := automaton.State(0)
	states := len(nodes)
	if cont != "" {
		trap = automaton.State(states)
		states++
	}

	t := automaton.NewTable(states, len(column))
	var accepting []automaton.State
	for id := 1; id < len(nodes); id++ {
		n := nodes[id]
		if n.word {
			accepting = append(accepting, automaton.State(id))
		}
		for c, nxt := range n.next {
			t.Set(automaton.State(id), column[c], nxt)
		}
		if trap == 0 || id == 1 {
			continue
		}
		for i := 0; i < len(cont); i++ {
			if _, ok := n.next[cont[i]]; !ok {
				t.Set(automaton.State(id), column[cont[i]], trap)
			}
		}
	}
	if trap != 0 {
		for i := 0; i < len(cont); i++ {
			t.Set(trap, column[cont[i]], trap)
		}
	}

	return &automaton.Definition{
		Name:      name,
		Category:  cat,
		Vocab:     vocab,
		Table:     t,
		Start:     1,
		Accepting: accepting,
	}
}

// Quoted builds a DFA for text between two quote characters. body lists
// the characters allowed inside; escape, when non-zero, makes the next
// character literal (including the quote itself).
func Quoted(name string, cat token.Category, quote byte, body string, escape byte) *automaton.Definition {
	const (
		colQuote = iota
		colBody
		colEscape
	)
	vocab := automaton.Vocabulary{{Char: quote, Column: colQuote}}
	if escape != 0 {
		vocab = append(vocab, automaton.Symbol{Char: escape, Column: colEscape})
	}
	vocab = vocab.Chars(body, colBody)

	width := 2
	if escape != 0 {
		width = 3
	}
	// 1 start, 2 inside, 3 closed, 4 after escape.
	t := automaton.NewTable(5, width)
	t.Set(1, colQuote, 2)
	t.Set(2, colBody, 2)
	t.Set(2, colQuote, 3)
	if escape != 0 {
		t.Set(2, colEscape, 4)
		t.Set(4, colQuote, 2)
		t.Set(4, colBody, 2)
		t.Set(4, colEscape, 2)
	}
	return &automaton.Definition{
		Name:      name,
		Category:  cat,
		Vocab:     vocab,
		Table:     t,
		Start:     1,
		Accepting: []automaton.State{3},
	}
}
