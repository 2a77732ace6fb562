package automata

import (
	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/token"
)

var (
	// Keywords of the language.
	Keywords = []string{"if", "else", "while", "for", "return"}
	// Types of the language.
	Types = []string{"int", "char", "void"}
	// Operators of the language.
	Operators = []string{
		"+", "-", "*", "/", "%", "=",
		"==", "!=", "<", ">", "<=", ">=",
		"!", "&&", "||", "++", "--", "+=", "-=",
	}
	// Specials are single character punctuation tokens.
	Specials = ";,(){}[]"
)

// printable is the ASCII range allowed inside a string literal, minus the
// quote and the backslash.
func printable() string {
	b := make([]byte, 0, 95)
	for c := byte(' '); c <= '~'; c++ {
		if c != '"' && c != '\\' {
			b = append(b, c)
		}
	}
	b = append(b, '\t')
	return string(b)
}

// Keyword is the automaton for reserved words.
func Keyword() *automaton.Definition {
	return Words("keyword", token.Keyword, Keywords, Alnum)
}

// Type is the automaton for built-in type names.
func Type() *automaton.Definition {
	return Words("type", token.Type, Types, Alnum)
}

// Identifier matches [a-zA-Z][a-zA-Z0-9]*.
func Identifier() *automaton.Definition {
	return Repeat("identifier", token.Identifier, Letter, Alnum)
}

// Number matches [0-9]+.
func Number() *automaton.Definition {
	return Repeat("number", token.Number, Digit, Digit)
}

// Literal matches a double quoted string on a single line with backslash
// escapes.
func Literal() *automaton.Definition {
	return Quoted("literal", token.Literal, '"', printable(), '\\')
}

// Operator matches the operator set with maximal munch.
func Operator() *automaton.Definition {
	return Words("operator", token.Operator, Operators, "")
}

// Special matches one punctuation character.
func Special() *automaton.Definition {
	return Single("special", token.SpecialChar, Specials)
}

// Standard returns the default automaton set in priority order: the
// specific word automata come before the generic identifier.
func Standard() []*automaton.Definition {
	return []*automaton.Definition{
		Keyword(),
		Type(),
		Identifier(),
		Number(),
		Literal(),
		Operator(),
		Special(),
	}
}
