package automaton

// EOF is the lookahead passed to Step at end of input. It is never part of
// a vocabulary, so a lookup on it always hits a dead cell.
const EOF = -1

// Symbol maps one input character to a transition table column.
type Symbol struct {
	Char   byte
	Column int
}

// Vocabulary is an ordered list of symbols. When a character appears more
// than once the first entry wins. Characters that are not listed are not
// in the automaton's language.
type Vocabulary []Symbol

// Column returns the column for c, or false if c is not in the vocabulary.
func (v Vocabulary) Column(c byte) (int, bool) {
	for _, s := range v {
		if s.Char == c {
			return s.Column, true
		}
	}
	return -1, false
}

// Columns resolves the current character and the lookahead with a single
// walk over the vocabulary. Missing characters (and EOF) resolve to -1.
func (v Vocabulary) Columns(cur byte, la int) (int, int) {
	curCol, laCol := -1, -1
	laDone := la == EOF
	for _, s := range v {
		if curCol == -1 && s.Char == cur {
			curCol = s.Column
		}
		if !laDone && int(s.Char) == la {
			laCol = s.Column
			laDone = true
		}
		if curCol != -1 && laDone {
			break
		}
	}
	return curCol, laCol
}

// Width is the number of columns a transition table needs for this
// vocabulary.
func (v Vocabulary) Width() int {
	w := 0
	for _, s := range v {
		if s.Column+1 > w {
			w = s.Column + 1
		}
	}
	return w
}

// Chars maps every character in chars to column. Duplicates already in
// the vocabulary keep their earlier column.
func (v Vocabulary) Chars(chars string, column int) Vocabulary {
	for i := 0; i < len(chars); i++ {
		v = append(v, Symbol{Char: chars[i], Column: column})
	}
	return v
}
