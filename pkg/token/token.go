package token

import (
	"strings"

	"github.com/pkg/errors"
)

// Category classifies a lexeme.
type Category uint8

const (
	Number Category = iota
	Identifier
	Keyword
	Type
	Literal
	Operator
	SpecialChar
	NonRecognized
)

var categoryNames = [...]string{
	Number:        "NUMBER",
	Identifier:    "IDENTIFIER",
	Keyword:       "KEYWORD",
	Type:          "TYPE",
	Literal:       "LITERAL",
	Operator:      "OPERATOR",
	SpecialChar:   "SPECIALCHAR",
	NonRecognized: "NONRECOGNIZED",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "UNKNOWN"
}

// ParseCategory is the inverse of Category.String. Matching is case
// insensitive.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return Category(i), nil
		}
	}
	return 0, errors.Errorf("unknown token category %q, expected one of %v", s, Categories())
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

func (c Category) MarshalText() ([]byte, error) {
	if int(c) >= len(categoryNames) {
		return nil, errors.Errorf("invalid token category %d", c)
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Token is one classified lexeme. Line is the input line on which the
// lexeme started.
type Token struct {
	Lexeme   string
	Category Category
	Line     int
}

// String renders the token as <lexeme, CATEGORY>.
func (t Token) String() string {
	return "<" + t.Lexeme + ", " + t.Category.String() + ">"
}
