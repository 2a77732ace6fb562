package scanner

import "github.com/pkg/errors"

// Code identifies a condition the scanner reports to its Reporter.
type Code uint8

const (
	// CodeEmptyInput: the input had no characters. Fatal for the scan.
	CodeEmptyInput Code = iota + 1
	// CodeTokenNotRecognized: one flushed run of unrecognized input.
	CodeTokenNotRecognized
	// CodeTokenTooLong: a character did not fit in a lexeme buffer.
	CodeTokenTooLong
	// CodeMaxTokensExceeded: the token list is full, further tokens are
	// dropped from it.
	CodeMaxTokensExceeded
)

func (c Code) String() string {
	switch c {
	case CodeEmptyInput:
		return "EMPTY_INPUT"
	case CodeTokenNotRecognized:
		return "TOKEN_NOT_RECOGNIZED"
	case CodeTokenTooLong:
		return "TOKEN_TOO_LONG"
	case CodeMaxTokensExceeded:
		return "MAX_TOKENS_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// IsWarning reports whether c is reported as a warning rather than an
// error.
func (c Code) IsWarning() bool {
	return c == CodeTokenTooLong || c == CodeMaxTokensExceeded
}

// ErrEmptyInput is returned by Scan when the input has no characters.
var ErrEmptyInput = errors.New("empty input")
