// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// File is the input file being scanned
	File = "file"

	// Line is the input line number
	Line = "line"

	// Lexeme is the text of a token
	Lexeme = "lexeme"

	// Category is the token category
	Category = "category"

	// Automaton is the name of an automaton definition
	Automaton = "automaton"

	// Code is a scanner diagnostic code
	Code = "code"

	// Severity is the severity of a diagnostic
	Severity = "severity"

	// Count is a generic counter, e.g. number of tokens
	Count = "count"

	// Path is a filesystem path other than the input
	Path = "path"
)
