// Package diagnostics collects the errors and warnings raised during a
// scan and renders them for the user.
package diagnostics

import (
	"fmt"

	"github.com/agenthands/cscan/pkg/scanner"
)

// Severity of a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "WARNING"
	}
	return "ERROR"
}

// SeverityOf maps a scanner code to the severity it is reported with.
func SeverityOf(code scanner.Code) Severity {
	if code.IsWarning() {
		return Warning
	}
	return Error
}

// Diagnostic is one reported condition.
type Diagnostic struct {
	Code     scanner.Code
	Severity Severity
	File     string
	Line     int
	Message  string
}

// String renders d as "ERROR: file:line: message".
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s:%d: %s", d.Severity, d.file(), d.Line, d.Message)
}

func (d *Diagnostic) file() string {
	if d.File == "" {
		return "<unknown>"
	}
	return d.File
}
