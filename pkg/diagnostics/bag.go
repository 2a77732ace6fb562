package diagnostics

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/cscan/pkg/logging"
	"github.com/agenthands/cscan/pkg/logging/logfields"
	"github.com/agenthands/cscan/pkg/scanner"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "diagnostics")

// Bag collects diagnostics for one input file. It implements
// scanner.Reporter and is safe for concurrent use.
type Bag struct {
	mu          sync.Mutex
	file        string
	diagnostics []*Diagnostic
	errorCount  int
	warnCount   int
}

// NewBag creates an empty bag for file.
func NewBag(file string) *Bag {
	return &Bag{file: file}
}

// Report records a condition raised by the scanner.
func (b *Bag) Report(code scanner.Code, line int, msg string) {
	b.Add(&Diagnostic{
		Code:     code,
		Severity: SeverityOf(code),
		File:     b.file,
		Line:     line,
		Message:  msg,
	})
}

// Add records d.
func (b *Bag) Add(d *Diagnostic) {
	b.mu.Lock()
	b.diagnostics = append(b.diagnostics, d)
	switch d.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
	b.mu.Unlock()

	log.WithFields(logrus.Fields{
		logfields.File:     d.file(),
		logfields.Line:     d.Line,
		logfields.Code:     d.Code,
		logfields.Severity: d.Severity,
	}).Debug(d.Message)
}

// HasErrors returns true if any error was recorded.
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors.
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings.
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of the recorded diagnostics in report order.
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Diagnostic, len(b.diagnostics))
	copy(out, b.diagnostics)
	return out
}

// Summary writes every diagnostic followed by the totals block.
func (b *Bag) Summary(w io.Writer, useColor bool) error {
	diags := b.Diagnostics()
	errs, warns := b.ErrorCount(), b.WarningCount()

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen)
	for _, c := range []*color.Color{red, yellow, green} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, d := range diags {
		prefix := red
		if d.Severity == Warning {
			prefix = yellow
		}
		if _, err := fmt.Fprintf(w, "%s %s:%d: %s\n",
			prefix.Sprint(d.Severity.String()+":"), d.file(), d.Line, d.Message); err != nil {
			return err
		}
	}

	status := green.Sprint("Scanning completed successfully.")
	if errs > 0 || warns > 0 {
		status = yellow.Sprint("Scanning completed with issues.")
	}
	_, err := fmt.Fprintf(w, "\n--- Scanner Summary ---\nTotal errors:   %d\nTotal warnings: %d\n%s\n--\n",
		errs, warns, status)
	return err
}
