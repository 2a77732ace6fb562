// Package emitter renders scanned tokens as text, one output line per
// non-empty input line.
package emitter

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/agenthands/cscan/pkg/token"
)

// Format selects the output layout.
type Format uint8

const (
	// Compact writes tokens space separated with no blank lines.
	Compact Format = iota
	// Annotated prefixes every line with its input line number and follows
	// it with a blank line.
	Annotated
)

func (f Format) String() string {
	switch f {
	case Compact:
		return "compact"
	case Annotated:
		return "annotated"
	default:
		return "unknown"
	}
}

// ParseFormat accepts "compact" and "annotated", and the older names
// "release" and "debug" for them.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "compact", "release":
		return Compact, nil
	case "annotated", "debug":
		return Annotated, nil
	}
	return 0, errors.Errorf("unknown output format %q", s)
}

// Emitter writes tokens to an io.Writer. It implements scanner.Sink.
type Emitter struct {
	w      *bufio.Writer
	format Format
	// open is set while the current output line has tokens on it.
	open   bool
	err    error
	tokens int
	lines  int
}

// NewEmitter returns an emitter writing to w in the given format.
func NewEmitter(w io.Writer, format Format) *Emitter {
	return &Emitter{
		w:      bufio.NewWriter(w),
		format: format,
	}
}

// Token writes tok on the current output line.
func (e *Emitter) Token(tok token.Token) {
	if e.open {
		e.write(" ")
	} else {
		if e.format == Annotated {
			e.write(strconv.Itoa(tok.Line))
			e.write(" ")
		}
		e.open = true
	}
	e.write(tok.String())
	e.tokens++
}

// LineBreak ends the current output line if it has tokens on it. Empty
// input lines produce no output.
func (e *Emitter) LineBreak(int) {
	if !e.open {
		return
	}
	e.write("\n")
	if e.format == Annotated {
		e.write("\n")
	}
	e.open = false
	e.lines++
}

// Finish terminates a pending output line and flushes. It returns the first
// write error seen.
func (e *Emitter) Finish() error {
	e.LineBreak(0)
	if e.err == nil {
		e.err = e.w.Flush()
	}
	return e.err
}

// Tokens returns the number of tokens written.
func (e *Emitter) Tokens() int { return e.tokens }

// Lines returns the number of output lines written.
func (e *Emitter) Lines() int { return e.lines }

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.WriteString(s)
}
