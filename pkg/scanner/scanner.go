// Package scanner drives a priority ordered set of automata over an input
// stream and turns it into classified tokens.
//
// Every automaton sees every character of the current token attempt. The
// first automaton to accept (in priority order) wins the lexeme and all
// automata restart on the next character. Characters no automaton wants
// are merged into a single NONRECOGNIZED token per contiguous run.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/logging"
	"github.com/agenthands/cscan/pkg/logging/logfields"
	"github.com/agenthands/cscan/pkg/token"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "scanner")

const (
	// DefaultMaxLexeme bounds the text kept for a single token.
	DefaultMaxLexeme = 256
	// DefaultMaxTokens bounds the token list returned by Scan.
	DefaultMaxTokens = 1024
)

// Sink receives finished tokens in input order.
type Sink interface {
	Token(tok token.Token)
	// LineBreak is called for every input newline; line is the number of
	// the line that just ended.
	LineBreak(line int)
	// Finish is called once when the input is exhausted.
	Finish() error
}

// Reporter receives errors and warnings. It must not stop the scan.
type Reporter interface {
	Report(code Code, line int, msg string)
}

// Observer is notified at the scanner's extension points. It is meant for
// instrumentation and must not affect scanning.
type Observer interface {
	Step(c byte, line int)
	Verdict(automaton string, v automaton.Verdict)
	Token(tok token.Token)
}

// Options configures a Scanner. Zero values select the defaults.
type Options struct {
	MaxLexeme int
	MaxTokens int
	Sink      Sink
	Reporter  Reporter
	Observer  Observer
}

// Result is what one scan produced.
type Result struct {
	// Tokens holds at most MaxTokens tokens.
	Tokens []token.Token
	// Dropped counts tokens that did not fit in Tokens.
	Dropped int
	// Lines is the number of the last input line.
	Lines int
}

// Scanner holds the immutable configuration of a scan. Scan may be called
// any number of times, one call at a time.
type Scanner struct {
	defs []*automaton.Definition
	opts Options
	pool sync.Pool
}

// NewScanner creates a scanner over defs. The order of defs is the
// priority order used to break ties between automata accepting at the same
// position.
func NewScanner(defs []*automaton.Definition, opts Options) *Scanner {
	if opts.MaxLexeme <= 0 {
		opts.MaxLexeme = DefaultMaxLexeme
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Sink == nil {
		opts.Sink = nopSink{}
	}
	if opts.Reporter == nil {
		opts.Reporter = logReporter{}
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	s := &Scanner{defs: defs, opts: opts}
	s.pool.New = func() interface{} { return s.newSession() }
	return s
}

// Scan tokenizes r until end of input. Non-fatal conditions go to the
// Reporter; the returned error is ErrEmptyInput, a read error or a Sink
// error. The Result is valid even when an error is returned.
func (s *Scanner) Scan(r io.Reader) (*Result, error) {
	ss := s.pool.Get().(*session)
	defer s.pool.Put(ss)

	ss.Reset(r)
	err := ss.run()
	res := ss.result
	return &res, err
}

// session is the state of one scan. Sessions are pooled; Reset makes one
// ready for the next input.
type session struct {
	*Scanner

	in       *bufio.Reader
	matchers []automaton.Matcher
	lexeme   *Buffer
	pending  *Buffer

	// building is set once the current token attempt has consumed a
	// character; layout is only skipped between attempts.
	building bool
	tokLine  int
	pendLine int
	line     int
	full     bool
	result   Result
}

func (s *Scanner) newSession() *session {
	ss := &session{
		Scanner: s,
		in:      bufio.NewReader(nil),
		lexeme:  NewBuffer(s.opts.MaxLexeme),
		pending: NewBuffer(s.opts.MaxLexeme),
	}
	for _, def := range s.defs {
		ss.matchers = append(ss.matchers, automaton.NewRun(def))
	}
	return ss
}

// Reset re-initializes the session with new input for pool reuse.
func (ss *session) Reset(r io.Reader) {
	ss.in.Reset(r)
	ss.restart()
	ss.pending.Reset()
	ss.tokLine = 0
	ss.pendLine = 0
	ss.line = 1
	ss.full = false
	ss.result = Result{}
}

func (ss *session) run() error {
	cur, err := ss.read()
	if err != nil {
		return err
	}
	if cur == automaton.EOF {
		ss.report(CodeEmptyInput, 0, "input is empty")
		return ErrEmptyInput
	}
	la, err := ss.read()
	if err != nil {
		return err
	}

	for cur != automaton.EOF {
		c := byte(cur)
		if !ss.building && isLayout(c) {
			ss.flushPending()
		} else {
			ss.step(c, la)
		}
		if isLineEnd(c, la) {
			ss.opts.Sink.LineBreak(ss.line)
			ss.line++
		}

		cur = la
		if la, err = ss.read(); err != nil {
			return err
		}
	}

	ss.flushPending()
	ss.result.Lines = ss.line
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			logfields.Count: len(ss.result.Tokens),
			logfields.Line:  ss.line,
		}).Debug("Scan finished")
	}
	return errors.Wrap(ss.opts.Sink.Finish(), "writing tokens")
}

func (ss *session) read() (int, error) {
	c, err := ss.in.ReadByte()
	if err == io.EOF {
		return automaton.EOF, nil
	}
	if err != nil {
		return automaton.EOF, errors.Wrap(err, "reading input")
	}
	return int(c), nil
}

// step feeds one character of a token attempt to every active automaton.
func (ss *session) step(c byte, la int) {
	ss.opts.Observer.Step(c, ss.line)
	if !ss.building {
		ss.building = true
		ss.tokLine = ss.line
	}
	if !ss.lexeme.Add(c) {
		ss.tooLong(c)
	}

	for _, m := range ss.matchers {
		if !m.Active() {
			continue
		}
		v := m.Step(c, la)
		ss.opts.Observer.Verdict(m.Name(), v)
		if v == automaton.Accept {
			ss.flushPending()
			ss.emit(ss.lexeme.String(), m.Category(), ss.tokLine)
			ss.restart()
			return
		}
	}

	for _, m := range ss.matchers {
		if m.Active() {
			return
		}
	}

	// Every automaton rejected: the attempt joins the unrecognized run.
	if ss.pending.Len() == 0 {
		ss.pendLine = ss.tokLine
	}
	if refused := ss.pending.Append(ss.lexeme.Bytes()); refused > 0 {
		tail := ss.lexeme.Bytes()[ss.lexeme.Len()-refused:]
		for _, b := range tail {
			ss.tooLong(b)
		}
	}
	ss.restart()
}

// restart rewinds every automaton and clears the lexeme for a new attempt.
func (ss *session) restart() {
	for _, m := range ss.matchers {
		m.Reset()
	}
	ss.lexeme.Reset()
	ss.building = false
}

// flushPending emits the unrecognized run, if any, as one token.
func (ss *session) flushPending() {
	if ss.pending.Len() == 0 {
		return
	}
	lexeme := ss.pending.String()
	ss.pending.Reset()
	ss.report(CodeTokenNotRecognized, ss.pendLine, fmt.Sprintf("non-recognized token '%s'", lexeme))
	ss.emit(lexeme, token.NonRecognized, ss.pendLine)
}

func (ss *session) emit(lexeme string, cat token.Category, line int) {
	tok := token.Token{Lexeme: lexeme, Category: cat, Line: line}
	ss.opts.Sink.Token(tok)
	ss.opts.Observer.Token(tok)

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			logfields.Line:     line,
			logfields.Category: cat,
			logfields.Lexeme:   lexeme,
		}).Debug("Token accepted")
	}

	if len(ss.result.Tokens) >= ss.opts.MaxTokens {
		ss.result.Dropped++
		if !ss.full {
			ss.full = true
			ss.report(CodeMaxTokensExceeded, line,
				fmt.Sprintf("maximum of %d tokens reached, further tokens are discarded", ss.opts.MaxTokens))
		}
		return
	}
	ss.result.Tokens = append(ss.result.Tokens, tok)
}

func (ss *session) tooLong(c byte) {
	ss.report(CodeTokenTooLong, ss.line,
		fmt.Sprintf("token longer than %d characters, %q discarded", ss.lexeme.Cap(), c))
}

func (ss *session) report(code Code, line int, msg string) {
	ss.opts.Reporter.Report(code, line, msg)
}

type nopSink struct{}

func (nopSink) Token(token.Token) {}
func (nopSink) LineBreak(int)     {}
func (nopSink) Finish() error     { return nil }

type nopObserver struct{}

func (nopObserver) Step(byte, int)                    {}
func (nopObserver) Verdict(string, automaton.Verdict) {}
func (nopObserver) Token(token.Token)                 {}

// logReporter is used when no Reporter is configured.
type logReporter struct{}

func (logReporter) Report(code Code, line int, msg string) {
	entry := log.WithFields(logrus.Fields{
		logfields.Code: code,
		logfields.Line: line,
	})
	if code.IsWarning() {
		entry.Warning(msg)
		return
	}
	entry.Error(msg)
}
