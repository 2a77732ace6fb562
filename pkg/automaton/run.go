package automaton

import "github.com/agenthands/cscan/pkg/token"

// Verdict is the outcome of feeding one character to a Matcher.
type Verdict uint8

const (
	// Continue means the match can still extend past the lookahead.
	Continue Verdict = iota
	// Accept means the lexeme ends here and is in the language.
	Accept
	// Reject means the matcher is out of the running for this token.
	Reject
)

func (v Verdict) String() string {
	switch v {
	case Continue:
		return "continue"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Matcher is the unit the scan driver iterates over in priority order.
type Matcher interface {
	Name() string
	Category() token.Category
	// Step consumes cur and looks ahead at la (which may be EOF).
	Step(cur byte, la int) Verdict
	// Active is false once the matcher has rejected the current token.
	Active() bool
	// Reset rewinds to the start state for a new token attempt.
	Reset()
}

// Run is the mutable state of one Definition during a scan.
type Run struct {
	def    *Definition
	state  State
	active bool
}

// NewRun binds a fresh run state to def.
func NewRun(def *Definition) *Run {
	return &Run{def: def, state: def.Start, active: true}
}

func (r *Run) Name() string             { return r.def.Name }
func (r *Run) Category() token.Category { return r.def.Category }
func (r *Run) Active() bool             { return r.active }

// State returns the current state.
func (r *Run) State() State { return r.state }

func (r *Run) Reset() {
	r.state = r.def.Start
	r.active = true
}

// Step moves on cur, then decides with one character of lookahead whether
// the token ends here. A match ends when the lookahead has no transition
// from the new state; it is accepted only if that state is accepting.
func (r *Run) Step(cur byte, la int) Verdict {
	curCol, laCol := r.def.Vocab.Columns(cur, la)

	next, ok := r.def.Table.Lookup(r.state, curCol).State()
	if !ok {
		r.active = false
		return Reject
	}
	r.state = next

	if r.def.Table.Lookup(next, laCol).IsDead() {
		if r.def.IsAccepting(next) {
			return Accept
		}
		r.active = false
		return Reject
	}
	return Continue
}
