// Package metrics holds the prometheus metrics of a scan. The Observer
// plugs into the scanner's extension points; the caller rarely needs to
// refer to prometheus directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/agenthands/cscan/pkg/automaton"
	"github.com/agenthands/cscan/pkg/scanner"
	"github.com/agenthands/cscan/pkg/token"
)

const (
	// Namespace is prepended to every metric name.
	Namespace = "cscan"

	// LabelAutomaton is the automaton definition name
	LabelAutomaton = "automaton"

	// LabelVerdict is the verdict of one automaton step
	LabelVerdict = "verdict"

	// LabelCategory is the token category
	LabelCategory = "category"

	// LabelCode is the scanner diagnostic code
	LabelCode = "code"

	// LabelSeverity is "error" or "warning"
	LabelSeverity = "severity"
)

// Observer counts scanner activity. It implements scanner.Observer.
type Observer struct {
	registry *prometheus.Registry

	// Steps counts characters fed to the automata.
	Steps prometheus.Counter
	// Verdicts counts automaton step results.
	Verdicts *prometheus.CounterVec
	// Tokens counts emitted tokens by category.
	Tokens *prometheus.CounterVec
	// Lines tracks the last line a character was read on.
	Lines prometheus.Gauge
	// Diagnostics counts reported conditions by code and severity.
	Diagnostics *prometheus.CounterVec
}

// NewObserver creates an Observer with its metrics registered in a fresh
// registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewPedanticRegistry(),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "steps_total",
			Help:      "Number of characters stepped through the automata",
		}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "verdicts_total",
			Help:      "Number of automaton step verdicts",
		}, []string{LabelAutomaton, LabelVerdict}),
		Tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "tokens_total",
			Help:      "Number of tokens emitted",
		}, []string{LabelCategory}),
		Lines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "line",
			Help:      "Input line of the last stepped character",
		}),
		Diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "diagnostics_total",
			Help:      "Number of errors and warnings reported by the scanner",
		}, []string{LabelCode, LabelSeverity}),
	}
	o.MustRegister(o.Steps, o.Verdicts, o.Tokens, o.Lines, o.Diagnostics)
	return o
}

// MustRegister adds collectors to the observer's registry.
// It will panic on error.
func (o *Observer) MustRegister(cs ...prometheus.Collector) {
	o.registry.MustRegister(cs...)
}

// Registry returns the registry holding the observer's metrics.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

func (o *Observer) Step(_ byte, line int) {
	o.Steps.Inc()
	o.Lines.Set(float64(line))
}

func (o *Observer) Verdict(name string, v automaton.Verdict) {
	o.Verdicts.WithLabelValues(name, v.String()).Inc()
}

func (o *Observer) Token(tok token.Token) {
	o.Tokens.WithLabelValues(tok.Category.String()).Inc()
}

// Reporter returns a scanner.Reporter that counts every condition and
// passes it on to next.
func (o *Observer) Reporter(next scanner.Reporter) scanner.Reporter {
	return &countingReporter{o: o, next: next}
}

type countingReporter struct {
	o    *Observer
	next scanner.Reporter
}

func (r *countingReporter) Report(code scanner.Code, line int, msg string) {
	severity := "error"
	if code.IsWarning() {
		severity = "warning"
	}
	r.o.Diagnostics.WithLabelValues(code.String(), severity).Inc()
	r.next.Report(code, line, msg)
}
