package metrics

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cscan/pkg/automata"
	"github.com/agenthands/cscan/pkg/logging/logfields"
	"github.com/agenthands/cscan/pkg/scanner"
)

func scanWith(t *testing.T, o *Observer, input string) {
	t.Helper()
	s := scanner.NewScanner(automata.Standard(), scanner.Options{Observer: o})
	_, err := s.Scan(strings.NewReader(input))
	require.NoError(t, err)
}

func TestObserver(t *testing.T) {
	o := NewObserver()
	scanWith(t, o, "x = 1;\ny")

	assert.Equal(t, 5.0, testutil.ToFloat64(o.Steps))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.Tokens.WithLabelValues("IDENTIFIER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Tokens.WithLabelValues("NUMBER")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.Verdicts.WithLabelValues("identifier", "accept")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.Lines))
}

type codes []scanner.Code

func (c *codes) Report(code scanner.Code, _ int, _ string) { *c = append(*c, code) }

func TestObserverReporter(t *testing.T) {
	o := NewObserver()
	next := &codes{}
	s := scanner.NewScanner(automata.Standard(), scanner.Options{
		MaxLexeme: 2,
		Reporter:  o.Reporter(next),
	})
	_, err := s.Scan(strings.NewReader("x @ y @\nabc\n"))
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.Diagnostics.WithLabelValues("TOKEN_NOT_RECOGNIZED", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Diagnostics.WithLabelValues("TOKEN_TOO_LONG", "warning")))
	assert.Len(t, *next, 3)
}

func TestLoggingHook(t *testing.T) {
	o := NewObserver()
	h := NewLoggingHook(o)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(h)

	entry := logger.WithField(logfields.LogSubsys, "scanner")
	entry.Warning("w")
	entry.Error("e")
	entry.Error("e")
	entry.Info("ignored")

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metric.WithLabelValues("warning", "scanner")))
	assert.Equal(t, 2.0, testutil.ToFloat64(h.metric.WithLabelValues("error", "scanner")))
}

func TestLoggingHookMissingSubsys(t *testing.T) {
	h := NewLoggingHook(NewObserver())
	err := h.Fire(logrus.NewEntry(logrus.New()))
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	o := NewObserver()
	scanWith(t, o, "int x;")

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, o.Registry()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Metric"))
	assert.Contains(t, out, `cscan_tokens_total{category="TYPE"}`)
	assert.Contains(t, out, `cscan_verdicts_total{automaton="type",verdict="accept"}`)
	assert.Regexp(t, `cscan_steps_total\s+5\n`, out)
}
