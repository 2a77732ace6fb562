package diagnostics

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cscan/pkg/logging"
	"github.com/agenthands/cscan/pkg/scanner"
)

func TestBagCounts(t *testing.T) {
	b := NewBag("prog.c")
	b.Report(scanner.CodeTokenNotRecognized, 3, "non-recognized token '@'")
	b.Report(scanner.CodeTokenTooLong, 4, "too long")
	b.Report(scanner.CodeMaxTokensExceeded, 9, "full")

	assert.True(t, b.HasErrors())
	assert.Equal(t, 1, b.ErrorCount())
	assert.Equal(t, 2, b.WarningCount())

	diags := b.Diagnostics()
	require.Len(t, diags, 3)
	assert.Equal(t, "ERROR: prog.c:3: non-recognized token '@'", diags[0].String())
	assert.Equal(t, "WARNING: prog.c:4: too long", diags[1].String())
}

func TestBagLogs(t *testing.T) {
	hook := test.NewLocal(logging.DefaultLogger)
	defer hook.Reset()
	level := logging.DefaultLogger.GetLevel()
	logging.DefaultLogger.SetLevel(logrus.DebugLevel)
	defer logging.DefaultLogger.SetLevel(level)

	b := NewBag("")
	b.Report(scanner.CodeTokenTooLong, 2, "too long")
	b.Report(scanner.CodeEmptyInput, 0, "input is empty")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, Warning, entries[0].Data["severity"])
	assert.Equal(t, Error, entries[1].Data["severity"])
	assert.Equal(t, "diagnostics", entries[1].Data["subsys"])
	assert.Equal(t, "<unknown>", entries[1].Data["file"])
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBag("a.c").Summary(&buf, false))
	assert.Equal(t, "\n--- Scanner Summary ---\nTotal errors:   0\nTotal warnings: 0\n"+
		"Scanning completed successfully.\n--\n", buf.String())

	buf.Reset()
	b := NewBag("a.c")
	b.Report(scanner.CodeTokenNotRecognized, 1, "non-recognized token '$'")
	require.NoError(t, b.Summary(&buf, false))
	assert.Equal(t, "ERROR: a.c:1: non-recognized token '$'\n"+
		"\n--- Scanner Summary ---\nTotal errors:   1\nTotal warnings: 0\n"+
		"Scanning completed with issues.\n--\n", buf.String())
}

func TestSummaryColor(t *testing.T) {
	var buf bytes.Buffer
	b := NewBag("a.c")
	b.Report(scanner.CodeTokenTooLong, 1, "too long")
	require.NoError(t, b.Summary(&buf, true))
	assert.Contains(t, buf.String(), "\x1b[")
}
