package option

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/cscan/pkg/emitter"
	"github.com/agenthands/cscan/pkg/scanner"
)

func TestFromViperDefaults(t *testing.T) {
	c, err := FromViper(NewViper(), "prog.c")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Input:     "prog.c",
		Output:    "prog.cscn",
		Format:    emitter.Compact,
		MaxLexeme: scanner.DefaultMaxLexeme,
		MaxTokens: scanner.DefaultMaxTokens,
	}, c)
}

func TestFromViperEnv(t *testing.T) {
	t.Setenv("CSCAN_MAX_TOKENS", "10")
	t.Setenv("CSCAN_FORMAT", "annotated")
	t.Setenv("CSCAN_NO_COLOR", "true")

	c, err := FromViper(NewViper(), "-")
	require.NoError(t, err)
	assert.Equal(t, 10, c.MaxTokens)
	assert.Equal(t, emitter.Annotated, c.Format)
	assert.True(t, c.NoColor)
	assert.Equal(t, Stdio, c.Output)
}

func TestFromViperConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max-lexeme: 8\noutput: out.txt\nmetrics: true\n"), 0o644))

	vp := NewViper()
	vp.SetConfigFile(path)
	require.NoError(t, vp.ReadInConfig())

	c, err := FromViper(vp, "prog.c")
	require.NoError(t, err)
	assert.Equal(t, 8, c.MaxLexeme)
	assert.Equal(t, "out.txt", c.Output)
	assert.True(t, c.Metrics)
}

func TestFromViperInvalid(t *testing.T) {
	vp := NewViper()
	vp.Set(Format, "xml")
	_, err := FromViper(vp, "prog.c")
	assert.Error(t, err)

	vp = NewViper()
	vp.Set(MaxLexeme, 0)
	_, err = FromViper(vp, "prog.c")
	assert.ErrorContains(t, err, "max-lexeme")

	_, err = FromViper(NewViper(), "")
	assert.Error(t, err)
}
