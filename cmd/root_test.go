package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YoDawg/core"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("YODAWG_ENV", "prod")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--conf", filepath.Join(dir, "missing.yml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	var names []string
	for _, c := range NewRootCmd().Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"quote", "overlay", "generate", "comment", "login", "history"})
}

func TestCommentCmd_RequiresSource(t *testing.T) {
	_, err := run(t, "comment")

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestOverlayCmd_MissingTemplate(t *testing.T) {
	_, err := run(t, "overlay", "--content", "hello", "--template", "nope.png")

	assert.ErrorIs(t, err, core.ErrInputNotFound)
}

func TestQuoteCmd_EmptyContent(t *testing.T) {
	_, err := run(t, "quote")

	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLoginCmd_NeedsToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_KEY", "")

	_, err := run(t, "login")

	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestHistoryCmd_Empty(t *testing.T) {
	out, err := run(t, "history")

	require.NoError(t, err)
	assert.Empty(t, out)
}
