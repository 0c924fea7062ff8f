package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/storefront/internal/auth"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCSSCommand(t *testing.T) {
	out, err := execute(t, "css", "theme2")
	require.NoError(t, err)

	assert.Contains(t, out, "/* theme-theme2 */")
	assert.Contains(t, out, ":root {")
	assert.Contains(t, out, ".theme-theme2 {")
	assert.Contains(t, out, "--color-primary:")
}

func TestCSSCommand_UnknownTheme(t *testing.T) {
	_, err := execute(t, "css", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme1")
}

func TestCSSCommand_RequiresArg(t *testing.T) {
	_, err := execute(t, "css")
	assert.Error(t, err)
}

func TestThemesCommand(t *testing.T) {
	out, err := execute(t, "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "storefront css <id>")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := execute(t, "hash-password", "--cost", "4", "long-enough-secret")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(strings.TrimSpace(out), "long-enough-secret"))
}

func TestHashPasswordCommand_Stdin(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("from-standard-input\n"))
	cmd.SetArgs([]string{"hash-password", "--cost", "4"})
	require.NoError(t, cmd.Execute())
	assert.True(t, auth.CheckPassword(strings.TrimSpace(out.String()), "from-standard-input"))
}

func TestHashPasswordCommand_TooShort(t *testing.T) {
	_, err := execute(t, "hash-password", "short")
	assert.Error(t, err)
}
