package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHelpReturnsErrHelp(t *testing.T) {
	opt, err := Parse([]string{"mle", "-h"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.True(t, opt.Help)
}

func TestParseVersionReturnsErrVersion(t *testing.T) {
	opt, err := Parse([]string{"mle", "-v"})
	assert.ErrorIs(t, err, ErrVersion)
	assert.True(t, opt.Version)
}

func TestParseSimpleFlags(t *testing.T) {
	opt, err := Parse([]string{"mle", "-a", "1", "-b", "-c", "80", "-l", "1", "-t", "4", "-z", "0"})
	require.NoError(t, err)
	assert.True(t, opt.TabToSpace)
	assert.True(t, opt.HighlightBrackets)
	assert.Equal(t, 80, opt.ColorColumn)
	assert.Equal(t, LineNumRelative, opt.LineNumType)
	assert.Equal(t, 4, opt.TabWidth)
	assert.False(t, opt.TrimPaste)
}

func TestParseKeymapAndBindingsGroup(t *testing.T) {
	opt, err := Parse([]string{
		"mle",
		"-K", "mle_normal,insert-data,1",
		"-k", "move-left,left",
		"-k", "move-right,right,2",
		"-K", "mle_prompt,,0",
		"-k", "prompt:accept-input,enter",
	})
	require.NoError(t, err)
	require.Len(t, opt.KeymapDefs, 2)
	assert.Equal(t, "mle_normal", opt.KeymapDefs[0].Name)
	assert.Equal(t, "insert-data", opt.KeymapDefs[0].DefaultCmd)
	assert.True(t, opt.KeymapDefs[0].AllowFallthru)
	assert.Equal(t, "mle_prompt", opt.KeymapDefs[1].Name)
	assert.False(t, opt.KeymapDefs[1].AllowFallthru)

	require.Len(t, opt.KeyBinds, 3)
	assert.Equal(t, "mle_normal", opt.KeyBinds[0].Keymap)
	assert.Equal(t, "move-left", opt.KeyBinds[0].Command)
	assert.Equal(t, "left", opt.KeyBinds[0].Key)
	assert.Equal(t, "mle_normal", opt.KeyBinds[1].Keymap)
	assert.Equal(t, "2", opt.KeyBinds[1].Param)
	assert.Equal(t, "mle_prompt", opt.KeyBinds[2].Keymap)
}

func TestParseKeyBindWithoutKeymapFails(t *testing.T) {
	_, err := Parse([]string{"mle", "-k", "move-left,left"})
	assert.Error(t, err)
}

func TestParseSyntaxDefAndRulesGroup(t *testing.T) {
	opt, err := Parse([]string{
		"mle", "-S", "go,*.go", "-s", "//.*$,comment", "-S", "md,*.md", "-s", "^#.*$,heading",
	})
	require.NoError(t, err)
	require.Len(t, opt.SyntaxDefs, 2)
	require.Len(t, opt.SyntaxRules, 2)
	assert.Equal(t, "go", opt.SyntaxRules[0].Syntax)
	assert.Equal(t, "md", opt.SyntaxRules[1].Syntax)
}

func TestParseMacroDefsPassedThroughRaw(t *testing.T) {
	opt, err := Parse([]string{"mle", "-M", "greet,h,i,enter"})
	require.NoError(t, err)
	require.Len(t, opt.MacroDefs, 1)
	assert.Equal(t, "greet,h,i,enter", opt.MacroDefs[0])
}

func TestParsePositionalPathWithLine(t *testing.T) {
	opt, err := Parse([]string{"mle", "main.go:42", "README.md"})
	require.NoError(t, err)
	require.Len(t, opt.Paths, 2)
	assert.Equal(t, "main.go", opt.Paths[0].Path)
	assert.Equal(t, 42, opt.Paths[0].Line)
	assert.Equal(t, "README.md", opt.Paths[1].Path)
	assert.Equal(t, 0, opt.Paths[1].Line)
}

func TestParseUnrecognizedFlagFails(t *testing.T) {
	_, err := Parse([]string{"mle", "-q"})
	assert.Error(t, err)
}

func TestParseFlagMissingArgumentFails(t *testing.T) {
	_, err := Parse([]string{"mle", "-c"})
	assert.Error(t, err)
}

func TestLoadRCSkipsMissingAndBlankAndComments(t *testing.T) {
	dir := t.TempDir()
	rcPath := filepath.Join(dir, ".mlerc")
	require.NoError(t, os.WriteFile(rcPath, []byte("\n# comment\n-n mle_vi\n\n-t 2\n"), 0o644))

	tokens, err := readRCFile(rcPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"-n", "mle_vi", "-t", "2"}, tokens)
}

func TestBuildArgvOrdersRCBeforeReal(t *testing.T) {
	argv := BuildArgv([]string{"-t", "2"}, []string{"-t", "8", "main.go"})
	assert.Equal(t, []string{"mle", "-t", "2", "-t", "8", "main.go"}, argv)
}
