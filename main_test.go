package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themesmith/models"
	"themesmith/palette"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseHarmony(t *testing.T) {
	h, ok := parseHarmony("split_complementary")
	assert.True(t, ok)
	assert.Equal(t, palette.SplitComplementary, h)

	_, ok = parseHarmony("rainbow")
	assert.False(t, ok)
}

func TestConfigGenerateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themesmith.toml")

	_, err := execute(t, "config", "generate", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "generate", "--config", path)
	assert.Error(t, err)
}

func TestGenerateUnknownLayoutSuggests(t *testing.T) {
	_, err := execute(t, "generate", "--layout", "termnal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "terminal"`)
	layout = ""
}

func TestGenerateThenValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	out, err := execute(t, "generate", "--config", cfgPath, "--themes-dir", dir, "--count", "2", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Themes: 2/2 succeeded")
	assert.FileExists(t, filepath.Join(dir, models.StandardMetadataFile))

	shots, err := os.ReadDir(filepath.Join(dir, "screenshots"))
	require.NoError(t, err)
	assert.Len(t, shots, 2)

	out, err = execute(t, "fix-css", "--config", cfgPath, "--themes-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed themes: 2/2 succeeded")
	assert.Contains(t, out, "Running basic CSS validation")
}
